// Package keepalive periodically requests a public URL so that hosting
// platforms which sleep idle deployments keep the gateway warm.
package keepalive

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// DefaultInterval is used when Options.Interval is not positive.
const DefaultInterval = 10 * time.Minute

// Options configures a Pinger.
type Options struct {
	URL      string
	Interval time.Duration
	// Timeout bounds one ping. Defaults to 30s.
	Timeout time.Duration
	Logger  zerolog.Logger
}

// Pinger issues GET requests against a fixed URL.
type Pinger struct {
	url      string
	interval time.Duration
	rest     *resty.Client
	log      zerolog.Logger
}

// New returns a Pinger. An empty URL is an error; callers skip the pinger instead.
func New(opts Options) (*Pinger, error) {
	if strings.TrimSpace(opts.URL) == "" {
		return nil, errors.New("keepalive: url is required")
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Pinger{
		url:      opts.URL,
		interval: opts.Interval,
		rest:     resty.New().SetTimeout(opts.Timeout),
		log:      opts.Logger,
	}, nil
}

// PingOnce requests the URL and returns the response status code.
// Any status is a successful ping; only transport failures are errors.
func (p *Pinger) PingOnce(ctx context.Context) (int, error) {
	resp, err := p.rest.R().SetContext(ctx).Get(p.url)
	if err != nil {
		return 0, err
	}
	return resp.StatusCode(), nil
}

// Run pings once immediately and then on every tick until ctx is done.
func (p *Pinger) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.ping(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.ping(ctx)
		}
	}
}

func (p *Pinger) ping(ctx context.Context) {
	status, err := p.PingOnce(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.log.Warn().Err(err).Str("url", p.url).Msg("keepalive ping failed")
		return
	}
	p.log.Info().Str("url", p.url).Int("status", status).Msg("keepalive ping")
}
