package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"image"

	"github.com/rs/zerolog"

	"apistation/internal/models"
	"apistation/internal/upstream"
	"apistation/pkg/types"
)

// ServiceName is reported by GET /.
const ServiceName = "24h API Station"

// Upstream is the provider surface the gateway depends on.
// *upstream.Client satisfies it.
type Upstream interface {
	TextToImage(ctx context.Context, model, prompt string, width, height int) (image.Image, error)
	ChatCompletion(ctx context.Context, p upstream.ChatParams) (types.ChatMessage, error)
	SpeechToText(ctx context.Context, model string, audio []byte) (json.RawMessage, error)
}

// Config wires a Gateway.
type Config struct {
	Upstream           Upstream
	Images             *models.Table
	Chats              *models.Table
	TranscriptionModel string
	// UIURL is advertised by Root when the frontend is served.
	UIURL string
	// TokenConfigured gates readiness.
	TokenConfigured bool
	Logger          zerolog.Logger
}

// Gateway resolves aliases, calls the upstream and shapes results.
type Gateway struct {
	up       Upstream
	images   *models.Table
	chats    *models.Table
	asrModel string
	uiURL    string
	hasToken bool
	log      zerolog.Logger
}

// New validates cfg and returns a Gateway.
func New(cfg Config) (*Gateway, error) {
	if cfg.Upstream == nil {
		return nil, errors.New("gateway: upstream is required")
	}
	if cfg.Images == nil {
		cfg.Images = models.MustNew(models.DefaultImageModels, models.DefaultImageKey)
	}
	if cfg.Chats == nil {
		cfg.Chats = models.MustNew(models.DefaultChatModels, models.DefaultChatKey)
	}
	if cfg.TranscriptionModel == "" {
		cfg.TranscriptionModel = models.TranscriptionModel
	}
	return &Gateway{
		up:       cfg.Upstream,
		images:   cfg.Images,
		chats:    cfg.Chats,
		asrModel: cfg.TranscriptionModel,
		uiURL:    cfg.UIURL,
		hasToken: cfg.TokenConfigured,
		log:      cfg.Logger,
	}, nil
}

// Root returns static status metadata.
func (g *Gateway) Root() types.RootResponse {
	return types.RootResponse{
		Status:  "active",
		Service: ServiceName,
		Models:  types.ModelAliases{Image: g.images.Keys(), Chat: g.chats.Keys()},
		UIURL:   g.uiURL,
	}
}

// Ready reports whether an upstream token is configured.
func (g *Gateway) Ready() bool { return g.hasToken }

// resolve maps alias through t, logging silent substitutions.
func (g *Gateway) resolve(t *models.Table, kind, alias string) string {
	id, found := t.Resolve(alias)
	if !found && alias != "" {
		g.log.Debug().Str("kind", kind).Str("alias", alias).Str("fallback", t.DefaultKey()).Msg("unknown model alias")
	}
	return id
}
