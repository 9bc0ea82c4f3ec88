package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"apistation/internal/config"
	"apistation/internal/gateway"
	"apistation/internal/httpapi"
	"apistation/internal/keepalive"
	"apistation/internal/models"
	"apistation/internal/upstream"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "apistation:", err)
		os.Exit(1)
	}
}

type flags struct {
	configPath   string
	addr         string
	uiDir        string
	secrets      string
	logLevel     string
	corsOrigins  string
	swagger      bool
	keepAliveURL string
}

func newRootCmd() *cobra.Command { return newRootCmdWith(&flags{}) }

// newRootCmdWith builds the command tree, binding flag values into f.
func newRootCmdWith(f *flags) *cobra.Command {
	serve := func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd, *f)
		if err != nil {
			return err
		}
		return runServer(cmd.Context(), cfg)
	}
	root := &cobra.Command{
		Use:           "apistation",
		Short:         "HTTP gateway to hosted image, chat and speech models",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", os.Getenv("APISTATION_CONFIG"), "Config file (.yaml, .json or .toml)")
	pf.StringVar(&f.addr, "addr", "", "HTTP listen address, e.g. :7860")
	pf.StringVar(&f.uiDir, "ui-dir", "", "Directory of frontend assets served under /ui/")
	pf.StringVar(&f.secrets, "secrets", "", "dotenv file holding HF_TOKEN")
	pf.StringVar(&f.logLevel, "log-level", "", "Log level: off|error|info|debug")
	pf.StringVar(&f.corsOrigins, "cors-origins", "", "Comma-separated allowed CORS origins; enables CORS")
	pf.BoolVar(&f.swagger, "swagger", false, "Serve the swagger UI under /swagger/")
	pf.StringVar(&f.keepAliveURL, "keepalive-url", "", "Public URL to ping periodically")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP gateway (default)",
		RunE:  serve,
	})
	root.AddCommand(&cobra.Command{
		Use:   "models",
		Short: "Print the model alias tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, *f)
			if err != nil {
				return err
			}
			return printModels(cmd.OutOrStdout(), cfg)
		},
	})
	return root
}

// resolveConfig layers defaults, the config file, the secrets file, the
// environment and finally explicitly set flags.
func resolveConfig(cmd *cobra.Command, f flags) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		fileCfg, err := config.Load(f.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = config.Merge(cfg, fileCfg)
	}
	if changed(cmd, "secrets") {
		cfg.SecretsFile = f.secrets
	}
	if err := config.LoadSecrets(cfg.SecretsFile); err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, fmt.Errorf("env: %w", err)
	}
	if changed(cmd, "addr") {
		cfg.Addr = f.addr
	}
	if changed(cmd, "ui-dir") {
		cfg.UIDir = f.uiDir
	}
	if changed(cmd, "log-level") {
		cfg.LogLevel = f.logLevel
	}
	if changed(cmd, "cors-origins") {
		cfg.CORSOrigins = splitCSV(f.corsOrigins)
		cfg.CORSEnabled = len(cfg.CORSOrigins) > 0
	}
	if changed(cmd, "swagger") {
		cfg.Swagger = f.swagger
	}
	if changed(cmd, "keepalive-url") {
		cfg.KeepAliveURL = f.keepAliveURL
	}
	return cfg, nil
}

func changed(cmd *cobra.Command, name string) bool {
	fl := cmd.Flags().Lookup(name)
	return fl != nil && fl.Changed
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printModels(w io.Writer, cfg config.Config) error {
	images, chats, err := cfg.Tables()
	if err != nil {
		return err
	}
	for _, t := range []struct {
		name  string
		table *models.Table
	}{{"image", images}, {"chat", chats}} {
		entries := t.table.Entries()
		fmt.Fprintf(w, "%s (default %s):\n", t.name, t.table.DefaultKey())
		for _, k := range t.table.Keys() {
			fmt.Fprintf(w, "  %-14s %s\n", k, entries[k])
		}
	}
	fmt.Fprintf(w, "transcription: %s\n", cfg.TranscriptionModel)
	return nil
}

func newLogger(level string) zerolog.Logger {
	l := zerolog.New(os.Stderr).With().Timestamp().Logger()
	switch strings.ToLower(level) {
	case "off":
		return l.Level(zerolog.Disabled)
	case "error":
		return l.Level(zerolog.ErrorLevel)
	case "debug":
		return l.Level(zerolog.DebugLevel)
	default:
		return l.Level(zerolog.InfoLevel)
	}
}

// buildHandler wires the upstream client, gateway and router from cfg.
// It also applies the package-level HTTP knobs.
func buildHandler(cfg config.Config, token string, logger zerolog.Logger) (http.Handler, error) {
	images, chats, err := cfg.Tables()
	if err != nil {
		return nil, err
	}
	up, err := upstream.New(upstream.Options{
		Token:        token,
		InferenceURL: cfg.InferenceURL,
		ChatURL:      cfg.ChatURL,
		Timeout:      time.Duration(cfg.UpstreamTimeoutSeconds) * time.Second,
	})
	if err != nil {
		return nil, err
	}

	httpapi.SetLogger(logger)
	httpapi.SetDefaultLogLevel(cfg.LogLevel)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetMaxUploadBytes(cfg.MaxUploadBytes)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSOrigins)
	httpapi.SetSwagger(cfg.Swagger)

	uiURL := ""
	if cfg.UIDir != "" {
		dir, err := config.ExpandHome(cfg.UIDir)
		if err != nil {
			return nil, err
		}
		if config.DirExists(dir) {
			httpapi.SetUIDir(dir)
			uiURL = "/ui/"
		} else {
			logger.Warn().Str("dir", dir).Msg("ui directory not found, /ui disabled")
			httpapi.SetUIDir("")
		}
	}

	gw, err := gateway.New(gateway.Config{
		Upstream:           up,
		Images:             images,
		Chats:              chats,
		TranscriptionModel: cfg.TranscriptionModel,
		UIURL:              uiURL,
		TokenConfigured:    token != "",
		Logger:             logger,
	})
	if err != nil {
		return nil, err
	}
	return httpapi.NewMux(gw), nil
}

func runServer(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	logger := newLogger(cfg.LogLevel)
	token := config.Token()
	if token == "" {
		logger.Warn().Str("env", config.TokenEnv).Msg("no upstream token; provider calls will be anonymous")
	}
	handler, err := buildHandler(cfg, token, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	// Cancel in-flight upstream calls once shutdown begins.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	if cfg.KeepAliveURL != "" {
		p, err := keepalive.New(keepalive.Options{
			URL:      cfg.KeepAliveURL,
			Interval: time.Duration(cfg.KeepAliveIntervalSeconds) * time.Second,
			Logger:   logger,
		})
		if err != nil {
			return err
		}
		go p.Run(ctx)
	}

	srv := &http.Server{Addr: cfg.Addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("apistation listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	cancelBase()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	return nil
}
