package e2e

import (
	"bytes"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"apistation/internal/config"
	"apistation/internal/gateway"
	"apistation/internal/httpapi"
	"apistation/internal/upstream"
)

// TestLive_Provider exercises the real provider.
// Skips unless APISTATION_LIVE=1 and HF_TOKEN is set.
func TestLive_Provider(t *testing.T) {
	if os.Getenv("APISTATION_LIVE") != "1" {
		t.Skip("APISTATION_LIVE not set; skipping live provider test")
	}
	token := config.Token()
	if token == "" {
		t.Skip("HF_TOKEN not set; skipping live provider test")
	}
	cfg := config.Default()
	up, err := upstream.New(upstream.Options{
		Token:        token,
		InferenceURL: cfg.InferenceURL,
		ChatURL:      cfg.ChatURL,
		Timeout:      2 * time.Minute,
	})
	if err != nil {
		t.Fatalf("upstream: %v", err)
	}
	gw, err := gateway.New(gateway.Config{Upstream: up, TokenConfigured: true, Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("gateway: %v", err)
	}
	srv := httptest.NewServer(httpapi.NewMux(gw))
	defer srv.Close()

	resp, body := postJSON(t, srv.URL+"/chat/completions", `{"messages":[{"role":"user","content":"Write a haiku about uptime."}],"max_tokens":64}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("chat status=%d body=%s", resp.StatusCode, body)
	}
	t.Logf("chat: %s", strings.TrimSpace(string(body)))

	resp, body = postJSON(t, srv.URL+"/generate/image", `{"prompt":"a small red lighthouse","width":512,"height":512}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("image status=%d body=%s", resp.StatusCode, body)
	}
	if _, err := png.Decode(bytes.NewReader(body)); err != nil {
		t.Fatalf("image is not a png: %v", err)
	}
}
