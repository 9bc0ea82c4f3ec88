package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"apistation/internal/config"
	"apistation/internal/httpapi"
	"apistation/pkg/types"
)

func TestSplitCSV(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"a,,c", []string{"a", "c"}},
		{"", nil},
	}
	for _, c := range cases {
		got := splitCSV(c.in)
		if len(got) != len(c.want) {
			t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
			}
		}
	}
}

func TestModelsCommand(t *testing.T) {
	t.Setenv("APISTATION_CONFIG", "")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"models", "--secrets", filepath.Join(t.TempDir(), "missing.env")})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	s := out.String()
	for _, want := range []string{"image (default flux-schnell)", "chat (default qwen)", "sdxl", "openai/whisper-large-v3"} {
		if !strings.Contains(s, want) {
			t.Fatalf("missing %q in:\n%s", want, s)
		}
	}
}

func TestResolveConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "apistation.yaml")
	body := "addr: \":9000\"\nlog_level: debug\nswagger: true\nupstream_timeout_seconds: 30\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("APISTATION_LOG_LEVEL", "error")
	t.Setenv("APISTATION_UPSTREAM_TIMEOUT_SECONDS", "45")

	f := &flags{}
	cmd := newRootCmdWith(f)
	if err := cmd.ParseFlags([]string{"--config", cfgPath, "--secrets", "", "--addr", ":9100", "--cors-origins", "http://a, http://b"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg, err := resolveConfig(cmd, *f)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Addr != ":9100" {
		t.Fatalf("flag should win: addr=%s", cfg.Addr)
	}
	if cfg.LogLevel != "error" || cfg.UpstreamTimeoutSeconds != 45 {
		t.Fatalf("env should beat file: %+v", cfg)
	}
	if !cfg.Swagger {
		t.Fatalf("file value lost")
	}
	if !cfg.CORSEnabled || len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b" {
		t.Fatalf("cors=%v %v", cfg.CORSEnabled, cfg.CORSOrigins)
	}
	if cfg.ChatURL != config.Default().ChatURL {
		t.Fatalf("default lost: %s", cfg.ChatURL)
	}
}

func TestResolveConfigLoadsSecrets(t *testing.T) {
	dir := t.TempDir()
	secrets := filepath.Join(dir, ".env")
	if err := os.WriteFile(secrets, []byte("HF_TOKEN=hf_from_file\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("HF_TOKEN", "")
	os.Unsetenv("HF_TOKEN")
	f := &flags{}
	cmd := newRootCmdWith(f)
	if err := cmd.ParseFlags([]string{"--secrets", secrets}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := resolveConfig(cmd, *f); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := config.Token(); got != "hf_from_file" {
		t.Fatalf("token=%q", got)
	}
}

func TestBuildHandlerAdvertisesUI(t *testing.T) {
	defer httpapi.SetUIDir("")
	cfg := config.Default()
	cfg.UIDir = t.TempDir()
	h, err := buildHandler(cfg, "", zerolog.Nop())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	var root types.RootResponse
	if err := json.Unmarshal(w.Body.Bytes(), &root); err != nil {
		t.Fatalf("json: %v", err)
	}
	if root.UIURL != "/ui/" || root.Service == "" || len(root.Models.Chat) == 0 {
		t.Fatalf("root=%+v", root)
	}
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz without token=%d", w.Code)
	}
}

func TestBuildHandlerRejectsBadTables(t *testing.T) {
	cfg := config.Default()
	cfg.DefaultChatModel = "nope"
	if _, err := buildHandler(cfg, "tok", zerolog.Nop()); err == nil {
		t.Fatalf("expected error for unknown default chat alias")
	}
}
