package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "addr: :9999\nui_dir: /srv/ui\ndefault_chat_model: small\nchat_models:\n  small: org/small\nmax_body_bytes: 2048\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.UIDir != "/srv/ui" || cfg.DefaultChatModel != "small" || cfg.ChatModels["small"] != "org/small" || cfg.MaxBodyBytes != 2048 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","inference_url":"http://up","keepalive_url":"http://space","keepalive_interval_seconds":300}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.InferenceURL != "http://up" || cfg.KeepAliveURL != "http://space" || cfg.KeepAliveIntervalSeconds != 300 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "addr=\":8081\"\nchat_url=\"http://chat\"\ncors_enabled=true\ncors_origins=[\"http://a\"]\n[image_models]\nfast=\"org/fast\"\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8081" || cfg.ChatURL != "http://chat" || !cfg.CORSEnabled || len(cfg.CORSOrigins) != 1 || cfg.ImageModels["fast"] != "org/fast" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
	p = writeTempFile(t, d, "bad.json", "{")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestMergeKeepsDefaultsForZeroValues(t *testing.T) {
	base := Default()
	out := Merge(base, Config{Addr: ":1", MaxUploadBytes: 10})
	if out.Addr != ":1" || out.MaxUploadBytes != 10 {
		t.Fatalf("override not applied: %+v", out)
	}
	if out.InferenceURL != base.InferenceURL || out.MaxBodyBytes != base.MaxBodyBytes || len(out.ImageModels) != len(base.ImageModels) {
		t.Fatalf("defaults lost: %+v", out)
	}
}

func TestDefaultTablesResolve(t *testing.T) {
	img, chat, err := Default().Tables()
	if err != nil {
		t.Fatalf("tables: %v", err)
	}
	if id, _ := img.Resolve("does-not-exist"); id != "black-forest-labs/FLUX.1-schnell" {
		t.Fatalf("image default=%q", id)
	}
	if id, _ := chat.Resolve("llama"); id != "meta-llama/Llama-3.1-8B-Instruct" {
		t.Fatalf("chat llama=%q", id)
	}
}

func TestTablesRejectMissingDefault(t *testing.T) {
	cfg := Default()
	cfg.DefaultChatModel = "nope"
	if _, _, err := cfg.Tables(); err == nil {
		t.Fatalf("expected error for unknown default chat alias")
	}
}
