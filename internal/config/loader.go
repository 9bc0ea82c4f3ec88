package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"apistation/internal/models"
)

// Config holds runtime parameters for the gateway.
// Zero values mean "unspecified" and are replaced by Default() values in Merge.
type Config struct {
	Addr        string `json:"addr" yaml:"addr" toml:"addr"`
	UIDir       string `json:"ui_dir" yaml:"ui_dir" toml:"ui_dir"`
	SecretsFile string `json:"secrets_file" yaml:"secrets_file" toml:"secrets_file"`

	InferenceURL string `json:"inference_url" yaml:"inference_url" toml:"inference_url"`
	ChatURL      string `json:"chat_url" yaml:"chat_url" toml:"chat_url"`

	DefaultImageModel  string            `json:"default_image_model" yaml:"default_image_model" toml:"default_image_model"`
	DefaultChatModel   string            `json:"default_chat_model" yaml:"default_chat_model" toml:"default_chat_model"`
	ImageModels        map[string]string `json:"image_models" yaml:"image_models" toml:"image_models"`
	ChatModels         map[string]string `json:"chat_models" yaml:"chat_models" toml:"chat_models"`
	TranscriptionModel string            `json:"transcription_model" yaml:"transcription_model" toml:"transcription_model"`

	MaxBodyBytes           int64 `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	MaxUploadBytes         int64 `json:"max_upload_bytes" yaml:"max_upload_bytes" toml:"max_upload_bytes"`
	UpstreamTimeoutSeconds int64 `json:"upstream_timeout_seconds" yaml:"upstream_timeout_seconds" toml:"upstream_timeout_seconds"`

	LogLevel    string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	CORSEnabled bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	Swagger     bool     `json:"swagger" yaml:"swagger" toml:"swagger"`

	KeepAliveURL             string `json:"keepalive_url" yaml:"keepalive_url" toml:"keepalive_url"`
	KeepAliveIntervalSeconds int64  `json:"keepalive_interval_seconds" yaml:"keepalive_interval_seconds" toml:"keepalive_interval_seconds"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:               ":7860",
		SecretsFile:        ".env",
		InferenceURL:       "https://router.huggingface.co/hf-inference",
		ChatURL:            "https://router.huggingface.co/v1",
		DefaultImageModel:  models.DefaultImageKey,
		DefaultChatModel:   models.DefaultChatKey,
		ImageModels:        copyMap(models.DefaultImageModels),
		ChatModels:         copyMap(models.DefaultChatModels),
		TranscriptionModel: models.TranscriptionModel,
		MaxBodyBytes:       1 << 20,
		MaxUploadBytes:     25 << 20,
		LogLevel:           "info",
	}
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	p, err := ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(p)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("decode yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("decode json: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("decode toml: %w", err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// Merge returns base with every non-zero field of over applied on top.
func Merge(base, over Config) Config {
	out := base
	setStr(&out.Addr, over.Addr)
	setStr(&out.UIDir, over.UIDir)
	setStr(&out.SecretsFile, over.SecretsFile)
	setStr(&out.InferenceURL, over.InferenceURL)
	setStr(&out.ChatURL, over.ChatURL)
	setStr(&out.DefaultImageModel, over.DefaultImageModel)
	setStr(&out.DefaultChatModel, over.DefaultChatModel)
	setStr(&out.TranscriptionModel, over.TranscriptionModel)
	setStr(&out.LogLevel, over.LogLevel)
	setStr(&out.KeepAliveURL, over.KeepAliveURL)
	if len(over.ImageModels) > 0 {
		out.ImageModels = copyMap(over.ImageModels)
	}
	if len(over.ChatModels) > 0 {
		out.ChatModels = copyMap(over.ChatModels)
	}
	if over.MaxBodyBytes > 0 {
		out.MaxBodyBytes = over.MaxBodyBytes
	}
	if over.MaxUploadBytes > 0 {
		out.MaxUploadBytes = over.MaxUploadBytes
	}
	if over.UpstreamTimeoutSeconds > 0 {
		out.UpstreamTimeoutSeconds = over.UpstreamTimeoutSeconds
	}
	if over.KeepAliveIntervalSeconds > 0 {
		out.KeepAliveIntervalSeconds = over.KeepAliveIntervalSeconds
	}
	if over.CORSEnabled {
		out.CORSEnabled = true
	}
	if len(over.CORSOrigins) > 0 {
		out.CORSOrigins = append([]string(nil), over.CORSOrigins...)
	}
	if over.Swagger {
		out.Swagger = true
	}
	return out
}

// Tables builds the image and chat alias tables described by cfg.
func (c Config) Tables() (image, chat *models.Table, err error) {
	image, err = models.New(c.ImageModels, c.DefaultImageModel)
	if err != nil {
		return nil, nil, fmt.Errorf("image models: %w", err)
	}
	chat, err = models.New(c.ChatModels, c.DefaultChatModel)
	if err != nil {
		return nil, nil, fmt.Errorf("chat models: %w", err)
	}
	return image, chat, nil
}

func setStr(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
