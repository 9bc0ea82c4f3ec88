package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// TokenEnv names the variable holding the upstream access token.
const TokenEnv = "HF_TOKEN"

// ApplyEnv overlays APISTATION_* environment variables onto c.
func (c *Config) ApplyEnv() error {
	setStr(&c.Addr, os.Getenv("APISTATION_ADDR"))
	setStr(&c.UIDir, os.Getenv("APISTATION_UI_DIR"))
	setStr(&c.SecretsFile, os.Getenv("APISTATION_SECRETS_FILE"))
	setStr(&c.InferenceURL, os.Getenv("APISTATION_INFERENCE_URL"))
	setStr(&c.ChatURL, os.Getenv("APISTATION_CHAT_URL"))
	setStr(&c.LogLevel, os.Getenv("APISTATION_LOG_LEVEL"))
	setStr(&c.KeepAliveURL, os.Getenv("APISTATION_KEEPALIVE_URL"))
	for name, dst := range map[string]*int64{
		"APISTATION_MAX_BODY_BYTES":           &c.MaxBodyBytes,
		"APISTATION_MAX_UPLOAD_BYTES":         &c.MaxUploadBytes,
		"APISTATION_UPSTREAM_TIMEOUT_SECONDS": &c.UpstreamTimeoutSeconds,
		"APISTATION_KEEPALIVE_INTERVAL":       &c.KeepAliveIntervalSeconds,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = n
	}
	if v := os.Getenv("APISTATION_CORS_ORIGINS"); v != "" {
		c.CORSEnabled = true
		c.CORSOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.CORSOrigins = append(c.CORSOrigins, o)
			}
		}
	}
	return nil
}

// LoadSecrets loads a dotenv file into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadSecrets(path string) error {
	if path == "" {
		return nil
	}
	p, err := ExpandHome(path)
	if err != nil {
		return err
	}
	if err := godotenv.Load(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load secrets %s: %w", p, err)
	}
	return nil
}

// Token returns the upstream access token from the environment.
func Token() string { return strings.TrimSpace(os.Getenv(TokenEnv)) }

// ExpandHome expands a leading '~' to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}

// DirExists reports whether path names an existing directory.
func DirExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
