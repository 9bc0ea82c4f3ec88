// Package models holds the static alias tables that map short, route-facing
// model names to fully-qualified upstream model identifiers.
package models

import (
	"fmt"
	"sort"
	"strings"
)

// Default alias tables and the fixed speech-recognition model.
const (
	DefaultImageKey    = "flux-schnell"
	DefaultChatKey     = "qwen"
	TranscriptionModel = "openai/whisper-large-v3"
)

// DefaultImageModels is the built-in text-to-image alias table.
var DefaultImageModels = map[string]string{
	"flux-schnell": "black-forest-labs/FLUX.1-schnell",
	"flux-dev":     "black-forest-labs/FLUX.1-dev",
	"sdxl":         "stabilityai/stable-diffusion-xl-base-1.0",
	"sd3":          "stabilityai/stable-diffusion-3-medium-diffusers",
}

// DefaultChatModels is the built-in chat alias table.
var DefaultChatModels = map[string]string{
	"qwen":    "Qwen/Qwen2.5-72B-Instruct",
	"llama":   "meta-llama/Llama-3.1-8B-Instruct",
	"mistral": "mistralai/Mistral-7B-Instruct-v0.3",
}

// Table is a read-only alias table with a designated default key.
// It is safe for concurrent use because it is never mutated after New.
type Table struct {
	entries    map[string]string
	defaultKey string
}

// New copies entries into a Table. defaultKey must be present in entries.
func New(entries map[string]string, defaultKey string) (*Table, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("alias table is empty")
	}
	t := &Table{entries: make(map[string]string, len(entries)), defaultKey: defaultKey}
	for k, v := range entries {
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		if k == "" || v == "" {
			return nil, fmt.Errorf("alias table: empty key or model id (%q -> %q)", k, v)
		}
		t.entries[k] = v
	}
	if _, ok := t.entries[defaultKey]; !ok {
		return nil, fmt.Errorf("alias table: default key %q not present", defaultKey)
	}
	return t, nil
}

// MustNew is New for package-level tables; it panics on an invalid table.
func MustNew(entries map[string]string, defaultKey string) *Table {
	t, err := New(entries, defaultKey)
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve returns the upstream model id for alias. Unknown or empty aliases
// resolve to the default key's model; found reports whether alias itself matched.
func (t *Table) Resolve(alias string) (modelID string, found bool) {
	if id, ok := t.entries[alias]; ok {
		return id, true
	}
	return t.entries[t.defaultKey], false
}

// DefaultKey returns the alias substituted for unknown keys.
func (t *Table) DefaultKey() string { return t.defaultKey }

// Keys returns the alias keys in sorted order.
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Entries returns a copy of the alias table.
func (t *Table) Entries() map[string]string {
	out := make(map[string]string, len(t.entries))
	for k, v := range t.entries {
		out[k] = v
	}
	return out
}
