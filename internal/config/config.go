// Package config loads service configuration from an optional
// config.yaml overlaid with PARTS_-prefixed environment variables.
// The loaded Config is passed explicitly into every pipeline
// constructor; nothing reads it from ambient state.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Gemini    GeminiConfig    `koanf:"gemini"`
	Inventory InventoryConfig `koanf:"inventory"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Store     StoreConfig     `koanf:"store"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
}

type GeminiConfig struct {
	APIKey string `koanf:"api_key"`
	Model  string `koanf:"model"`
	// Semantic enables catalog-wide semantic matching: one reasoner
	// call classifies, matches and replies. Falls back to the
	// classify-then-filter path when disabled or no key is configured.
	Semantic           bool `koanf:"semantic"`
	HistoryWindow      int  `koanf:"history_window"`
	HistoryTokenBudget int  `koanf:"history_token_budget"`
	// PreviewCount bounds how many matched products are serialized
	// into the summary prompt.
	PreviewCount int `koanf:"preview_count"`
}

type InventoryConfig struct {
	Mode         string `koanf:"mode"` // local or remote
	RemoteURL    string `koanf:"remote_url"`
	LocalDelayMS int    `koanf:"local_delay_ms"`
}

type CatalogConfig struct {
	Path string `koanf:"path"` // sqlite database path
}

type StoreConfig struct {
	Name           string `koanf:"name"`
	WhatsAppNumber string `koanf:"whatsapp_number"`
	// Greeting overrides the canned welcome message that opens every
	// conversation. Empty keeps the default.
	Greeting string `koanf:"greeting"`
}

const (
	ModeLocal  = "local"
	ModeRemote = "remote"
)

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load reads config.yaml (when present) and the environment, applies
// defaults, and validates mode selection.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider("config.yaml"), yaml.Parser()); err != nil {
		// File not found is OK, we'll use env vars
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	if err := k.Load(env.Provider("PARTS_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "PARTS_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, err
	}

	// Default values
	defaults := map[string]any{
		"server.port":                 8080,
		"gemini.model":                "gemini-2.5-flash",
		"gemini.history_window":       12,
		"gemini.history_token_budget": 4096,
		"gemini.preview_count":        8,
		"inventory.mode":              ModeLocal,
		"inventory.local_delay_ms":    600,
		"catalog.path":                "./data/catalog.db",
		"store.name":                  "Repuestos Express",
	}
	for key, val := range defaults {
		if !k.Exists(key) {
			k.Set(key, val)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	cfg.Gemini.APIKey = substituteEnvVars(cfg.Gemini.APIKey)

	switch cfg.Inventory.Mode {
	case ModeLocal:
	case ModeRemote:
		if cfg.Inventory.RemoteURL == "" {
			return nil, fmt.Errorf("inventory.remote_url is required when inventory.mode is %q", ModeRemote)
		}
	default:
		return nil, fmt.Errorf("unknown inventory.mode %q", cfg.Inventory.Mode)
	}

	return &cfg, nil
}

func substituteEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}
