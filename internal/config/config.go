// Package config loads service configuration from an optional YAML file
// overlaid with POLYASK_-prefixed environment variables.
package config

import (
	"os"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server    ServerConfig     `koanf:"server"`
	Storage   StorageConfig    `koanf:"storage"`
	Providers []ProviderConfig `koanf:"providers"`
}

type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
	// PortProbe is how many successive ports to try when the configured
	// port is already bound. 0 disables probing.
	PortProbe int `koanf:"port_probe"`
	// Timeout is the per-request deadline as a duration string ("120s").
	Timeout string `koanf:"timeout"`
}

type StorageConfig struct {
	// Type selects the round history backend: none, memory, or sqlite.
	Type   string       `koanf:"type"`
	SQLite SQLiteConfig `koanf:"sqlite"`
}

type SQLiteConfig struct {
	Path string `koanf:"path"`
}

// ProviderConfig describes one remote model-calling capability.
type ProviderConfig struct {
	// Name uniquely identifies the adapter instance ("openai", "upstage").
	Name string `koanf:"name"`
	// Type selects the adapter variant: openai, anthropic, gemini, or
	// openai-compatible.
	Type string `koanf:"type"`
	// Label is the client-facing provider identity ("OpenAI"). Defaults to
	// Name when empty.
	Label       string   `koanf:"label"`
	APIKey      string   `koanf:"api_key"`
	BaseURL     string   `koanf:"base_url"`
	Model       string   `koanf:"model"`
	Temperature *float32 `koanf:"temperature"`
	MaxTokens   int      `koanf:"max_tokens"`
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load reads config.yaml (when present) and overlays POLYASK_ environment
// variables. When no providers are configured explicitly, the default
// provider set is enabled for every API key found in the environment.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = "config.yaml"
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider("POLYASK_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "POLYASK_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, err
	}

	// Default values
	if !k.Exists("server.host") {
		k.Set("server.host", "127.0.0.1")
	}
	if !k.Exists("server.port") {
		k.Set("server.port", 8000)
	}
	if !k.Exists("server.port_probe") {
		k.Set("server.port_probe", 20)
	}
	if !k.Exists("server.timeout") {
		k.Set("server.timeout", "120s")
	}
	if !k.Exists("storage.type") {
		k.Set("storage.type", "none")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	for i := range cfg.Providers {
		cfg.Providers[i].APIKey = substituteEnvVars(cfg.Providers[i].APIKey)
		if cfg.Providers[i].Label == "" {
			cfg.Providers[i].Label = cfg.Providers[i].Name
		}
	}

	if len(cfg.Providers) == 0 {
		cfg.Providers = defaultProviders()
	}

	return &cfg, nil
}

// defaultProviders mirrors the stock adapter set: one entry per well-known
// provider, enabled only when its API key is present in the environment.
func defaultProviders() []ProviderConfig {
	candidates := []ProviderConfig{
		{Name: "openai", Type: "openai", Label: "OpenAI", APIKey: os.Getenv("OPENAI_API_KEY"), Model: "gpt-5-nano"},
		{Name: "gemini", Type: "gemini", Label: "Gemini", APIKey: os.Getenv("GOOGLE_API_KEY"), Model: "gemini-2.5-flash-lite"},
		{Name: "anthropic", Type: "anthropic", Label: "Anthropic", APIKey: os.Getenv("ANTHROPIC_API_KEY"), Model: "claude-haiku-4-5-20251001"},
		{Name: "upstage", Type: "openai-compatible", Label: "Upstage", APIKey: os.Getenv("UPSTAGE_API_KEY"), BaseURL: "https://api.upstage.ai/v1/solar", Model: "solar-mini"},
		{Name: "perplexity", Type: "openai-compatible", Label: "Perplexity", APIKey: os.Getenv("PPLX_API_KEY"), BaseURL: "https://api.perplexity.ai", Model: "sonar"},
	}

	var enabled []ProviderConfig
	for _, c := range candidates {
		if c.APIKey != "" {
			enabled = append(enabled, c)
		}
	}
	return enabled
}

func substituteEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}
