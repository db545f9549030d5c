package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Host = %q, want 127.0.0.1", cfg.Server.Host)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Server.PortProbe != 20 {
		t.Errorf("PortProbe = %d, want 20", cfg.Server.PortProbe)
	}
	if cfg.Storage.Type != "none" {
		t.Errorf("Storage.Type = %q, want none", cfg.Storage.Type)
	}
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("POLYASK_SERVER__PORT", "9000")
	t.Setenv("POLYASK_STORAGE__TYPE", "memory")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Storage.Type != "memory" {
		t.Errorf("Storage.Type = %q, want memory", cfg.Storage.Type)
	}
}

func TestLoad_FileProvidersWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_OPENAI_KEY", "sk-test-123")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
providers:
  - name: openai
    type: openai
    label: OpenAI
    api_key: ${TEST_OPENAI_KEY}
    model: gpt-5-nano
  - name: upstage
    type: openai-compatible
    api_key: plain-key
    base_url: https://api.upstage.ai/v1/solar
    model: solar-mini
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Providers) != 2 {
		t.Fatalf("got %d providers, want 2", len(cfg.Providers))
	}
	if cfg.Providers[0].APIKey != "sk-test-123" {
		t.Errorf("APIKey = %q, want substituted value", cfg.Providers[0].APIKey)
	}
	// Label falls back to the provider name when unset.
	if cfg.Providers[1].Label != "upstage" {
		t.Errorf("Label = %q, want name fallback", cfg.Providers[1].Label)
	}
}

func TestLoad_DefaultProvidersFollowAPIKeys(t *testing.T) {
	for _, v := range []string{"OPENAI_API_KEY", "GOOGLE_API_KEY", "ANTHROPIC_API_KEY", "UPSTAGE_API_KEY", "PPLX_API_KEY"} {
		t.Setenv(v, "")
	}
	t.Setenv("OPENAI_API_KEY", "sk-1")
	t.Setenv("ANTHROPIC_API_KEY", "sk-2")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Providers) != 2 {
		t.Fatalf("got %d providers %v, want 2", len(cfg.Providers), cfg.Providers)
	}
	names := map[string]bool{}
	for _, p := range cfg.Providers {
		names[p.Name] = true
	}
	if !names["openai"] || !names["anthropic"] {
		t.Errorf("enabled providers = %v, want openai and anthropic", names)
	}
}
