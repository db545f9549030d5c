package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/karamlee/polyask/internal/config"
	"github.com/karamlee/polyask/internal/provider"
	"github.com/karamlee/polyask/internal/testutil"
)

func testConfig() config.ProviderConfig {
	return config.ProviderConfig{
		Name:   "openai",
		Type:   "openai",
		Label:  "OpenAI",
		APIKey: "test-key",
		Model:  "gpt-5-nano",
	}
}

func TestAdapter_Invoke(t *testing.T) {
	client := testutil.ReplayClient(t, "chat_completion")
	adapter := newAdapter(testConfig(), client)

	resp, err := adapter.Invoke(context.Background(), "ping")
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}

	if resp.Content != "pong" {
		t.Errorf("Content = %q, want %q", resp.Content, "pong")
	}
	if resp.FinishReason != "stop" {
		t.Errorf("FinishReason = %q, want %q", resp.FinishReason, "stop")
	}
}

func TestAdapter_InvokeRateLimited(t *testing.T) {
	client := testutil.ReplayClient(t, "chat_completion_rate_limited")
	adapter := newAdapter(testConfig(), client)

	_, err := adapter.Invoke(context.Background(), "ping")
	if err == nil {
		t.Fatal("Invoke() should fail on a 429 response")
	}

	var provErr *provider.Error
	if !errors.As(err, &provErr) {
		t.Fatalf("error should be a *provider.Error, got %T", err)
	}
	if provErr.StatusCode != 429 {
		t.Errorf("StatusCode = %d, want 429", provErr.StatusCode)
	}
	if provErr.Provider != "openai" {
		t.Errorf("Provider = %q, want %q", provErr.Provider, "openai")
	}
}

func TestAdapter_Identity(t *testing.T) {
	cfg := testConfig()
	cfg.Label = "GPT"
	adapter := newAdapter(cfg, nil)

	if adapter.Name() != "openai" {
		t.Errorf("Name() = %q, want %q", adapter.Name(), "openai")
	}
	if adapter.Label() != "GPT" {
		t.Errorf("Label() = %q, want %q", adapter.Label(), "GPT")
	}
}
