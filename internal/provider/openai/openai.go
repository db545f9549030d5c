// Package openai implements the provider adapter for the OpenAI Chat
// Completions API and for OpenAI-compatible endpoints (Upstage, Perplexity,
// and anything else that speaks the same wire format behind a custom base
// URL).
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/karamlee/polyask/internal/config"
	"github.com/karamlee/polyask/internal/provider"
)

func init() {
	provider.RegisterFactory(provider.Factory{
		Type:        "openai",
		Description: "OpenAI Chat Completions API adapter",
		Create:      New,
		Validate:    validate,
	})
	provider.RegisterFactory(provider.Factory{
		Type:        "openai-compatible",
		Description: "OpenAI-compatible API adapter with custom base URL",
		Create:      New,
		Validate:    validateCompatible,
	})
}

// Adapter calls one OpenAI-style chat completion endpoint.
type Adapter struct {
	client      *goopenai.Client
	name        string
	label       string
	model       string
	maxTokens   int
	temperature *float32
}

// New creates an adapter from configuration. A BaseURL switches the client to
// a compatible third-party endpoint.
func New(cfg config.ProviderConfig) (provider.Provider, error) {
	return newAdapter(cfg, nil), nil
}

// newAdapter allows tests to inject a recording HTTP client.
func newAdapter(cfg config.ProviderConfig, httpClient *http.Client) *Adapter {
	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if httpClient != nil {
		clientCfg.HTTPClient = httpClient
	}

	return &Adapter{
		client:      goopenai.NewClientWithConfig(clientCfg),
		name:        cfg.Name,
		label:       cfg.Label,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
}

func (a *Adapter) Name() string  { return a.name }
func (a *Adapter) Label() string { return a.label }

// Invoke sends the question as a single user message.
func (a *Adapter) Invoke(ctx context.Context, question string) (*provider.Response, error) {
	req := goopenai.ChatCompletionRequest{
		Model: a.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: question},
		},
	}
	if a.maxTokens > 0 {
		req.MaxTokens = a.maxTokens
	}
	if a.temperature != nil {
		req.Temperature = *a.temperature
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, provider.WrapError(a.name, statusCodeOf(err), err)
	}

	if len(resp.Choices) == 0 {
		return nil, provider.WrapError(a.name, 0, fmt.Errorf("empty choices in response"))
	}

	choice := resp.Choices[0]
	return &provider.Response{
		Content:      choice.Message.Content,
		FinishReason: string(choice.FinishReason),
	}, nil
}

// statusCodeOf digs the upstream HTTP status out of go-openai's error types.
func statusCodeOf(err error) int {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

func validate(cfg config.ProviderConfig) error {
	if cfg.APIKey == "" {
		return fmt.Errorf("api_key is required")
	}
	if cfg.Model == "" {
		return fmt.Errorf("model is required")
	}
	return nil
}

func validateCompatible(cfg config.ProviderConfig) error {
	if err := validate(cfg); err != nil {
		return err
	}
	if cfg.BaseURL == "" {
		return fmt.Errorf("base_url is required for openai-compatible providers")
	}
	return nil
}
