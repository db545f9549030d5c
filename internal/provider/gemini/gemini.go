// Package gemini implements the provider adapter for Google Gemini using the
// official google.golang.org/genai SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/karamlee/polyask/internal/config"
	"github.com/karamlee/polyask/internal/provider"
)

func init() {
	provider.RegisterFactory(provider.Factory{
		Type:        "gemini",
		Description: "Google Gemini API adapter",
		Create:      New,
		Validate:    validate,
	})
}

// Adapter calls the Gemini GenerateContent API.
type Adapter struct {
	client      *genai.Client
	name        string
	label       string
	model       string
	maxTokens   int32
	temperature *float32
}

// New creates an adapter from configuration.
func New(cfg config.ProviderConfig) (provider.Provider, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	return &Adapter{
		client:      client,
		name:        cfg.Name,
		label:       cfg.Label,
		model:       cfg.Model,
		maxTokens:   int32(cfg.MaxTokens),
		temperature: cfg.Temperature,
	}, nil
}

func (a *Adapter) Name() string  { return a.name }
func (a *Adapter) Label() string { return a.label }

// Invoke sends the question as plain text content.
func (a *Adapter) Invoke(ctx context.Context, question string) (*provider.Response, error) {
	genCfg := &genai.GenerateContentConfig{}
	if a.temperature != nil {
		genCfg.Temperature = genai.Ptr(*a.temperature)
	}
	if a.maxTokens > 0 {
		genCfg.MaxOutputTokens = a.maxTokens
	}

	response, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(question), genCfg)
	if err != nil {
		return nil, provider.WrapError(a.name, statusCodeOf(err), err)
	}

	finishReason := ""
	if len(response.Candidates) > 0 {
		finishReason = string(response.Candidates[0].FinishReason)
	}

	return &provider.Response{
		Content:      response.Text(),
		FinishReason: finishReason,
	}, nil
}

func statusCodeOf(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
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
