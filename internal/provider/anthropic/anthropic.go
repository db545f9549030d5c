// Package anthropic implements the provider adapter for the Anthropic
// Messages API using the official SDK.
package anthropic

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/karamlee/polyask/internal/config"
	"github.com/karamlee/polyask/internal/provider"
)

// defaultMaxTokens applies when the configuration leaves max_tokens unset;
// the Messages API requires an explicit value.
const defaultMaxTokens = 1024

func init() {
	provider.RegisterFactory(provider.Factory{
		Type:        "anthropic",
		Description: "Anthropic Messages API adapter",
		Create:      New,
		Validate:    validate,
	})
}

// Adapter calls the Anthropic Messages API.
type Adapter struct {
	client      anthropic.Client
	name        string
	label       string
	model       string
	maxTokens   int64
	temperature *float32
}

// New creates an adapter from configuration.
func New(cfg config.ProviderConfig) (provider.Provider, error) {
	maxTokens := int64(cfg.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return &Adapter{
		client:      anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		name:        cfg.Name,
		label:       cfg.Label,
		model:       cfg.Model,
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
	}, nil
}

func (a *Adapter) Name() string  { return a.name }
func (a *Adapter) Label() string { return a.label }

// Invoke sends the question as a single user message and concatenates the
// text blocks of the reply.
func (a *Adapter) Invoke(ctx context.Context, question string) (*provider.Response, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: a.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(question)),
		},
	}
	if a.temperature != nil {
		params.Temperature = anthropic.Float(float64(*a.temperature))
	}

	message, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return nil, provider.WrapError(a.name, statusCodeOf(err), err)
	}

	content := ""
	for _, block := range message.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			content += variant.Text
		}
	}

	return &provider.Response{
		Content:      content,
		FinishReason: string(message.StopReason),
	}, nil
}

func statusCodeOf(err error) int {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
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
