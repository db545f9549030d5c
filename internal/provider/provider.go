// Package provider defines the adapter contract for remote model calls and
// the factory registry used to construct the configured adapter set.
//
// # Adding a New Provider
//
// Each adapter package registers itself via init():
//
//	func init() {
//	    provider.RegisterFactory(provider.Factory{
//	        Type:        "gemini",
//	        Description: "Google Gemini API adapter",
//	        Create:      New,
//	    })
//	}
//
// Adapter packages must be imported (via blank import) by the binary or test
// that needs them so their init() functions run.
package provider

import "context"

// Provider wraps one remote model-calling capability. Invoke performs exactly
// one outbound call; it does not retry.
type Provider interface {
	// Name is the stable short identifier used as the key for all
	// per-provider maps in a round.
	Name() string

	// Label is the client-facing display identity ("OpenAI").
	Label() string

	// Invoke sends the question upstream and returns the provider's answer
	// with enough metadata to derive a status.
	Invoke(ctx context.Context, question string) (*Response, error)
}

// Response is the normalized successful reply from a provider. It replaces
// duck typing on provider-native response objects with an explicit capability
// set: text content plus optional status metadata.
type Response struct {
	// Content is the answer text.
	Content string

	// FinishReason is the provider-reported completion reason, empty when
	// the provider does not expose one.
	FinishReason string

	// StatusCode is the upstream HTTP status when known, 0 otherwise.
	StatusCode int
}
