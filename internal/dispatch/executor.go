// Package dispatch is the fan-out/fan-in engine: it launches one call per
// configured provider, converts every completion into an outcome, normalizes
// outcomes into stream events, and folds the event sequence into a result.
package dispatch

import (
	"context"
	"fmt"

	"github.com/karamlee/polyask/internal/domain"
	"github.com/karamlee/polyask/internal/provider"
)

// Execute invokes a single adapter and always produces an outcome. Every
// failure mode of Invoke, including a panicking adapter, is converted into a
// failure outcome; no error crosses this boundary. One provider's failure
// never aborts another provider's call or the round.
func Execute(ctx context.Context, p provider.Provider, question string) (outcome domain.Outcome) {
	node := "call_" + p.Name()
	outcome = domain.Outcome{Provider: p.Label(), Node: node}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("provider %s panicked: %v", p.Name(), r)
			outcome.Answer = nil
			outcome.Status = statusFromError(err)
			outcome.Err = err
		}
	}()

	resp, err := p.Invoke(ctx, question)
	if err != nil {
		outcome.Status = statusFromError(err)
		outcome.Err = err
		return outcome
	}

	outcome.Answer = &resp.Content
	outcome.Status = statusFromResponse(resp)
	return outcome
}

// statusFromResponse derives a status from a successful reply: the upstream
// code when exposed (else 200) and the finish reason (else "success").
func statusFromResponse(resp *provider.Response) domain.StatusInfo {
	status := domain.StatusInfo{Status: 200, Detail: "success"}
	if resp.StatusCode != 0 {
		status.Status = resp.StatusCode
	}
	if resp.FinishReason != "" {
		status.Detail = resp.FinishReason
	}
	return status
}

// statusFromError derives a status from a failed call: the embedded numeric
// code when one exists anywhere in the error chain, else the error marker.
func statusFromError(err error) domain.StatusInfo {
	if code, ok := domain.ErrorStatusCode(err); ok {
		return domain.StatusInfo{Status: code, Detail: err.Error()}
	}
	return domain.StatusInfo{Status: domain.StatusMarkerError, Detail: err.Error()}
}
