// Package session orchestrates one streaming round: dispatch the question,
// emit each partial event as it completes, then emit the aggregated summary
// and close the stream. The client always receives a terminal event.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/karamlee/polyask/internal/dispatch"
	"github.com/karamlee/polyask/internal/domain"
	"github.com/karamlee/polyask/internal/provider"
	"github.com/karamlee/polyask/internal/storage"
)

// Emitter delivers stream events to the client transport. Emit is called
// from a single goroutine, one event at a time, in completion order.
type Emitter interface {
	Emit(ev domain.StreamEvent) error
}

// Session runs dispatch rounds against a fixed adapter registry. A session
// is stateless across rounds; nothing leaks from one question to the next.
type Session struct {
	registry *provider.Registry
	store    storage.RoundStore
	logger   *slog.Logger
}

// New creates a session. store may be nil when round history is disabled.
func New(registry *provider.Registry, store storage.RoundStore, logger *slog.Logger) *Session {
	return &Session{registry: registry, store: store, logger: logger}
}

// Run executes one round. An empty or whitespace-only question is rejected
// with domain.ErrEmptyQuestion before any event is emitted, so the caller can
// still answer with a plain HTTP error.
//
// Once dispatched, all provider calls run to completion: if the client
// disconnects mid-round the session stops emitting but keeps draining
// outcomes, so the dispatcher never strands a goroutine. An orchestration
// fault produces exactly one error event and no summary.
func (s *Session) Run(ctx context.Context, question string, emit Emitter) (err error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.ErrEmptyQuestion
	}

	roundID := uuid.New().String()
	logger := s.logger.With(slog.String("round_id", roundID))
	providers := s.registry.Providers()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("round failed", slog.Any("panic", r))
			// Best effort: the transport may already be gone.
			_ = emit.Emit(domain.NewErrorEvent(fmt.Sprintf("%v", r)))
		}
	}()

	logger.Info("round started",
		slog.Int("providers", len(providers)),
	)
	start := time.Now()

	agg := dispatch.NewAggregator(question)
	clientGone := false

	for outcome := range dispatch.Dispatch(ctx, question, providers) {
		ev := dispatch.Normalize(outcome)
		agg.Add(ev)

		logger.Info("provider completed",
			slog.String("provider", outcome.Provider),
			slog.Bool("failed", outcome.Failed()),
			slog.Any("status", outcome.Status.Status),
		)

		if clientGone {
			continue
		}
		if emitErr := emit.Emit(ev); emitErr != nil {
			clientGone = true
			logger.Warn("client went away, draining remaining outcomes",
				slog.String("error", emitErr.Error()),
			)
		}
	}

	result := agg.Result()
	if !clientGone {
		if emitErr := emit.Emit(domain.NewSummaryEvent(result)); emitErr != nil {
			logger.Warn("failed to emit summary", slog.String("error", emitErr.Error()))
		}
	}

	s.persist(ctx, roundID, question, result, logger)

	logger.Info("round completed",
		slog.Duration("duration", time.Since(start)),
		slog.Int("errors", len(result.Errors)),
	)
	return nil
}

// persist records the round for the history endpoint. Failures are logged,
// never surfaced: history is bookkeeping, not part of the round contract.
func (s *Session) persist(ctx context.Context, roundID, question string, result domain.Result, logger *slog.Logger) {
	if s.store == nil {
		return
	}

	round := &storage.Round{
		ID:        roundID,
		Question:  question,
		Result:    result,
		CreatedAt: time.Now(),
	}
	if err := s.store.SaveRound(ctx, round); err != nil {
		logger.Error("failed to persist round", slog.String("error", err.Error()))
	}
}
