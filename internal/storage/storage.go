// Package storage persists completed rounds. Persistence is best-effort
// bookkeeping for the history endpoint; a storage failure never fails a
// round.
package storage

import (
	"context"
	"time"

	"github.com/karamlee/polyask/internal/domain"
)

// Round is one persisted dispatch round.
type Round struct {
	ID        string        `json:"id"`
	Question  string        `json:"question"`
	Result    domain.Result `json:"result"`
	CreatedAt time.Time     `json:"created_at"`
}

// RoundStore stores and lists completed rounds.
type RoundStore interface {
	// SaveRound persists one completed round.
	SaveRound(ctx context.Context, round *Round) error

	// ListRounds returns up to limit rounds, most recent first.
	ListRounds(ctx context.Context, limit int) ([]*Round, error)

	// Close releases any underlying resources.
	Close() error
}
