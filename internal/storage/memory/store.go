// Package memory is an in-memory RoundStore, used in tests and when no
// durable storage is configured.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/karamlee/polyask/internal/storage"
)

// Store is an in-memory implementation of storage.RoundStore.
type Store struct {
	mu     sync.RWMutex
	rounds []*storage.Round
}

var _ storage.RoundStore = (*Store)(nil)

// New creates a new in-memory store.
func New() *Store {
	return &Store{}
}

func (s *Store) SaveRound(ctx context.Context, round *storage.Round) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if round.CreatedAt.IsZero() {
		round.CreatedAt = time.Now()
	}
	s.rounds = append(s.rounds, round)
	return nil
}

func (s *Store) ListRounds(ctx context.Context, limit int) ([]*storage.Round, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Most recent first
	result := make([]*storage.Round, 0, limit)
	for i := len(s.rounds) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, s.rounds[i])
	}
	return result, nil
}

func (s *Store) Close() error {
	return nil
}
