// Package sqlite is a SQLite-backed RoundStore.
package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/karamlee/polyask/internal/domain"
	"github.com/karamlee/polyask/internal/storage"
)

// Store is a SQLite implementation of storage.RoundStore.
type Store struct {
	db *sqlx.DB
}

var _ storage.RoundStore = (*Store)(nil)

// New opens (or creates) the database at dbPath and initializes the schema.
// Missing parent directories are created; the driver will not.
func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS rounds (
		id TEXT PRIMARY KEY,
		question TEXT NOT NULL,
		result TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`)
	return err
}

func (s *Store) SaveRound(ctx context.Context, round *storage.Round) error {
	if round.CreatedAt.IsZero() {
		round.CreatedAt = time.Now()
	}

	resultJSON, err := json.Marshal(round.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO rounds (id, question, result, created_at) VALUES (?, ?, ?, ?)`,
		round.ID, round.Question, string(resultJSON), round.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert round: %w", err)
	}
	return nil
}

func (s *Store) ListRounds(ctx context.Context, limit int) ([]*storage.Round, error) {
	type row struct {
		ID        string    `db:"id"`
		Question  string    `db:"question"`
		Result    string    `db:"result"`
		CreatedAt time.Time `db:"created_at"`
	}

	var rows []row
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, question, result, created_at FROM rounds ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}

	rounds := make([]*storage.Round, 0, len(rows))
	for _, r := range rows {
		var result domain.Result
		if err := json.Unmarshal([]byte(r.Result), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal round %s: %w", r.ID, err)
		}
		rounds = append(rounds, &storage.Round{
			ID:        r.ID,
			Question:  r.Question,
			Result:    result,
			CreatedAt: r.CreatedAt,
		})
	}
	return rounds, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
