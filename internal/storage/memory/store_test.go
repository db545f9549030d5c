package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/karamlee/polyask/internal/domain"
	"github.com/karamlee/polyask/internal/storage"
)

func TestStore_SaveAndList(t *testing.T) {
	store := New()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		round := &storage.Round{
			ID:       fmt.Sprintf("round-%d", i),
			Question: fmt.Sprintf("question %d", i),
			Result:   domain.Result{Question: fmt.Sprintf("question %d", i)},
		}
		if err := store.SaveRound(ctx, round); err != nil {
			t.Fatalf("SaveRound() error = %v", err)
		}
	}

	rounds, err := store.ListRounds(ctx, 2)
	if err != nil {
		t.Fatalf("ListRounds() error = %v", err)
	}

	if len(rounds) != 2 {
		t.Fatalf("got %d rounds, want 2", len(rounds))
	}
	// Most recent first
	if rounds[0].ID != "round-2" || rounds[1].ID != "round-1" {
		t.Errorf("order = [%s %s], want [round-2 round-1]", rounds[0].ID, rounds[1].ID)
	}
}

func TestStore_ListEmpty(t *testing.T) {
	store := New()

	rounds, err := store.ListRounds(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRounds() error = %v", err)
	}
	if len(rounds) != 0 {
		t.Errorf("got %d rounds, want 0", len(rounds))
	}
}
