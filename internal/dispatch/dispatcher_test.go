package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/karamlee/polyask/internal/provider"
)

func TestDispatch_AllProvidersAccountedFor(t *testing.T) {
	providers := []provider.Provider{
		&stubProvider{name: "a", label: "A", answer: "1"},
		&stubProvider{name: "b", label: "B", err: errors.New("down")},
		&stubProvider{name: "c", label: "C", answer: "3"},
	}

	var got []string
	for outcome := range Dispatch(context.Background(), "q", providers) {
		got = append(got, outcome.Provider)
	}

	if len(got) != len(providers) {
		t.Fatalf("got %d outcomes, want %d", len(got), len(providers))
	}

	seen := make(map[string]bool)
	for _, p := range got {
		if seen[p] {
			t.Errorf("provider %s delivered twice", p)
		}
		seen[p] = true
	}
	for _, want := range []string{"A", "B", "C"} {
		if !seen[want] {
			t.Errorf("provider %s missing from outcomes", want)
		}
	}
}

func TestDispatch_CompletionOrderNotSubmissionOrder(t *testing.T) {
	// Submission order: slow, medium, fast. Expect arrival in reverse.
	providers := []provider.Provider{
		&stubProvider{name: "slow", label: "Slow", answer: "s", delay: 150 * time.Millisecond},
		&stubProvider{name: "medium", label: "Medium", answer: "m", delay: 75 * time.Millisecond},
		&stubProvider{name: "fast", label: "Fast", answer: "f"},
	}

	var order []string
	for outcome := range Dispatch(context.Background(), "q", providers) {
		order = append(order, outcome.Provider)
	}

	want := []string{"Fast", "Medium", "Slow"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("completion order = %v, want %v", order, want)
		}
	}
}

func TestDispatch_FailureDoesNotBlockOthers(t *testing.T) {
	providers := []provider.Provider{
		&stubProvider{name: "bad", label: "Bad", err: errors.New("auth failed")},
		&stubProvider{name: "good", label: "Good", answer: "ok"},
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		count := 0
		for range Dispatch(context.Background(), "q", providers) {
			count++
		}
		if count != 2 {
			t.Errorf("got %d outcomes, want 2", count)
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("dispatch did not complete")
	}
}

func TestDispatch_ZeroProviders(t *testing.T) {
	ch := Dispatch(context.Background(), "q", nil)

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected immediately closed channel with no outcomes")
		}
	case <-time.After(time.Second):
		t.Fatal("channel never closed")
	}
}

func TestDispatch_AbandonedConsumerDoesNotLeakProducers(t *testing.T) {
	providers := []provider.Provider{
		&stubProvider{name: "a", label: "A", answer: "1"},
		&stubProvider{name: "b", label: "B", answer: "2"},
	}

	// Read nothing: the buffered channel still lets every producer finish.
	Dispatch(context.Background(), "q", providers)

	// Give producers a moment; a deadlocked goroutine would be caught by
	// the race detector / goroutine dumps in CI, this is a smoke check.
	time.Sleep(50 * time.Millisecond)
}
