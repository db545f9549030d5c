package dispatch

import (
	"context"
	"sync"

	"github.com/karamlee/polyask/internal/domain"
	"github.com/karamlee/polyask/internal/provider"
)

// Dispatch launches one call per provider and returns a channel that yields
// outcomes in completion order. The channel is closed after exactly
// len(providers) outcomes have been delivered; no provider is ever dropped.
//
// The channel must be consumed by exactly one reader. The buffer holds every
// outcome, so producer goroutines never block on a slow consumer and always
// terminate, even if the consumer abandons the channel early.
func Dispatch(ctx context.Context, question string, providers []provider.Provider) <-chan domain.Outcome {
	outcomes := make(chan domain.Outcome, len(providers))

	var wg sync.WaitGroup
	for _, p := range providers {
		wg.Add(1)
		go func(p provider.Provider) {
			defer wg.Done()
			outcomes <- Execute(ctx, p, question)
		}(p)
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	return outcomes
}
