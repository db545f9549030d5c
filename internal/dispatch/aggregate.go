package dispatch

import (
	"github.com/karamlee/polyask/internal/domain"
)

// Aggregator folds partial events into one result. It is a strict left fold:
// map contents are arrival-order independent, but Messages and
// CompletionOrder deliberately reflect real completion order. Not safe for
// concurrent use; exactly one consumer feeds it.
type Aggregator struct {
	result domain.Result
	seen   map[[2]string]bool
}

// NewAggregator seeds the fold with the user question as the first message.
func NewAggregator(question string) *Aggregator {
	userMessage := domain.Message{Role: "user", Content: question}

	a := &Aggregator{
		result: domain.Result{
			Question:        question,
			Answers:         make(map[string]*string),
			APIStatus:       make(map[string]domain.StatusInfo),
			Messages:        []domain.Message{userMessage},
			CompletionOrder: []string{},
			Errors:          []domain.ProviderError{},
		},
		seen: map[[2]string]bool{userMessage.Key(): true},
	}
	return a
}

// Add folds one partial event into the result. A nil answer marks a failed
// call: it still occupies the answers map (with an explicit null) and adds an
// entry to the error list.
func (a *Aggregator) Add(ev domain.PartialEvent) {
	a.result.Answers[ev.Model] = ev.Answer
	a.result.APIStatus[ev.Model] = ev.Status
	a.result.CompletionOrder = append(a.result.CompletionOrder, ev.Model)

	if ev.Answer == nil {
		a.result.Errors = append(a.result.Errors, domain.ProviderError{
			Provider: ev.Model,
			Message:  ev.Status.Detail,
		})
	}

	for _, m := range ev.Messages {
		key := m.Key()
		if a.seen[key] {
			continue
		}
		a.seen[key] = true
		a.result.Messages = append(a.result.Messages, m)
	}
}

// Result returns the folded result. The aggregator must not be fed again
// afterwards.
func (a *Aggregator) Result() domain.Result {
	return a.result
}
