package dispatch

import (
	"fmt"

	"github.com/karamlee/polyask/internal/domain"
)

// Normalize converts one outcome into its partial stream event. Pure function
// of the outcome: the message delta is one assistant message, prefixed with
// the provider label on success or the label plus the error marker on
// failure. Deduplication is the consumer's concern.
func Normalize(o domain.Outcome) domain.PartialEvent {
	var message domain.Message
	if o.Failed() {
		message = domain.Message{
			Role:    "assistant",
			Content: fmt.Sprintf("[%s 오류] %s", o.Provider, o.Err.Error()),
		}
	} else {
		message = domain.Message{
			Role:    "assistant",
			Content: fmt.Sprintf("[%s] %s", o.Provider, *o.Answer),
		}
	}

	node := o.Node
	return domain.NewPartialEvent(o.Provider, &node, o.Answer, o.Status, []domain.Message{message})
}
