package domain

// Event type discriminators as they appear on the wire.
const (
	EventTypePartial = "partial"
	EventTypeSummary = "summary"
	EventTypeError   = "error"
)

// StreamEvent is the discriminated union written to the client, one event per
// NDJSON line. Exactly one of PartialEvent, SummaryEvent, or ErrorEvent.
type StreamEvent interface {
	EventType() string
}

// PartialEvent reports one provider's outcome, emitted in completion order.
type PartialEvent struct {
	Type     string     `json:"type"`
	Model    string     `json:"model"`
	Node     *string    `json:"node"`
	Answer   *string    `json:"answer"`
	Status   StatusInfo `json:"status"`
	Messages []Message  `json:"messages"`
}

func (PartialEvent) EventType() string { return EventTypePartial }

// SummaryEvent carries the aggregated result. It is the last event of a
// successful round.
type SummaryEvent struct {
	Type   string `json:"type"`
	Result Result `json:"result"`
}

func (SummaryEvent) EventType() string { return EventTypeSummary }

// ErrorEvent reports an orchestration fault. It is the last event of a failed
// round; individual provider failures are partials, not errors.
type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (ErrorEvent) EventType() string { return EventTypeError }

// NewPartialEvent builds a partial event for one outcome.
func NewPartialEvent(model string, node *string, answer *string, status StatusInfo, messages []Message) PartialEvent {
	return PartialEvent{
		Type:     EventTypePartial,
		Model:    model,
		Node:     node,
		Answer:   answer,
		Status:   status,
		Messages: messages,
	}
}

// NewSummaryEvent wraps a result as the terminal summary event.
func NewSummaryEvent(result Result) SummaryEvent {
	return SummaryEvent{Type: EventTypeSummary, Result: result}
}

// NewErrorEvent wraps an orchestration fault as the terminal error event.
func NewErrorEvent(message string) ErrorEvent {
	return ErrorEvent{Type: EventTypeError, Message: message}
}
