// Package domain defines the canonical data model shared by the dispatch
// engine, the streaming session, and the HTTP surface. Everything here is
// scoped to a single round: one question, one fan-out, one result.
package domain

// StatusMarkerError is the literal status used when a failed call carries no
// numeric status code.
const StatusMarkerError = "error"

// StatusInfo describes the outcome of one upstream call. Status is either a
// numeric HTTP-style code (int) or the literal "error" marker when a failure
// carried no code.
type StatusInfo struct {
	Status any    `json:"status"`
	Detail string `json:"detail"`
}

// Message is a chat-style record accumulated during a round. Two messages are
// the same message iff their (Role, Content) pairs are equal.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Key returns the identity used for message deduplication.
func (m Message) Key() [2]string {
	return [2]string{m.Role, m.Content}
}

// Outcome is the terminal result of exactly one provider call. A successful
// call carries a non-nil Answer; a failed call carries a nil Answer, an
// error-flavored Status, and the originating error.
type Outcome struct {
	Provider string
	Node     string
	Answer   *string
	Status   StatusInfo
	Err      error
}

// Failed reports whether the outcome represents a failed call.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// ProviderError records one failed provider call in a Result.
type ProviderError struct {
	Provider string `json:"provider"`
	Message  string `json:"message"`
}

// Result is the aggregate of one complete round. Answers holds an entry for
// every dispatched provider; failed calls are present with an explicit null
// value.
// Messages and CompletionOrder preserve real completion order.
type Result struct {
	Question        string                `json:"question"`
	Answers         map[string]*string    `json:"answers"`
	APIStatus       map[string]StatusInfo `json:"api_status"`
	Messages        []Message             `json:"messages"`
	CompletionOrder []string              `json:"completion_order"`
	Errors          []ProviderError       `json:"errors"`
}
