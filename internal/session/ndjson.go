package session

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/karamlee/polyask/internal/domain"
)

// NDJSONEmitter writes stream events as newline-delimited JSON, flushing
// after every line so the client observes completion order in real time.
type NDJSONEmitter struct {
	w       io.Writer
	flusher http.Flusher
}

var _ Emitter = (*NDJSONEmitter)(nil)

// NewNDJSONEmitter wraps a writer. When w is an http.ResponseWriter that
// supports flushing, each event is flushed to the wire immediately.
func NewNDJSONEmitter(w io.Writer) *NDJSONEmitter {
	e := &NDJSONEmitter{w: w}
	if f, ok := w.(http.Flusher); ok {
		e.flusher = f
	}
	return e
}

func (e *NDJSONEmitter) Emit(ev domain.StreamEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if _, err := e.w.Write(data); err != nil {
		return err
	}
	if e.flusher != nil {
		e.flusher.Flush()
	}
	return nil
}
