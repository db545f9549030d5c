package provider

import "fmt"

// Error is the normalized failure returned by adapters. It preserves the
// upstream HTTP status code when the SDK exposed one so the dispatch layer
// can surface it instead of the generic error marker.
type Error struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatusCode implements domain.StatusCoder.
func (e *Error) HTTPStatusCode() int {
	return e.StatusCode
}

// WrapError normalizes an adapter failure. A zero statusCode means the
// upstream call never produced one.
func WrapError(providerName string, statusCode int, err error) *Error {
	return &Error{Provider: providerName, StatusCode: statusCode, Err: err}
}
