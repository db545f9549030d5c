package domain

import "errors"

// ErrEmptyQuestion rejects a round before dispatch. The message is
// operator-facing and surfaced verbatim in the HTTP 400 detail.
var ErrEmptyQuestion = errors.New("질문을 입력해주세요.")

// StatusCoder is implemented by errors that carry an HTTP-style status code,
// such as provider SDK API errors.
type StatusCoder interface {
	HTTPStatusCode() int
}

// ErrorStatusCode extracts a numeric status code from err if any error in its
// chain carries one. Returns (0, false) when no code is derivable.
func ErrorStatusCode(err error) (int, bool) {
	var sc StatusCoder
	if errors.As(err, &sc) {
		if code := sc.HTTPStatusCode(); code != 0 {
			return code, true
		}
	}
	return 0, false
}
