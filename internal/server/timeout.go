package server

import (
	"context"
	"net/http"
	"time"
)

// TimeoutMiddleware caps how long one round may run. The deadline propagates
// through the session into every in-flight provider call, which observes it
// through its own context; cancellation is cooperative, the handler is not
// forcibly terminated. A non-positive timeout disables the cap entirely.
func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
