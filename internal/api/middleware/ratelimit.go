package middleware

import (
	"net/http"

	"github.com/phrazzld/scry-assist/internal/api/shared"
	"golang.org/x/time/rate"
)

// NewRateLimitMiddleware rejects requests with 429 once limiter has no tokens
// left. The limiter is shared by every client of the wrapped routes.
func NewRateLimitMiddleware(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests,
					"Too many requests", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
