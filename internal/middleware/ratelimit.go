package middleware

import (
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/xuantrong94/chat-backend/internal/cache"
	"github.com/xuantrong94/chat-backend/internal/handlers"
)

// RateLimit rejects clients exceeding limit requests per fixed window,
// counted per client IP. The counter lives in the shared cache so multiple
// replicas see the same window. Counter failures let the request through
// rather than taking the API down with the cache.
func RateLimit(store cache.Cacher, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			count, err := store.Incr(r.Context(), "ratelimit:"+ip, window)
			if err != nil {
				zap.S().Warnw("rate limit counter unavailable", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(limit) {
				handlers.RespondErrorJSON(w, r, http.StatusTooManyRequests, handlers.ErrRateLimited.Error(), "Too many requests, slow down", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
