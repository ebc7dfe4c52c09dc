package handlers

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/cliptube/backend/internal/apierr"
)

// RateLimiter is the minimal interface required to guard credential endpoints.
type RateLimiter interface {
	Allow(key string) bool
}

// rateLimit wraps a handler so each client IP is bounded per scope.
func rateLimit(limiter RateLimiter, scope string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if limiter != nil && !limiter.Allow(rateLimitKey(r, scope)) {
			respondError(r.Context(), w, &apierr.Error{
				Status:  http.StatusTooManyRequests,
				Message: "too many requests, slow down",
			})
			return
		}
		next(w, r)
	}
}

func rateLimitKey(r *http.Request, scope string) string {
	ip := clientIP(r)
	if scope == "" {
		return ip
	}
	return fmt.Sprintf("%s:%s", scope, ip)
}

func clientIP(r *http.Request) string {
	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}
