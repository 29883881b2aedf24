package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"

	h "invitepush/internal/delivery/http/helpers"
	"invitepush/internal/domain"
	"invitepush/internal/metrics"
)

// ClientIP returns the originating client address, preferring the first entry
// of X-Forwarded-For when a proxy sits in front of the service.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.Index(fwd, ","); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit returns a wrapper that consults the rate-limit store before
// passing the request on. Only an explicit deny produces a 429; an error from
// the store is logged and the request proceeds, so a rate-limit outage never
// blocks the notification path. GET requests bypass the check entirely.
func RateLimit(limiter domain.RateLimiter, endpoint string, maxRequests, windowMinutes int, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				next(w, r)
				return
			}
			ip := ClientIP(r)
			allowed, err := limiter.Allow(r.Context(), ip, endpoint, maxRequests, windowMinutes)
			if err != nil {
				logger.Error("rate limit check failed", "ip", ip, "error", err)
				next(w, r)
				return
			}
			if !allowed {
				logger.Warn("rate limit exceeded", "ip", ip, "endpoint", endpoint)
				metrics.RateLimitDenied.Inc()
				h.WriteJSON(w, http.StatusTooManyRequests, h.ErrorResponse{Error: "Too Many Requests"})
				return
			}
			next(w, r)
		}
	}
}
