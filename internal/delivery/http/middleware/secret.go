package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	h "invitepush/internal/delivery/http/helpers"
)

// RequireWebhookSecret returns a wrapper that checks the shared secret the
// webhook sender puts in the Authorization header. An empty secret disables
// the check. GET health probes are never challenged.
func RequireWebhookSecret(secret string, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if secret == "" {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				next(w, r)
				return
			}
			auth := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if subtle.ConstantTimeCompare([]byte(auth), []byte(secret)) != 1 {
				logger.Warn("webhook secret mismatch", "ip", ClientIP(r))
				h.WriteJSON(w, http.StatusUnauthorized, h.ErrorResponse{Error: "Unauthorized"})
				return
			}
			next(w, r)
		}
	}
}
