package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"vendorlink/gateway/pkg/proxy"
	"vendorlink/gateway/pkg/telemetry/logging"
)

// RecoveryMiddleware converts handler panics into a JSON 500 response. The
// panic and stack trace are logged; the client sees only a generic message.
func RecoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.ErrorContext(r.Context(), "panic in handler",
						"error", err,
						"request_id", logging.RequestIDFrom(r.Context()),
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)

					proxy.WriteError(w, http.StatusInternalServerError, "Internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
