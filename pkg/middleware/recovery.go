package middleware

import (
	"log/slog"
	"net/http"
)

// NewRecovery converts handler panics into a 500 instead of tearing down the
// connection, logging the panic value with the request ID.
func NewRecovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("handler panic", appendLoggerFields(r,
						"method", r.Method,
						"path", r.URL.Path,
						"panic", rec,
					)...)
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
