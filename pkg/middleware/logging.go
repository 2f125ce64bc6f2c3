package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

type countingWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *countingWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *countingWriter) Write(p []byte) (int, error) {
	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

// NewLogging creates a request logging middleware with payload size tracking.
func NewLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			logger.Info("request started", appendLoggerFields(r,
				"method", r.Method,
				"path", r.URL.Path,
				"peer", r.RemoteAddr,
				"request_size_bytes", r.ContentLength,
			)...)

			writer := &countingWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(writer, r)

			duration := time.Since(start)
			fields := appendLoggerFields(r,
				"method", r.Method,
				"path", r.URL.Path,
				"status", writer.status,
				"duration", duration.String(),
				"duration_ms", duration.Milliseconds(),
				"response_size_bytes", writer.bytes,
			)
			if writer.status >= http.StatusInternalServerError {
				logger.Error("request failed", fields...)
			} else {
				logger.Info("request completed", fields...)
			}
		})
	}
}

func appendLoggerFields(r *http.Request, base ...any) []any {
	if requestID, ok := RequestIDFromContext(r.Context()); ok && requestID != "" {
		base = append(base, "request_id", requestID)
	}
	return base
}
