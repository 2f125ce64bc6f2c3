package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	sessionCookieName = "canvas_session"
	sessionIDField    = "sid"
)

const sessionIDKey contextKey = "session_id"

// NewSession binds every request to a cookie-backed session ID, minting one
// for first-time visitors. The ID is the key into the session state store.
func NewSession(store sessions.Store, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// An invalid cookie decodes as a fresh session; no reason to fail.
			sess, _ := store.Get(r, sessionCookieName)

			sessionID, _ := sess.Values[sessionIDField].(string)
			if _, err := uuid.Parse(sessionID); err != nil {
				sessionID = uuid.NewString()
				sess.Values[sessionIDField] = sessionID
				if err := sess.Save(r, w); err != nil {
					logger.Warn("failed to save session cookie", slog.Any("error", err))
				}
			}

			ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionIDFromContext returns the session ID attached by NewSession.
func SessionIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	raw, ok := ctx.Value(sessionIDKey).(string)
	if !ok {
		return uuid.Nil, false
	}
	sessionID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return sessionID, true
}
