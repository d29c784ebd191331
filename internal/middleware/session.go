package middleware

import (
	"context"
	"net/http"
	"time"

	"storefront/internal/session"

	"go.uber.org/zap"
)

type contextKey string

const sessionKey contextKey = "session"

const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "session_id"
)

// SessionMiddleware attaches the visitor's session to the request context,
// starting a new one when the request carries no known id. The id is echoed
// in both the header and the cookie.
func SessionMiddleware(registry *session.Registry, ttl time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(SessionHeader)
			if id == "" {
				if c, err := r.Cookie(SessionCookie); err == nil {
					id = c.Value
				}
			}

			s, created := registry.Resolve(id)
			if created && id != "" {
				logger.Debug("Unknown session replaced",
					zap.String("requested", id),
					zap.String("session_id", s.ID),
				)
			}

			w.Header().Set(SessionHeader, s.ID)
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    s.ID,
				Path:     "/",
				MaxAge:   int(ttl.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := context.WithValue(r.Context(), sessionKey, s)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession extracts the session from the request context
func GetSession(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*session.Session)
	return s, ok
}

// GetSessionID returns the id of the request's session, if any
func GetSessionID(ctx context.Context) (string, bool) {
	s, ok := GetSession(ctx)
	if !ok {
		return "", false
	}
	return s.ID, true
}
