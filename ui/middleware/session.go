package middleware

import (
	"context"
	"log"
	"net/http"

	"gofarma/domain/core"
)

// SessionCookie names the cookie holding the browser session id
const SessionCookie = "gofarma_session"

type sessionKey struct{}

// EnsureSession is middleware that ensures every request carries a session id,
// issuing a new cookie when the browser has none or an invalid one.
func EnsureSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sid core.SessionID
		if c, err := r.Cookie(SessionCookie); err == nil {
			if parsed, err := core.ParseSessionID(c.Value); err == nil {
				sid = parsed
			} else {
				log.Printf("[EnsureSession] Discarding invalid session cookie: %v", err)
			}
		}

		if sid == "" {
			sid = core.NewSessionID()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sid.String(),
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sid)))
	})
}

// WithSession stores sid in ctx
func WithSession(ctx context.Context, sid core.SessionID) context.Context {
	return context.WithValue(ctx, sessionKey{}, sid)
}

// SessionFromContext returns the session id set by EnsureSession, or "".
func SessionFromContext(ctx context.Context) core.SessionID {
	sid, _ := ctx.Value(sessionKey{}).(core.SessionID)
	return sid
}
