package middleware

import (
	"context"
	"net/http"
	"strings"
)

type sessionIDContextKey struct{}

// SessionHeader carries the browser session identifier. The server echoes it
// back so first-time clients learn their generated ID.
const SessionHeader = "X-Session-ID"

// SessionID resolves the caller's session identifier from the request header
// or cookie and exposes the resolved ID via ResolveSessionID. Sessions are
// created lazily by the handlers; this middleware only plumbs the identifier.
func SessionID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := strings.TrimSpace(r.Header.Get(SessionHeader))
		if sid == "" {
			if cookie, err := r.Cookie("studio_session"); err == nil {
				sid = strings.TrimSpace(cookie.Value)
			}
		}
		ctx := context.WithValue(r.Context(), sessionIDContextKey{}, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ResolveSessionID returns the session ID from the context, empty when the
// client has none yet.
func ResolveSessionID(ctx context.Context) string {
	if v, ok := ctx.Value(sessionIDContextKey{}).(string); ok {
		return v
	}
	return ""
}
