package middleware

import (
	"context"
	"net/http"
)

// SessionResolver resolves a session token to a user id. An unknown or
// expired token resolves to ("", nil); errors are reserved for store
// failures.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// SessionAuth resolves the session cookie into a principal and stores the
// user id in the request context. Resolution never halts the request:
// anonymous requests pass through untouched, and gating is left to the
// guard chain.
func SessionAuth(cookieName string, resolver SessionResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := resolver.Resolve(r.Context(), cookie.Value)
			if err != nil {
				// Store failure: proceed as anonymous.
				next.ServeHTTP(w, r)
				return
			}
			if userID == "" {
				// Dead session: still anonymous, but remember the cookie
				// was presented so the gate reports expiry, not a bare 401.
				ctx := context.WithValue(r.Context(), sessionStaleKey, true)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the authenticated user id from context. Empty means
// anonymous.
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

// staleSession reports whether the request carried a session cookie that
// did not resolve to a principal.
func staleSession(ctx context.Context) bool {
	stale, _ := ctx.Value(sessionStaleKey).(bool)
	return stale
}
