package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkordes/triplog/internal/auth"
)

// SessionVerifier resolves a session token. *auth.Sessions satisfies it.
type SessionVerifier interface {
	Verify(token string) (auth.Session, error)
}

// RequireSession rejects requests without a live session with 401.
// The token is read from the session cookie, falling back to an
// "Authorization: Bearer" header. The resolved session is stored in the
// request context (see auth.FromContext).
func RequireSession(v SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := v.Verify(SessionToken(r))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", "login required")
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), sess)))
		})
	}
}

// SessionToken extracts the session token from r, or "" if there is none.
func SessionToken(r *http.Request) string {
	if c, err := r.Cookie(auth.CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return ""
}

// writeError writes the API's standard JSON error envelope.
func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": msg},
	})
}
