package handler

import (
	"net/http"
	"time"

	"github.com/pkordes/triplog/internal/auth"
	"github.com/pkordes/triplog/internal/middleware"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the body of a successful POST /api/login. The token is
// also set as a session cookie; API clients may send it as a Bearer token.
type LoginResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// SessionResponse is the body of GET /api/session.
type SessionResponse struct {
	Username string    `json:"username"`
	IssuedAt time.Time `json:"issuedAt"`
}

// Login handles POST /api/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	if !s.auth.Login(body.Username, body.Password) {
		s.log.WarnContext(r.Context(), "login failed", "username", body.Username)
		writeError(w, http.StatusUnauthorized, "unauthorized", "invalid username or password", nil)
		return
	}

	token, sess, err := s.sessions.Issue(body.Username)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	s.log.InfoContext(r.Context(), "login", "username", sess.Username)

	// No Expires or Max-Age: the cookie ends with the browser session.
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, LoginResponse{Username: sess.Username, Token: token})
}

// Logout handles POST /api/logout. It revokes the caller's session if there
// is one and always clears the cookie.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, err := s.sessions.Verify(middleware.SessionToken(r)); err == nil {
		s.sessions.Revoke(sess.ID)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// GetSession handles GET /api/session and reports who is logged in.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "login required", nil)
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{Username: sess.Username, IssuedAt: sess.IssuedAt})
}
