package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the name of the session cookie.
const CookieName = "triplog_session"

// Session identifies one logged-in browser session.
type Session struct {
	ID       string    `json:"-"`
	Username string    `json:"username"`
	IssuedAt time.Time `json:"issuedAt"`
}

// Sessions issues HS256 session tokens and remembers which are live.
// Live sessions are held in memory only, so restarting the process logs
// everyone out.
type Sessions struct {
	secret []byte
	now    func() time.Time

	mu   sync.Mutex
	live map[string]struct{}
}

// NewSessions returns a Sessions signing with secret.
func NewSessions(secret []byte) *Sessions {
	return &Sessions{secret: secret, now: time.Now, live: make(map[string]struct{})}
}

// Issue starts a session for username and returns its signed token.
func (s *Sessions) Issue(username string) (string, Session, error) {
	id, err := newSessionID()
	if err != nil {
		return "", Session{}, fmt.Errorf("auth.Sessions.Issue: %w", err)
	}
	now := s.now().UTC().Truncate(time.Second)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:       id,
		Subject:  username,
		IssuedAt: jwt.NewNumericDate(now),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", Session{}, fmt.Errorf("auth.Sessions.Issue: sign: %w", err)
	}

	s.mu.Lock()
	s.live[id] = struct{}{}
	s.mu.Unlock()

	return signed, Session{ID: id, Username: username, IssuedAt: now}, nil
}

// Verify returns the session for a token that this process issued and has
// not revoked. Any other token yields ErrUnauthorized.
func (s *Sessions) Verify(token string) (Session, error) {
	claims, err := s.parse(token)
	if err != nil {
		return Session{}, err
	}

	s.mu.Lock()
	_, ok := s.live[claims.ID]
	s.mu.Unlock()
	if !ok {
		return Session{}, fmt.Errorf("auth.Sessions.Verify: session revoked: %w", ErrUnauthorized)
	}

	sess := Session{ID: claims.ID, Username: claims.Subject}
	if claims.IssuedAt != nil {
		sess.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	return sess, nil
}

// Revoke ends the session with the given id. Unknown ids are ignored.
func (s *Sessions) Revoke(id string) {
	s.mu.Lock()
	delete(s.live, id)
	s.mu.Unlock()
}

func (s *Sessions) parse(token string) (*jwt.RegisteredClaims, error) {
	if token == "" {
		return nil, fmt.Errorf("auth.Sessions: empty token: %w", ErrUnauthorized)
	}
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid || claims.ID == "" {
		return nil, fmt.Errorf("auth.Sessions: invalid token: %w", errors.Join(ErrUnauthorized, err))
	}
	return claims, nil
}

func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

type ctxKey struct{}

// WithSession returns a copy of ctx carrying sess.
func WithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, sess)
}

// FromContext returns the session stored by WithSession.
func FromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(ctxKey{}).(Session)
	return sess, ok
}
