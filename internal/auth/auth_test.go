package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pkordes/triplog/internal/auth"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

func newAuthenticator(t *testing.T) *auth.Authenticator {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("0558"), bcrypt.MinCost)
	require.NoError(t, err)
	a, err := auth.NewAuthenticator("vsat", hash)
	require.NoError(t, err)
	return a
}

// ---- Authenticator ----

func TestAuthenticator_Login(t *testing.T) {
	a := newAuthenticator(t)

	assert.True(t, a.Login("vsat", "0558"))
	assert.False(t, a.Login("vsat", "wrong"))
	assert.False(t, a.Login("VSAT", "0558"))
	assert.False(t, a.Login("", ""))
}

func TestNewAuthenticator_RejectsBadInput(t *testing.T) {
	_, err := auth.NewAuthenticator("vsat", []byte("not-a-hash"))
	assert.Error(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("x"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = auth.NewAuthenticator("", hash)
	assert.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword(hash, []byte("secret")))
}

// ---- Sessions ----

func TestSessions_IssueVerifyRevoke(t *testing.T) {
	s := auth.NewSessions(secret)

	token, issued, err := s.Issue("vsat")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, got.ID)
	assert.Equal(t, "vsat", got.Username)

	s.Revoke(got.ID)
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
}

func TestSessions_SessionsAreIndependent(t *testing.T) {
	s := auth.NewSessions(secret)
	t1, s1, err := s.Issue("vsat")
	require.NoError(t, err)
	t2, _, err := s.Issue("vsat")
	require.NoError(t, err)

	s.Revoke(s1.ID)

	_, err = s.Verify(t1)
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
	_, err = s.Verify(t2)
	assert.NoError(t, err)
}

func TestSessions_RejectsForeignTokens(t *testing.T) {
	s := auth.NewSessions(secret)

	// Signed by another process with the same secret: not live here.
	other := auth.NewSessions(secret)
	foreign, _, err := other.Issue("vsat")
	require.NoError(t, err)
	_, err = s.Verify(foreign)
	assert.ErrorIs(t, err, auth.ErrUnauthorized)

	// Wrong secret.
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ID: "abc", Subject: "vsat"})
	signed, err := forged.SignedString([]byte("some-other-secret-value"))
	require.NoError(t, err)
	_, err = s.Verify(signed)
	assert.ErrorIs(t, err, auth.ErrUnauthorized)

	_, err = s.Verify("")
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
	_, err = s.Verify("garbage")
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
}

func TestSessionContext(t *testing.T) {
	_, ok := auth.FromContext(context.Background())
	assert.False(t, ok)

	want := auth.Session{ID: "id", Username: "vsat", IssuedAt: time.Unix(0, 0).UTC()}
	got, ok := auth.FromContext(auth.WithSession(context.Background(), want))
	require.True(t, ok)
	assert.Equal(t, want, got)
}
