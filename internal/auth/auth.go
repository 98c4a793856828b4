// Package auth guards the ledger behind a single configured credential and
// tracks the sessions issued for it.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrUnauthorized is returned for a missing, malformed, forged or revoked
// session token. Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// Authenticator checks login attempts against one username and bcrypt hash.
type Authenticator struct {
	username     []byte
	passwordHash []byte
}

// NewAuthenticator returns an Authenticator for username whose password
// matches passwordHash (a bcrypt hash).
func NewAuthenticator(username string, passwordHash []byte) (*Authenticator, error) {
	if username == "" {
		return nil, errors.New("auth.NewAuthenticator: empty username")
	}
	if _, err := bcrypt.Cost(passwordHash); err != nil {
		return nil, fmt.Errorf("auth.NewAuthenticator: password hash: %w", err)
	}
	return &Authenticator{username: []byte(username), passwordHash: passwordHash}, nil
}

// HashPassword returns a bcrypt hash of password at the default cost.
func HashPassword(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth.HashPassword: %w", err)
	}
	return hash, nil
}

// Login reports whether username and password match the configured
// credential. The password hash is always checked so a wrong username takes
// as long as a wrong password.
func (a *Authenticator) Login(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), a.username) == 1
	passOK := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) == nil
	return userOK && passOK
}
