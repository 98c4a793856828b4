// Package repo contains the durable media the ledger persists to.
// A medium is a key → blob store: the trip store writes its whole collection
// as one JSON document under a fixed key, exactly like browser local storage.
// No business logic lives here, only I/O.
package repo

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Medium.Load when nothing has been saved under
// the key yet. Callers treat it as "empty", not as a failure.
var ErrKeyNotFound = errors.New("key not found")

// Medium is the durable storage the stores persist to.
// Save replaces the whole value for key; there are no partial writes.
type Medium interface {
	// Load returns the last value saved under key.
	// Returns ErrKeyNotFound if the key has never been written.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save durably stores value under key, replacing any previous value.
	Save(ctx context.Context, key string, value []byte) error
}
