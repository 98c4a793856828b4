// Package store owns the authoritative in-memory state of the ledger and keeps
// it in step with a durable repo.Medium.
//
// Each store is constructed once at startup from the medium and injected into
// the services that need it. Every mutation writes the complete collection to
// the medium before the new state becomes visible, so a reader never observes
// a state that was not persisted.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/repo"
)

// TripsKey is the medium key the trip collection is stored under.
const TripsKey = "trip_records"

// CorruptTripsKey receives a verbatim copy of a trip document that could not
// be fully read, before anything is written over it.
const CorruptTripsKey = TripsKey + ".corrupt"

// TripStore holds the ordered trip collection.
// Trips are kept sorted by Date descending; equal dates are ordered by
// CreatedAt descending and then ID descending, so the order never depends on
// insertion history.
type TripStore struct {
	mu     sync.RWMutex
	medium repo.Medium
	log    *slog.Logger
	trips  []domain.Trip
}

// OpenTrips loads the trip collection from medium.
// It never fails: a missing key yields an empty store, and an unreadable
// medium is logged and treated as empty. A document that is not a JSON array
// starts the store empty; individual records that cannot be read are skipped.
// In both of those cases the original document is first copied to
// CorruptTripsKey.
func OpenTrips(ctx context.Context, medium repo.Medium, log *slog.Logger) *TripStore {
	if log == nil {
		log = slog.Default()
	}
	s := &TripStore{medium: medium, log: log, trips: []domain.Trip{}}

	raw, err := medium.Load(ctx, TripsKey)
	switch {
	case errors.Is(err, repo.ErrKeyNotFound):
		return s
	case err != nil:
		log.WarnContext(ctx, "trip storage unavailable, starting empty", "key", TripsKey, "error", err)
		return s
	}

	trips, skipped, err := decodeTrips(raw)
	if err != nil {
		log.WarnContext(ctx, "trip storage corrupt, starting empty", "key", TripsKey, "error", err)
		s.preserve(ctx, raw)
		return s
	}
	if len(skipped) > 0 {
		log.WarnContext(ctx, "skipped unreadable trip records",
			"key", TripsKey, "skipped", len(skipped), "kept", len(trips), "error", errors.Join(skipped...))
		s.preserve(ctx, raw)
	}
	sortTrips(trips)
	s.trips = trips
	log.DebugContext(ctx, "trips loaded", "count", len(trips))
	return s
}

// preserve copies an unreadable document to CorruptTripsKey so the next
// commit does not destroy the only copy.
func (s *TripStore) preserve(ctx context.Context, raw []byte) {
	if err := s.medium.Save(ctx, CorruptTripsKey, raw); err != nil {
		s.log.WarnContext(ctx, "could not preserve unreadable trip document", "key", CorruptTripsKey, "error", err)
		return
	}
	s.log.WarnContext(ctx, "unreadable trip document preserved", "key", CorruptTripsKey, "bytes", len(raw))
}

// All returns a copy of the ordered collection.
func (s *TripStore) All() []domain.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.trips)
}

// Len returns the number of trips.
func (s *TripStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.trips)
}

// Get returns the trip with the given ID.
func (s *TripStore) Get(id string) (domain.Trip, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return domain.Trip{}, false
	}
	return s.trips[i], true
}

// Query returns the trips passing f whose searchable fields contain search,
// in collection order. The filter is not validated here.
func (s *TripStore) Query(f domain.Filter, search string) []domain.Trip {
	return domain.Search(f.Apply(s.All()), search)
}

// Add inserts trip and reorders the collection.
// Returns domain.ErrConflict if a trip with the same ID already exists.
func (s *TripStore) Add(ctx context.Context, trip domain.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(trip.ID) >= 0 {
		return fmt.Errorf("store.TripStore.Add: id %q: %w", trip.ID, domain.ErrConflict)
	}

	next := make([]domain.Trip, 0, len(s.trips)+1)
	next = append(next, s.trips...)
	next = append(next, normalizeTrip(trip))

	if err := s.commit(ctx, next); err != nil {
		return fmt.Errorf("store.TripStore.Add: %w", err)
	}
	return nil
}

// Update replaces the trip with the same ID and reorders the collection.
// CreatedAt is kept from the stored trip.
// Returns domain.ErrNotFound if no trip has that ID.
func (s *TripStore) Update(ctx context.Context, trip domain.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(trip.ID)
	if i < 0 {
		return fmt.Errorf("store.TripStore.Update: id %q: %w", trip.ID, domain.ErrNotFound)
	}

	trip.CreatedAt = s.trips[i].CreatedAt
	next := slices.Clone(s.trips)
	next[i] = normalizeTrip(trip)

	if err := s.commit(ctx, next); err != nil {
		return fmt.Errorf("store.TripStore.Update: %w", err)
	}
	return nil
}

// Delete removes the trip with the given ID.
// Deleting an unknown ID is a no-op: nothing is written and nil is returned.
func (s *TripStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}

	next := slices.Delete(slices.Clone(s.trips), i, i+1)
	if err := s.commit(ctx, next); err != nil {
		return fmt.Errorf("store.TripStore.Delete: %w", err)
	}
	return nil
}

// SetStatus changes only the status of the trip with the given ID.
// The collection order is unaffected because status is not a sort key.
// Returns domain.ErrValidation for an unknown status and domain.ErrNotFound
// for an unknown ID.
func (s *TripStore) SetStatus(ctx context.Context, id string, status domain.Status) error {
	if !status.Valid() {
		return fmt.Errorf("store.TripStore.SetStatus: %w: unknown status %q", domain.ErrValidation, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("store.TripStore.SetStatus: id %q: %w", id, domain.ErrNotFound)
	}
	if s.trips[i].Status == status {
		return nil
	}

	next := slices.Clone(s.trips)
	next[i].Status = status

	if err := s.commit(ctx, next); err != nil {
		return fmt.Errorf("store.TripStore.SetStatus: %w", err)
	}
	return nil
}

// commit sorts next, persists it, and only then makes it the visible state.
// Callers must hold s.mu for writing.
func (s *TripStore) commit(ctx context.Context, next []domain.Trip) error {
	sortTrips(next)

	raw, err := encodeTrips(next)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := s.medium.Save(ctx, TripsKey, raw); err != nil {
		return err
	}

	s.trips = next
	s.log.DebugContext(ctx, "trips persisted", "count", len(next), "bytes", len(raw))
	return nil
}

func (s *TripStore) indexOf(id string) int {
	return slices.IndexFunc(s.trips, func(t domain.Trip) bool { return t.ID == id })
}

// sortTrips orders trips newest date first.
func sortTrips(trips []domain.Trip) {
	slices.SortStableFunc(trips, compareTrips)
}

func compareTrips(a, b domain.Trip) int {
	if c := strings.Compare(b.Date, a.Date); c != 0 {
		return c
	}
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(b.ID, a.ID)
}
