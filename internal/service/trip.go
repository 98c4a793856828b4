// Package service contains the business logic for the trip ledger API.
// Services validate inputs, enforce business rules, and orchestrate the
// stores. No persistence code lives here: services depend on small store
// interfaces, not on the store implementations.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkordes/triplog/internal/domain"
)

// TripStore is the subset of store.TripStore the services need.
type TripStore interface {
	All() []domain.Trip
	Get(id string) (domain.Trip, bool)
	Query(f domain.Filter, search string) []domain.Trip
	Add(ctx context.Context, trip domain.Trip) error
	Update(ctx context.Context, trip domain.Trip) error
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status domain.Status) error
}

// VehicleStore is the subset of store.VehicleList the services need.
type VehicleStore interface {
	List() []string
	Add(ctx context.Context, name string) (bool, error)
	Remove(ctx context.Context, name string) error
}

// ListQuery selects a page of trips.
type ListQuery struct {
	Filter domain.Filter
	Search string
	Page   domain.PaginationParams
}

// TripPage is one page of a trip listing.
type TripPage struct {
	Items []domain.Trip
	Total int // matching trips across all pages
	Page  domain.PaginationParams
}

// TripService implements business logic for Trip operations.
type TripService struct {
	trips     TripStore
	vehicles  VehicleStore
	validator *Validator

	mu sync.Mutex // serializes validate-then-write
}

// NewTripService constructs a TripService.
func NewTripService(trips TripStore, vehicles VehicleStore, v *Validator) *TripService {
	return &TripService{trips: trips, vehicles: vehicles, validator: v}
}

// Create validates in and adds the resulting trip.
// Returns domain.FieldErrors (matching domain.ErrValidation) when input is invalid.
func (s *TripService) Create(ctx context.Context, in domain.TripInput) (domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, err := s.validator.Validate(in, s.trips.All(), "", s.vehicles.List())
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	if err := s.trips.Add(ctx, trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return trip, nil
}

// Update validates in as an edit of trip id and replaces it.
// Returns domain.ErrNotFound if no such trip exists.
func (s *TripService) Update(ctx context.Context, id string, in domain.TripInput) (domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, err := s.validator.Validate(in, s.trips.All(), id, s.vehicles.List())
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if err := s.trips.Update(ctx, trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return trip, nil
}

// Get returns a single trip by ID.
func (s *TripService) Get(_ context.Context, id string) (domain.Trip, error) {
	trip, ok := s.trips.Get(id)
	if !ok {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: id %q: %w", id, domain.ErrNotFound)
	}
	return trip, nil
}

// List returns the page of trips matching q, newest date first.
func (s *TripService) List(_ context.Context, q ListQuery) (TripPage, error) {
	if err := q.Filter.Validate(); err != nil {
		return TripPage{}, fmt.Errorf("service.TripService.List: %w", err)
	}
	matched := s.trips.Query(q.Filter, q.Search)
	return TripPage{
		Items: domain.Paginate(matched, q.Page),
		Total: len(matched),
		Page:  q.Page,
	}, nil
}

// Delete removes a trip. Deleting an unknown ID succeeds and changes nothing.
func (s *TripService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// SetStatus changes the status of trip id and returns the updated trip.
func (s *TripService) SetStatus(ctx context.Context, id string, status domain.Status) (domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.trips.SetStatus(ctx, id, status); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.SetStatus: %w", err)
	}
	trip, _ := s.trips.Get(id)
	return trip, nil
}
