package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/triplog/internal/domain"
)

// VehicleService manages the list of vehicle numbers offered on the trip form.
type VehicleService struct {
	vehicles VehicleStore
}

// NewVehicleService constructs a VehicleService.
func NewVehicleService(v VehicleStore) *VehicleService {
	return &VehicleService{vehicles: v}
}

// List returns the vehicle numbers in insertion order.
func (s *VehicleService) List(_ context.Context) []string {
	return s.vehicles.List()
}

// Add registers name. A blank name is a validation error; adding a name that
// is already present (ignoring case) is a conflict.
func (s *VehicleService) Add(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		fe := domain.FieldErrors{}
		fe.Add(domain.FieldVehicleNumber, "Vehicle Number is required")
		return "", fmt.Errorf("service.VehicleService.Add: %w", fe)
	}

	added, err := s.vehicles.Add(ctx, name)
	if err != nil {
		return "", fmt.Errorf("service.VehicleService.Add: %w", err)
	}
	normalized := strings.ToUpper(strings.TrimSpace(name))
	if !added {
		return "", fmt.Errorf("service.VehicleService.Add: vehicle %q already exists in the list: %w", normalized, domain.ErrConflict)
	}
	return normalized, nil
}

// Remove deletes name from the list. Unknown names are ignored.
func (s *VehicleService) Remove(ctx context.Context, name string) error {
	if err := s.vehicles.Remove(ctx, name); err != nil {
		return fmt.Errorf("service.VehicleService.Remove: %w", err)
	}
	return nil
}
