package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/pkordes/triplog/internal/repo"
)

// VehiclesKey is the medium key the vehicle list is stored under.
const VehiclesKey = "vehicleList"

// VehicleList is the user's list of vehicle numbers.
// Names are stored upper-cased and are unique ignoring case.
// It is persisted independently of trips.
type VehicleList struct {
	mu       sync.RWMutex
	medium   repo.Medium
	log      *slog.Logger
	vehicles []string
}

// OpenVehicles loads the vehicle list from medium, degrading to an empty list
// when the stored value is missing, unreadable or not a JSON string array.
func OpenVehicles(ctx context.Context, medium repo.Medium, log *slog.Logger) *VehicleList {
	if log == nil {
		log = slog.Default()
	}
	v := &VehicleList{medium: medium, log: log, vehicles: []string{}}

	raw, err := medium.Load(ctx, VehiclesKey)
	if err != nil {
		if !errors.Is(err, repo.ErrKeyNotFound) {
			log.WarnContext(ctx, "vehicle storage unavailable, starting empty", "error", err)
		}
		return v
	}

	var stored []string
	if err := json.Unmarshal(raw, &stored); err != nil {
		log.WarnContext(ctx, "vehicle storage corrupt, starting empty", "error", err)
		return v
	}
	v.vehicles = dedupe(stored)
	return v
}

// List returns the vehicle numbers in the order they were added.
func (v *VehicleList) List() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.vehicles)
}

// Add trims and upper-cases name and appends it.
// It reports false, without writing, when name is blank or already present.
func (v *VehicleList) Add(ctx context.Context, name string) (bool, error) {
	name = normalizeVehicle(name)
	if name == "" {
		return false, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.indexOf(name) >= 0 {
		return false, nil
	}
	next := append(slices.Clone(v.vehicles), name)
	if err := v.commit(ctx, next); err != nil {
		return false, fmt.Errorf("store.VehicleList.Add: %w", err)
	}
	return true, nil
}

// Remove deletes name, ignoring case. Removing an unknown name is a no-op.
func (v *VehicleList) Remove(ctx context.Context, name string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	i := v.indexOf(normalizeVehicle(name))
	if i < 0 {
		return nil
	}
	next := slices.Delete(slices.Clone(v.vehicles), i, i+1)
	if err := v.commit(ctx, next); err != nil {
		return fmt.Errorf("store.VehicleList.Remove: %w", err)
	}
	return nil
}

func (v *VehicleList) commit(ctx context.Context, next []string) error {
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := v.medium.Save(ctx, VehiclesKey, raw); err != nil {
		return err
	}
	v.vehicles = next
	return nil
}

func (v *VehicleList) indexOf(name string) int {
	return slices.IndexFunc(v.vehicles, func(s string) bool { return strings.EqualFold(s, name) })
}

func normalizeVehicle(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// dedupe normalizes names and drops blanks and case-insensitive repeats,
// preserving first-seen order.
func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, name := range in {
		name = normalizeVehicle(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
