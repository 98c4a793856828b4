package domain

import (
	"errors"
	"sort"
	"strings"
)

// ErrNotFound is returned by store and service functions when the requested
// trip does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. missing required field, duplicate order id, inverted date range).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned by the store when a record with the same ID is
// already present. Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// Field names used as FieldErrors keys. They match the JSON names of TripInput.
const (
	FieldDate          = "date"
	FieldOrderID       = "orderId"
	FieldVehicleNumber = "vehicleNumber"
	FieldFrom          = "from"
	FieldTo            = "to"
	FieldAmount        = "amount"
	FieldExtraCharge   = "extraCharge"
	FieldStatus        = "status"
)

// FieldErrors maps a field name to its error message.
// Several fields may fail at once; callers read every entry, not just the first.
// A FieldErrors value matches ErrValidation under errors.Is.
type FieldErrors map[string]string

// Add records msg for field unless the field already has an error.
func (fe FieldErrors) Add(field, msg string) {
	if _, ok := fe[field]; !ok {
		fe[field] = msg
	}
}

// Has reports whether field has an error.
func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

// Err returns fe as an error, or nil when there are no entries.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// Error lists the failing fields in name order, e.g.
// "validation error: amount: Amount is required; date: Date is required".
func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+fe[f])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is(err, ErrValidation) succeed for FieldErrors.
func (fe FieldErrors) Unwrap() error { return ErrValidation }
