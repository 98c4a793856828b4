// Package domain contains the core data types for the trip ledger.
// It depends on nothing inside the module and is imported by every other
// internal package (store, service, report, export, handler).
package domain

import (
	"time"
)

// DateLayout is the canonical zero-padded date format. Filters compare dates
// as strings, which is only correct because every stored date uses this layout.
const DateLayout = "2006-01-02"

// MonthLayout is the zero-padded year-month prefix used by month filters.
const MonthLayout = "2006-01"

// Status is the lifecycle state of a trip.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusComplete Status = "Complete"
	StatusCancel   Status = "Cancel"
)

// DefaultStatus is assigned to new trips and to stored trips written before
// status existed.
const DefaultStatus = StatusPending

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusPending, StatusComplete, StatusCancel}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusComplete, StatusCancel:
		return true
	}
	return false
}

// Trip is one logged transport job.
// A Trip is a value: edits produce a new Trip that replaces the old one by ID.
// Total is always Amount + ExtraCharge; use WithTotal after changing either.
type Trip struct {
	ID            string    `json:"id"`
	Date          string    `json:"date"` // DateLayout
	OrderID       string    `json:"orderId"`
	VehicleNumber string    `json:"vehicleNumber"`
	From          string    `json:"from"`
	To            string    `json:"to"`
	Amount        Money     `json:"amount"`
	ExtraCharge   Money     `json:"extraCharge"`
	Total         Money     `json:"total"`
	Remarks       string    `json:"remarks"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// WithTotal returns a copy of t with Total recomputed from Amount and ExtraCharge.
func (t Trip) WithTotal() Trip {
	t.Total = t.Amount + t.ExtraCharge
	return t
}

// TripInput carries raw, unvalidated form values.
// Every field is text exactly as entered; the validator is the only place
// these strings are turned into typed values.
type TripInput struct {
	Date          string `json:"date"`
	OrderID       string `json:"orderId"`
	VehicleNumber string `json:"vehicleNumber"`
	From          string `json:"from"`
	To            string `json:"to"`
	Amount        string `json:"amount"`
	ExtraCharge   string `json:"extraCharge"`
	Remarks       string `json:"remarks"`
	Status        string `json:"status"`
}
