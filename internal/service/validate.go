package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/triplog/internal/domain"
)

// Validator turns raw form input into a trip ready for the store.
// It has no side effects; the clock and id source are injected so results are
// reproducible in tests.
type Validator struct {
	now   func() time.Time
	newID func() string
}

// NewValidator returns a Validator using the wall clock and random UUIDs.
func NewValidator() *Validator {
	return &Validator{now: time.Now, newID: uuid.NewString}
}

// NewValidatorWith returns a Validator with the given clock and id source.
func NewValidatorWith(now func() time.Time, newID func() string) *Validator {
	return &Validator{now: now, newID: newID}
}

// Validate checks in against the business rules and the existing collection.
//
// editingID is empty for a new trip; otherwise it names the trip being edited,
// which is excluded from the order-id uniqueness check and supplies the ID,
// CreatedAt and (when in.Status is blank) Status of the result.
// vehicles is the configured vehicle list; a vehicle number is only required
// when that list is non-empty.
//
// Every failing field is reported at once in a domain.FieldErrors.
// An editingID not present in existing yields domain.ErrNotFound.
func (v *Validator) Validate(in domain.TripInput, existing []domain.Trip, editingID string, vehicles []string) (domain.Trip, error) {
	var editing *domain.Trip
	if editingID != "" {
		for i := range existing {
			if existing[i].ID == editingID {
				editing = &existing[i]
				break
			}
		}
		if editing == nil {
			return domain.Trip{}, fmt.Errorf("service.Validator.Validate: id %q: %w", editingID, domain.ErrNotFound)
		}
	}

	errs := domain.FieldErrors{}
	out := domain.Trip{
		OrderID:       strings.TrimSpace(in.OrderID),
		VehicleNumber: strings.ToUpper(strings.TrimSpace(in.VehicleNumber)),
		From:          strings.TrimSpace(in.From),
		To:            strings.TrimSpace(in.To),
		Remarks:       strings.TrimSpace(in.Remarks),
	}

	if date := strings.TrimSpace(in.Date); date == "" {
		errs.Add(domain.FieldDate, "Date is required")
	} else if d, err := domain.NormalizeDate(date); err != nil {
		errs.Add(domain.FieldDate, "Date must be a valid date (YYYY-MM-DD)")
	} else {
		out.Date = d
	}

	if out.OrderID == "" {
		errs.Add(domain.FieldOrderID, "Order ID is required")
	} else {
		for _, t := range existing {
			if t.ID != editingID && strings.EqualFold(t.OrderID, out.OrderID) {
				errs.Add(domain.FieldOrderID, fmt.Sprintf("Order ID %q already exists", out.OrderID))
				break
			}
		}
	}

	if len(vehicles) > 0 && out.VehicleNumber == "" {
		errs.Add(domain.FieldVehicleNumber, "Vehicle Number is required")
	}
	if out.From == "" {
		errs.Add(domain.FieldFrom, "Origin location is required")
	}
	if out.To == "" {
		errs.Add(domain.FieldTo, "Destination location is required")
	}

	if extra := strings.TrimSpace(in.ExtraCharge); extra != "" {
		m, err := domain.ParseMoney(extra)
		switch {
		case errors.Is(err, domain.ErrNegativeAmount):
			errs.Add(domain.FieldExtraCharge, "Extra Charge cannot be negative")
		case err != nil:
			errs.Add(domain.FieldExtraCharge, "Extra Charge must be a number")
		default:
			out.ExtraCharge = m
		}
	}

	if amount := strings.TrimSpace(in.Amount); amount == "" {
		errs.Add(domain.FieldAmount, "Amount is required")
	} else if m, err := domain.ParseMoney(amount); err != nil {
		errs.Add(domain.FieldAmount, "Amount must be a valid positive number")
	} else {
		out.Amount = m
	}

	switch status := domain.Status(strings.TrimSpace(in.Status)); {
	case status == "" && editing != nil:
		out.Status = editing.Status
	case status == "":
		out.Status = domain.DefaultStatus
	case status.Valid():
		out.Status = status
	default:
		errs.Add(domain.FieldStatus, "Status must be one of Pending, Complete, Cancel")
	}

	if err := errs.Err(); err != nil {
		return domain.Trip{}, err
	}

	if editing != nil {
		out.ID = editing.ID
		out.CreatedAt = editing.CreatedAt
	} else {
		out.ID = v.newID()
		out.CreatedAt = v.now().UTC().Truncate(time.Millisecond)
	}
	return out.WithTotal(), nil
}
