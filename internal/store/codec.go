package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/pkordes/triplog/internal/domain"
)

// storedTrip is the on-medium shape of a trip. Field names match the records
// written by earlier versions of the app, which is why this is not simply
// domain.Trip: older documents lack vehicleNumber, from, to and status, and
// store createdAt as epoch milliseconds.
type storedTrip struct {
	ID            string        `json:"id"`
	Date          string        `json:"date"`
	OrderID       string        `json:"orderId"`
	VehicleNumber string        `json:"vehicleNumber"`
	From          string        `json:"from"`
	To            string        `json:"to"`
	Amount        domain.Money  `json:"amount"`
	ExtraCharge   domain.Money  `json:"extraCharge"`
	Total         domain.Money  `json:"total"`
	Remarks       string        `json:"remarks"`
	Status        domain.Status `json:"status,omitempty"`
	CreatedAt     epochMillis   `json:"createdAt"`
}

// epochMillis is a timestamp stored as a JSON number of Unix milliseconds.
// RFC 3339 strings are accepted on read.
type epochMillis time.Time

// createdAtLayouts are the string forms accepted for createdAt, tried in order.
var createdAtLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}

// MarshalJSON writes a zero time as 0, which UnmarshalJSON reads back as zero.
func (e epochMillis) MarshalJSON() ([]byte, error) {
	t := time.Time(e)
	if t.IsZero() {
		return []byte("0"), nil
	}
	return strconv.AppendInt(nil, t.UnixMilli(), 10), nil
}

func (e *epochMillis) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case string(b) == "null":
		*e = epochMillis(time.Time{})
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		// createdAt only breaks ties, so an unrecognised string is dropped
		// rather than losing the whole record.
		*e = epochMillis(time.Time{})
		for _, layout := range createdAtLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				*e = epochMillis(normalizeTime(t))
				break
			}
		}
		return nil
	}
	// Browsers wrote Date.now(), which is an integer, but accept floats too.
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("createdAt: %w", err)
	}
	if f == 0 {
		*e = epochMillis(time.Time{})
		return nil
	}
	*e = epochMillis(time.UnixMilli(int64(f)).UTC())
	return nil
}

// normalizeTime drops precision below a millisecond and the location, so a
// time survives an encode/decode round trip unchanged.
func normalizeTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return t.UTC().Truncate(time.Millisecond)
}

func toStored(t domain.Trip) storedTrip {
	return storedTrip{
		ID:            t.ID,
		Date:          t.Date,
		OrderID:       t.OrderID,
		VehicleNumber: t.VehicleNumber,
		From:          t.From,
		To:            t.To,
		Amount:        t.Amount,
		ExtraCharge:   t.ExtraCharge,
		Total:         t.Total,
		Remarks:       t.Remarks,
		Status:        t.Status,
		CreatedAt:     epochMillis(t.CreatedAt),
	}
}

// fromStored maps a decoded record into a domain.Trip, backfilling anything
// an older schema did not write.
func fromStored(s storedTrip) domain.Trip {
	t := domain.Trip{
		ID:            s.ID,
		Date:          s.Date,
		OrderID:       s.OrderID,
		VehicleNumber: s.VehicleNumber,
		From:          s.From,
		To:            s.To,
		Amount:        s.Amount,
		ExtraCharge:   s.ExtraCharge,
		Remarks:       s.Remarks,
		Status:        s.Status,
		CreatedAt:     time.Time(s.CreatedAt),
	}
	return normalizeTrip(t)
}

// normalizeTrip enforces the invariants every stored trip must satisfy.
func normalizeTrip(t domain.Trip) domain.Trip {
	if !t.Status.Valid() {
		t.Status = domain.DefaultStatus
	}
	t.CreatedAt = normalizeTime(t.CreatedAt)
	return t.WithTotal()
}

func encodeTrips(trips []domain.Trip) ([]byte, error) {
	out := make([]storedTrip, len(trips))
	for i, t := range trips {
		out[i] = toStored(t)
	}
	return json.Marshal(out)
}

// decodeTrips decodes a stored collection record by record. A document that
// is not a JSON array is an error; records that cannot be decoded, or have no
// id, are left out and reported in skipped.
func decodeTrips(b []byte) (trips []domain.Trip, skipped []error, err error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, nil, err
	}
	trips = make([]domain.Trip, 0, len(raw))
	for i, r := range raw {
		var s storedTrip
		if err := json.Unmarshal(r, &s); err != nil {
			skipped = append(skipped, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		if s.ID == "" {
			skipped = append(skipped, fmt.Errorf("record %d: missing id", i))
			continue
		}
		trips = append(trips, fromStored(s))
	}
	return trips, skipped, nil
}
