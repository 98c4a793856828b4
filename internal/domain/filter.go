package domain

import (
	"fmt"
	"strings"
	"time"
)

// FilterMode identifies which restriction a Filter applies.
type FilterMode int

const (
	FilterNone FilterMode = iota
	FilterDate
	FilterMonth
	FilterRange
)

func (m FilterMode) String() string {
	switch m {
	case FilterDate:
		return "date"
	case FilterMonth:
		return "month"
	case FilterRange:
		return "range"
	}
	return "none"
}

// Filter restricts a trip collection to an exact date, a month, or an
// inclusive date range. At most one mode may be set; the zero Filter passes
// every trip.
//
// Matching is plain string comparison on DateLayout / MonthLayout values.
type Filter struct {
	Date  string `json:"date,omitempty"`
	Month string `json:"month,omitempty"`
	From  string `json:"from,omitempty"`
	To    string `json:"to,omitempty"`
}

// DateFilter, MonthFilter and RangeFilter are shorthand constructors.
func DateFilter(date string) Filter { return Filter{Date: date} }
func MonthFilter(month string) Filter { return Filter{Month: month} }
func RangeFilter(from, to string) Filter { return Filter{From: from, To: to} }

// Mode returns the active mode. A Filter with only one range end set reports
// FilterRange; Validate rejects it.
func (f Filter) Mode() FilterMode {
	switch {
	case f.Date != "":
		return FilterDate
	case f.Month != "":
		return FilterMonth
	case f.From != "" || f.To != "":
		return FilterRange
	}
	return FilterNone
}

// Validate checks that at most one mode is set and that its values are
// well-formed. Errors wrap ErrValidation.
func (f Filter) Validate() error {
	set := 0
	if f.Date != "" {
		set++
	}
	if f.Month != "" {
		set++
	}
	if f.From != "" || f.To != "" {
		set++
	}
	if set > 1 {
		return fmt.Errorf("%w: only one of date, month or range may be set", ErrValidation)
	}

	switch f.Mode() {
	case FilterDate:
		if !isDate(f.Date) {
			return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
		}
	case FilterMonth:
		if _, err := time.Parse(MonthLayout, f.Month); err != nil || len(f.Month) != len(MonthLayout) {
			return fmt.Errorf("%w: month must be YYYY-MM", ErrValidation)
		}
	case FilterRange:
		fe := FieldErrors{}
		if f.From == "" {
			fe.Add("from", "Please select a From Date.")
		} else if !isDate(f.From) {
			fe.Add("from", "From Date must be YYYY-MM-DD.")
		}
		if f.To == "" {
			fe.Add("to", "Please select a To Date.")
		} else if !isDate(f.To) {
			fe.Add("to", "To Date must be YYYY-MM-DD.")
		}
		if len(fe) == 0 && f.From > f.To {
			fe.Add("to", "To Date must be on or after From Date.")
		}
		return fe.Err()
	}
	return nil
}

// Match reports whether t passes the filter.
func (f Filter) Match(t Trip) bool {
	switch f.Mode() {
	case FilterDate:
		return t.Date == f.Date
	case FilterMonth:
		return strings.HasPrefix(t.Date, f.Month)
	case FilterRange:
		return f.From <= t.Date && t.Date <= f.To
	}
	return true
}

// Apply returns the trips that pass the filter, in their original order.
// The result is never nil.
func (f Filter) Apply(trips []Trip) []Trip {
	out := make([]Trip, 0, len(trips))
	for _, t := range trips {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// MatchesSearch reports whether any of the trip's order id, remarks, date,
// origin or destination contains q, ignoring case. An empty q matches.
func MatchesSearch(t Trip, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, field := range []string{t.OrderID, t.Remarks, t.Date, t.From, t.To} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Search returns the trips matching q, in their original order.
func Search(trips []Trip, q string) []Trip {
	out := make([]Trip, 0, len(trips))
	for _, t := range trips {
		if MatchesSearch(t, q) {
			out = append(out, t)
		}
	}
	return out
}

// isDate reports whether s is a real calendar date in zero-padded DateLayout.
func isDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// NormalizeDate parses s and returns it in canonical DateLayout.
func NormalizeDate(s string) (string, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return d.Format(DateLayout), nil
}
