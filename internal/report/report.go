// Package report computes aggregate figures over a set of trips.
// Everything here is pure: the same input always yields the same output and
// nothing is mutated.
package report

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/pkordes/triplog/internal/domain"
)

// StatusBreakdown counts trips per status. Absent statuses count zero.
type StatusBreakdown struct {
	Pending  int `json:"pending"`
	Complete int `json:"complete"`
	Cancel   int `json:"cancel"`
}

// DailyPoint sums the trips of one calendar date.
type DailyPoint struct {
	Date        string       `json:"date"`
	Amount      domain.Money `json:"amount"`
	ExtraCharge domain.Money `json:"extraCharge"`
	Total       domain.Money `json:"total"`
}

// Summary is the aggregate view of a set of trips.
// GrandTotal always equals TotalAmount + TotalExtraCharges.
type Summary struct {
	TotalTrips        int             `json:"totalTrips"`
	TotalAmount       domain.Money    `json:"totalAmount"`
	TotalExtraCharges domain.Money    `json:"totalExtraCharges"`
	GrandTotal        domain.Money    `json:"grandTotal"`
	StatusBreakdown   StatusBreakdown `json:"statusBreakdown"`
	DailySeries       []DailyPoint    `json:"dailySeries"` // ascending by date
}

// Aggregate summarises trips. An empty input gives zero totals and an empty,
// non-nil series.
func Aggregate(trips []domain.Trip) Summary {
	s := Summary{TotalTrips: len(trips), DailySeries: []DailyPoint{}}

	byDate := make(map[string]int)
	for _, t := range trips {
		s.TotalAmount += t.Amount
		s.TotalExtraCharges += t.ExtraCharge

		switch t.Status {
		case domain.StatusComplete:
			s.StatusBreakdown.Complete++
		case domain.StatusCancel:
			s.StatusBreakdown.Cancel++
		default:
			s.StatusBreakdown.Pending++
		}

		i, ok := byDate[t.Date]
		if !ok {
			i = len(s.DailySeries)
			byDate[t.Date] = i
			s.DailySeries = append(s.DailySeries, DailyPoint{Date: t.Date})
		}
		p := &s.DailySeries[i]
		p.Amount += t.Amount
		p.ExtraCharge += t.ExtraCharge
		p.Total = p.Amount + p.ExtraCharge
	}
	s.GrandTotal = s.TotalAmount + s.TotalExtraCharges

	// Dates are zero-padded, so lexical order is chronological.
	slices.SortFunc(s.DailySeries, func(a, b DailyPoint) int { return strings.Compare(a.Date, b.Date) })
	return s
}

// Report is a filtered subset of trips together with its summary.
type Report struct {
	Filter  domain.Filter `json:"filter"`
	Period  string        `json:"period"`
	Trips   []domain.Trip `json:"trips"`
	Summary Summary       `json:"summary"`
}

// Build validates f, applies it to trips and aggregates the result.
// trips is expected in collection order; the report keeps that order.
func Build(trips []domain.Trip, f domain.Filter) (Report, error) {
	if err := f.Validate(); err != nil {
		return Report{}, fmt.Errorf("report.Build: %w", err)
	}
	subset := f.Apply(trips)
	return Report{
		Filter:  f,
		Period:  PeriodLabel(f),
		Trips:   subset,
		Summary: Aggregate(subset),
	}, nil
}

// PeriodLabel describes the period f covers, e.g. "05 Jan 2024",
// "January 2024" or "01 Jan 2024 – 05 Jan 2024". f must be valid.
func PeriodLabel(f domain.Filter) string {
	switch f.Mode() {
	case domain.FilterDate:
		return FormatDate(f.Date)
	case domain.FilterMonth:
		m, err := time.Parse(domain.MonthLayout, f.Month)
		if err != nil {
			return f.Month
		}
		return m.Format("January 2006")
	case domain.FilterRange:
		if f.From == f.To {
			return FormatDate(f.From)
		}
		return FormatDate(f.From) + " – " + FormatDate(f.To)
	default:
		return "All Time"
	}
}

// FormatDate renders a DateLayout date as "05 Jan 2024". Unparseable input is
// returned unchanged.
func FormatDate(date string) string {
	d, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("02 Jan 2006")
}
