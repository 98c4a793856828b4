package service

import (
	"context"
	"fmt"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/report"
)

// ReportService builds filtered summaries over the whole trip collection.
type ReportService struct {
	trips TripStore
}

// NewReportService constructs a ReportService.
func NewReportService(trips TripStore) *ReportService {
	return &ReportService{trips: trips}
}

// Build returns the report for f, or a domain.ErrValidation error when f is
// not a valid filter.
func (s *ReportService) Build(_ context.Context, f domain.Filter) (report.Report, error) {
	r, err := report.Build(s.trips.All(), f)
	if err != nil {
		return report.Report{}, fmt.Errorf("service.ReportService.Build: %w", err)
	}
	return r, nil
}
