package service_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/service"
)

// ---- helpers ---------------------------------------------------------------

func storeWith(trips ...domain.Trip) *mockTripStore {
	return &mockTripStore{all: func() []domain.Trip { return trips }}
}

func tripFixture(id, date string, amount int64) domain.Trip {
	return domain.Trip{
		ID:      id,
		Date:    date,
		OrderID: "ORD-" + id,
		From:    "Pune",
		To:      "Mumbai",
		Amount:  domain.MoneyFromMinor(amount),
		Status:  domain.StatusPending,
	}.WithTotal()
}

// ---- ReportService ---------------------------------------------------------

func TestReportService_Build(t *testing.T) {
	svc := service.NewReportService(storeWith(
		tripFixture("b", "2024-02-01", 500),
		tripFixture("a", "2024-01-05", 1000),
	))

	r, err := svc.Build(context.Background(), domain.MonthFilter("2024-01"))

	require.NoError(t, err)
	assert.Equal(t, "January 2024", r.Period)
	assert.Equal(t, 1, r.Summary.TotalTrips)
	assert.Equal(t, "10.00", r.Summary.GrandTotal.String())
}

func TestReportService_Build_InvalidRange(t *testing.T) {
	svc := service.NewReportService(storeWith())

	_, err := svc.Build(context.Background(), domain.RangeFilter("2024-01-01", ""))

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- ExportService ---------------------------------------------------------

func TestExportService_Export_CSV(t *testing.T) {
	svc := service.NewExportService(service.NewReportService(storeWith(
		tripFixture("a", "2024-01-05", 100000),
	)))

	doc, err := svc.Export(context.Background(), domain.DateFilter("2024-01-05"), service.FormatCSV)

	require.NoError(t, err)
	assert.Equal(t, "trip-report-2024-01-05.csv", doc.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", doc.ContentType)
	assert.Contains(t, string(doc.Body), "2024-01-05,ORD-a,,Pune,Mumbai,1000.00,0.00,1000.00,")
}

func TestExportService_Export_HTML(t *testing.T) {
	svc := service.NewExportService(service.NewReportService(storeWith(
		tripFixture("a", "2024-01-05", 100000),
	)))

	doc, err := svc.Export(context.Background(), domain.RangeFilter("2024-01-01", "2024-01-31"), service.FormatHTML)

	require.NoError(t, err)
	assert.Equal(t, "trip-report-2024-01-01-to-2024-01-31.html", doc.Filename)
	assert.True(t, strings.Contains(string(doc.Body), "01 Jan 2024 – 31 Jan 2024"))
}

func TestExportService_Export_PDF(t *testing.T) {
	svc := service.NewExportService(service.NewReportService(storeWith(
		tripFixture("a", "2024-01-05", 100000),
	)))

	doc, err := svc.Export(context.Background(), domain.Filter{}, service.FormatPDF)

	require.NoError(t, err)
	assert.Equal(t, "trip-report-all.pdf", doc.Filename)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.True(t, bytes.HasPrefix(doc.Body, []byte("%PDF-")))
}

func TestExportService_Export_Errors(t *testing.T) {
	svc := service.NewExportService(service.NewReportService(storeWith()))

	_, err := svc.Export(context.Background(), domain.Filter{}, "xlsx")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Export(context.Background(), domain.RangeFilter("2024-02-01", "2024-01-01"), service.FormatCSV)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
