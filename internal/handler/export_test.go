package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/handler"
	"github.com/pkordes/triplog/internal/report"
	"github.com/pkordes/triplog/internal/service"
)

// mockExportServicer is a test double for handler.ExportServicer.
type mockExportServicer struct {
	export func(ctx context.Context, f domain.Filter, format service.Format) (service.Document, error)
}

func (m *mockExportServicer) Export(ctx context.Context, f domain.Filter, format service.Format) (service.Document, error) {
	return m.export(ctx, f, format)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

func docFor(format service.Format) service.Document {
	switch format {
	case service.FormatHTML:
		return service.Document{Filename: "trip-report-2024-01.html", ContentType: "text/html; charset=utf-8", Body: []byte("<html></html>")}
	case service.FormatPDF:
		return service.Document{Filename: "trip-report-2024-01.pdf", ContentType: "application/pdf", Body: []byte("%PDF-1.3")}
	default:
		return service.Document{Filename: "trip-report-2024-01.csv", ContentType: "text/csv; charset=utf-8", Body: []byte("\ufeffDate\n")}
	}
}

// ---- exports ---------------------------------------------------------------

func TestExport_setsHeadersPerFormat(t *testing.T) {
	cases := []struct {
		path        string
		format      service.Format
		disposition string
	}{
		{"/api/export.csv?month=2024-01", service.FormatCSV, `attachment; filename=trip-report-2024-01.csv`},
		{"/api/export.pdf?month=2024-01", service.FormatPDF, `attachment; filename=trip-report-2024-01.pdf`},
		{"/api/export.html?month=2024-01", service.FormatHTML, `inline; filename=trip-report-2024-01.html`},
		{"/api/export.html?month=2024-01&download=1", service.FormatHTML, `attachment; filename=trip-report-2024-01.html`},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			var gotFilter domain.Filter
			var gotFormat service.Format
			svc := &mockExportServicer{
				export: func(_ context.Context, f domain.Filter, format service.Format) (service.Document, error) {
					gotFilter, gotFormat = f, format
					return docFor(format), nil
				},
			}

			rec := do(t, newHTTPHandler(handler.Deps{Exports: svc}), http.MethodGet, tc.path, nil)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.format, gotFormat)
			assert.Equal(t, domain.MonthFilter("2024-01"), gotFilter)
			assert.Equal(t, docFor(tc.format).ContentType, rec.Header().Get("Content-Type"))
			assert.Equal(t, tc.disposition, rec.Header().Get("Content-Disposition"))
			assert.Equal(t, docFor(tc.format).Body, rec.Body.Bytes())
		})
	}
}

func TestExport_invalidFilterReturns422(t *testing.T) {
	svc := &mockExportServicer{
		export: func(context.Context, domain.Filter, service.Format) (service.Document, error) {
			return service.Document{}, fmt.Errorf("service.ExportService.Export: report.Build: %w: From Date cannot be after To Date.", domain.ErrValidation)
		},
	}

	rec := do(t, newHTTPHandler(handler.Deps{Exports: svc}), http.MethodGet, "/api/export.csv?from=2024-02-01&to=2024-01-01", nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
}

// ---- stats -----------------------------------------------------------------

func TestGetStats_returnsSummary(t *testing.T) {
	svc := &mockReportServicer{
		build: func(_ context.Context, f domain.Filter) (report.Report, error) {
			trips := []domain.Trip{tripFixture()}
			return report.Build(trips, f)
		},
	}

	rec := do(t, newHTTPHandler(handler.Deps{Reports: svc}), http.MethodGet, "/api/stats?date=2024-01-05", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Filter  domain.Filter `json:"filter"`
		Period  string        `json:"period"`
		Summary struct {
			TotalTrips      int              `json:"totalTrips"`
			GrandTotal      float64          `json:"grandTotal"`
			StatusBreakdown map[string]int   `json:"statusBreakdown"`
			DailySeries     []map[string]any `json:"dailySeries"`
		} `json:"summary"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, domain.DateFilter("2024-01-05"), body.Filter)
	assert.Equal(t, "05 Jan 2024", body.Period)
	assert.Equal(t, 1, body.Summary.TotalTrips)
	assert.Equal(t, 1050.0, body.Summary.GrandTotal)
	assert.Equal(t, map[string]int{"pending": 1, "complete": 0, "cancel": 0}, body.Summary.StatusBreakdown)
	assert.Len(t, body.Summary.DailySeries, 1)
}

func TestGetStats_emptyReportHasEmptySeries(t *testing.T) {
	svc := &mockReportServicer{
		build: func(_ context.Context, f domain.Filter) (report.Report, error) {
			return report.Build(nil, f)
		},
	}

	rec := do(t, newHTTPHandler(handler.Deps{Reports: svc}), http.MethodGet, "/api/stats", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"period":"All Time"`)
	assert.Contains(t, rec.Body.String(), `"dailySeries":[]`)
}
