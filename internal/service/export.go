package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/export"
)

// Format is an export document type.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

// Document is a rendered export ready to be sent to the client.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders filtered trip reports into downloadable documents.
type ExportService struct {
	reports *ReportService
	now     func() time.Time
}

// NewExportService constructs an ExportService backed by reports.
func NewExportService(reports *ReportService) *ExportService {
	return &ExportService{reports: reports, now: time.Now}
}

// Export renders the trips matching f in the requested format.
// The document is fully rendered before it is returned, so a failure never
// leaves a half-written response.
func (s *ExportService) Export(ctx context.Context, f domain.Filter, format Format) (Document, error) {
	r, err := s.reports.Build(ctx, f)
	if err != nil {
		return Document{}, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	var (
		buf         bytes.Buffer
		contentType string
	)
	switch format {
	case FormatCSV:
		contentType = "text/csv; charset=utf-8"
		err = export.WriteCSV(&buf, r.Trips)
	case FormatHTML:
		contentType = "text/html; charset=utf-8"
		err = export.WritePrintHTML(&buf, r, s.now())
	case FormatPDF:
		contentType = "application/pdf"
		err = export.WritePDF(&buf, r, s.now())
	default:
		return Document{}, fmt.Errorf("service.ExportService.Export: %w: unknown format %q", domain.ErrValidation, format)
	}
	if err != nil {
		return Document{}, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	return Document{
		Filename:    export.Filename(r, string(format)),
		ContentType: contentType,
		Body:        buf.Bytes(),
	}, nil
}
