package export

import (
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/pkordes/triplog/internal/report"
)

// pdfColumns are the table columns of the PDF report with their widths in mm.
// The widths add up to the printable width of landscape A4 with 10 mm margins.
var pdfColumns = []struct {
	title string
	width float64
	align string
}{
	{"Date", 24, "L"},
	{"Order ID", 30, "L"},
	{"Vehicle No.", 28, "L"},
	{"From", 32, "L"},
	{"To", 32, "L"},
	{"Amount", 28, "R"},
	{"Extra Charge", 26, "R"},
	{"Total", 28, "R"},
	{"Remarks", 49, "L"},
}

// WritePDF renders r as a landscape A4 PDF with the trip table followed by the
// summary totals.
//
// The built-in fonts cannot encode the rupee sign, so amounts are prefixed
// with "Rs." instead.
func WritePDF(w io.Writer, r report.Report, generated time.Time) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Trip Report", false)
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 12)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 9, "Trip Report")
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(85, 85, 85)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Period: %s  |  Generated: %s  |  Total Records: %d",
		r.Period, generated.Format("02 Jan 2006, 15:04"), r.Summary.TotalTrips)))
	pdf.Ln(10)

	header := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(30, 58, 95)
		pdf.SetTextColor(255, 255, 255)
		for _, c := range pdfColumns {
			pdf.CellFormat(c.width, 7, c.title, "", 0, c.align, true, 0, "")
		}
		pdf.Ln(-1)
	}
	header()

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(26, 26, 26)
	_, pageHeight := pdf.GetPageSize()
	for i, t := range r.Trips {
		if pdf.GetY()+6 > pageHeight-12 {
			pdf.AddPage()
			header()
			pdf.SetFont("Helvetica", "", 8)
			pdf.SetTextColor(26, 26, 26)
		}
		fill := i%2 == 0
		pdf.SetFillColor(249, 250, 251)
		cells := []string{
			report.FormatDate(t.Date),
			t.OrderID,
			t.VehicleNumber,
			t.From,
			t.To,
			"Rs. " + FormatAmount(t.Amount),
			"Rs. " + FormatAmount(t.ExtraCharge),
			"Rs. " + FormatAmount(t.Total),
			t.Remarks,
		}
		for j, c := range pdfColumns {
			pdf.CellFormat(c.width, 6, fit(pdf, tr(cells[j]), c.width-2), "B", 0, c.align, fill, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	s := r.Summary
	totals := []struct{ label, value string }{
		{"Total Trips", fmt.Sprintf("%d", s.TotalTrips)},
		{"Total Amount", "Rs. " + FormatAmount(s.TotalAmount)},
		{"Total Extra Charges", "Rs. " + FormatAmount(s.TotalExtraCharges)},
		{"Grand Total", "Rs. " + FormatAmount(s.GrandTotal)},
	}
	for _, row := range totals {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(107, 114, 128)
		pdf.CellFormat(50, 7, row.label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(30, 58, 95)
		pdf.CellFormat(50, 7, row.value, "", 1, "R", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("export.WritePDF: %w", err)
	}
	return nil
}

// fit shortens s with a trailing "..." until it fits in width mm. s must
// already be translated to the font's single-byte encoding, which is what
// GetStringWidth measures.
func fit(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	b := []byte(s)
	for len(b) > 0 && pdf.GetStringWidth(string(b)+"...") > width {
		b = b[:len(b)-1]
	}
	return string(b) + "..."
}
