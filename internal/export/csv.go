package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/pkordes/triplog/internal/domain"
)

// utf8BOM makes spreadsheet applications detect the encoding.
const utf8BOM = "\ufeff"

var csvHeader = []string{
	"Date",
	"Order ID",
	"Vehicle Number",
	"From",
	"To",
	"Amount (₹)",
	"Extra Charge (₹)",
	"Total (₹)",
	"Remarks",
}

// WriteCSV writes trips as CSV, one row per trip in the given order.
// Amounts use two decimals without grouping so spreadsheets read them as
// numbers.
func WriteCSV(w io.Writer, trips []domain.Trip) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("export.WriteCSV: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("export.WriteCSV: header: %w", err)
	}
	for _, t := range trips {
		row := domain.NewExportRow(t)
		if err := cw.Write([]string{
			row.Date,
			row.OrderID,
			row.VehicleNumber,
			row.From,
			row.To,
			row.Amount,
			row.ExtraCharge,
			row.Total,
			row.Remarks,
		}); err != nil {
			return fmt.Errorf("export.WriteCSV: row %s: %w", t.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export.WriteCSV: flush: %w", err)
	}
	return nil
}
