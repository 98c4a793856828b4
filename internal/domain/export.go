package domain

// ExportRow is a single row in a tabular export (CSV, print document, PDF).
// It is a flat, display-ready view of one Trip: money columns are already
// formatted with two decimals so every export writer shows identical figures.
type ExportRow struct {
	Date          string
	OrderID       string
	VehicleNumber string
	From          string
	To            string
	Amount        string
	ExtraCharge   string
	Total         string
	Remarks       string
	Status        Status
}

// NewExportRow flattens t into an ExportRow.
func NewExportRow(t Trip) ExportRow {
	return ExportRow{
		Date:          t.Date,
		OrderID:       t.OrderID,
		VehicleNumber: t.VehicleNumber,
		From:          t.From,
		To:            t.To,
		Amount:        t.Amount.String(),
		ExtraCharge:   t.ExtraCharge.String(),
		Total:         t.Total.String(),
		Remarks:       t.Remarks,
		Status:        t.Status,
	}
}
