package export

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/report"
)

var printTemplate = template.Must(template.New("print").Funcs(template.FuncMap{
	"date":     report.FormatDate,
	"currency": FormatCurrency,
	"dash":     dash,
	"extra": func(m domain.Money) string {
		if m > 0 {
			return FormatCurrency(m)
		}
		return "—"
	},
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <title>Trip Report – {{.Report.Period}}</title>
  <style>
    * { box-sizing: border-box; margin: 0; padding: 0; }
    body { font-family: Arial, sans-serif; font-size: 11px; color: #1a1a1a; padding: 24px; }
    h1 { font-size: 18px; font-weight: 700; margin-bottom: 4px; }
    .subtitle { font-size: 12px; color: #555; margin-bottom: 20px; }
    table { width: 100%; border-collapse: collapse; margin-bottom: 20px; }
    th { background: #1e3a5f; color: #fff; padding: 7px 8px; text-align: left; font-size: 10px; text-transform: uppercase; }
    td { padding: 6px 8px; border-bottom: 1px solid #e5e7eb; vertical-align: top; }
    tr:nth-child(even) td { background: #f9fafb; }
    .num { text-align: right; font-variant-numeric: tabular-nums; }
    .total-cell { font-weight: 700; color: #1e3a5f; }
    .summary { display: flex; gap: 16px; flex-wrap: wrap; margin-top: 8px; }
    .summary-box { border: 1px solid #e5e7eb; border-radius: 6px; padding: 10px 16px; min-width: 140px; }
    .summary-box .label { font-size: 10px; color: #6b7280; text-transform: uppercase; }
    .summary-box .value { font-size: 15px; font-weight: 700; color: #1e3a5f; margin-top: 2px; }
    @media print { body { padding: 12px; } }
  </style>
</head>
<body onload="setTimeout(function () { window.print(); }, 500)">
  <h1>Trip Report</h1>
  <p class="subtitle">Period: {{.Report.Period}} &nbsp;|&nbsp; Generated: {{.Generated}} &nbsp;|&nbsp; Total Records: {{.Report.Summary.TotalTrips}}</p>
  <table>
    <thead>
      <tr>
        <th>Date</th><th>Order ID</th><th>Vehicle No.</th><th>From</th><th>To</th>
        <th>Amount</th><th>Extra Charge</th><th>Total</th><th>Remarks</th><th>Status</th>
      </tr>
    </thead>
    <tbody>
{{- range .Report.Trips}}
      <tr>
        <td>{{date .Date}}</td>
        <td>{{.OrderID}}</td>
        <td>{{.VehicleNumber}}</td>
        <td>{{.From}}</td>
        <td>{{.To}}</td>
        <td class="num">{{currency .Amount}}</td>
        <td class="num">{{extra .ExtraCharge}}</td>
        <td class="num total-cell">{{currency .Total}}</td>
        <td>{{dash .Remarks}}</td>
        <td>{{.Status}}</td>
      </tr>
{{- end}}
    </tbody>
  </table>
  <div class="summary">
    <div class="summary-box"><div class="label">Total Trips</div><div class="value">{{.Report.Summary.TotalTrips}}</div></div>
    <div class="summary-box"><div class="label">Total Amount</div><div class="value">{{currency .Report.Summary.TotalAmount}}</div></div>
    <div class="summary-box"><div class="label">Total Extra Charges</div><div class="value">{{currency .Report.Summary.TotalExtraCharges}}</div></div>
    <div class="summary-box"><div class="label">Grand Total</div><div class="value">{{currency .Report.Summary.GrandTotal}}</div></div>
  </div>
</body>
</html>
`))

// WritePrintHTML writes r as a self-contained HTML page that opens the
// browser's print dialog once loaded. generated is shown in the subtitle.
func WritePrintHTML(w io.Writer, r report.Report, generated time.Time) error {
	data := struct {
		Report    report.Report
		Generated string
	}{
		Report:    r,
		Generated: generated.Format("02 Jan 2006, 15:04"),
	}
	if err := printTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("export.WritePrintHTML: %w", err)
	}
	return nil
}

func dash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
