// Package export renders trips and reports into downloadable documents:
// CSV for spreadsheets, a printable HTML page, and PDF.
package export

import (
	"strconv"
	"strings"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/report"
)

// FormatAmount renders m with Indian digit grouping and two decimals,
// e.g. 123456.5 becomes "1,23,456.50".
func FormatAmount(m domain.Money) string {
	units := int64(m)
	neg := units < 0
	if neg {
		units = -units
	}
	whole := strconv.FormatInt(units/100, 10)
	frac := units % 100

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(groupIndian(whole))
	b.WriteByte('.')
	if frac < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(frac, 10))
	return b.String()
}

// FormatCurrency is FormatAmount with the rupee sign.
func FormatCurrency(m domain.Money) string {
	return "₹" + FormatAmount(m)
}

// groupIndian inserts separators after the last three digits and then every
// two digits: 1234567 -> 12,34,567.
func groupIndian(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	head, tail := digits[:n-3], digits[n-3:]

	var out []byte
	for i := 0; i < len(head); i++ {
		out = append(out, head[i])
		pos := len(head) - i - 1
		if pos > 0 && pos%2 == 0 {
			out = append(out, ',')
		}
	}
	return string(out) + "," + tail
}

// Filename returns the download name for r, e.g.
// trip-report-2024-01-05.csv, trip-report-2024-01.pdf,
// trip-report-2024-01-01-to-2024-01-31.html or trip-report-all.csv.
func Filename(r report.Report, ext string) string {
	name := "trip-report"
	f := r.Filter
	switch f.Mode() {
	case domain.FilterDate:
		name += "-" + f.Date
	case domain.FilterMonth:
		name += "-" + f.Month
	case domain.FilterRange:
		name += "-" + f.From + "-to-" + f.To
	default:
		name += "-all"
	}
	return name + "." + strings.TrimPrefix(ext, ".")
}
