package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned by ParseMoney for empty, non-numeric, or
// negative input.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrNegativeAmount is returned by ParseMoney for a well-formed number below
// zero. It matches ErrInvalidAmount with errors.Is.
var ErrNegativeAmount = fmt.Errorf("%w: negative", ErrInvalidAmount)

var (
	// 1,234,567 and 12,34,567: Western and Indian digit grouping.
	westernGrouping = regexp.MustCompile(`^\d{1,3}(,\d{3})+$`)
	indianGrouping  = regexp.MustCompile(`^\d{1,2}(,\d{2})*,\d{3}$`)
	// 12,5 and 12,50: a comma used as the decimal separator.
	decimalComma = regexp.MustCompile(`^\d+,\d{1,2}$`)
)

// Money is an amount in minor currency units (hundredths).
// Sums of Money values are exact; there is no floating point anywhere in the
// aggregation path.
type Money int64

// ParseMoney converts user-entered text such as "1000", "12.5", "12,50",
// "1,234.50" or "1,23,456" into Money, rounding half-up to two decimal places.
// Commas are thousands separators when they form a valid Western or Indian
// grouping; a single comma followed by one or two digits is a decimal comma.
// Any other comma makes the input invalid.
// Negative values are rejected with ErrNegativeAmount.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s, ok := normalizeCommas(s)
	if !ok {
		return 0, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if d.IsNegative() {
		return 0, ErrNegativeAmount
	}
	return fromDecimal(d)
}

// normalizeCommas rewrites s into a plain decimal string.
func normalizeCommas(s string) (string, bool) {
	if !strings.Contains(s, ",") {
		return s, true
	}
	sign := ""
	if s[0] == '-' || s[0] == '+' {
		sign, s = s[:1], s[1:]
	}
	if decimalComma.MatchString(s) {
		// 1,000 reads as a grouping, not as one with three decimals.
		return sign + strings.Replace(s, ",", ".", 1), true
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if !westernGrouping.MatchString(whole) && !indianGrouping.MatchString(whole) {
		return "", false
	}
	out := sign + strings.ReplaceAll(whole, ",", "")
	if hasFrac {
		out += "." + frac
	}
	return out, true
}

// MoneyFromMinor builds Money from a count of minor units.
func MoneyFromMinor(units int64) Money { return Money(units) }

// Decimal returns m as a decimal with exponent -2.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// String renders m with exactly two decimals, e.g. "1500.00".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Float64 returns m in major units. Intended for chart output only.
func (m Money) Float64() float64 {
	f, _ := m.Decimal().Float64()
	return f
}

// MarshalJSON encodes m as a bare JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string.
// Legacy records were written with float amounts, so values are rounded
// half-up to two decimals rather than rejected.
func (m *Money) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = 0
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("domain.Money: %w", err)
	}
	v, err := fromDecimal(d)
	if err != nil {
		return fmt.Errorf("domain.Money: %w", err)
	}
	*m = v
	return nil
}

func fromDecimal(d decimal.Decimal) (Money, error) {
	minor := d.Shift(2).Round(0)
	if !minor.IsInteger() || minor.Abs().GreaterThan(decimal.New(1, 17)) {
		return 0, ErrInvalidAmount
	}
	return Money(minor.IntPart()), nil
}
