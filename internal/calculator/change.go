package calculator

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// PercentChange returns (current - previous) / previous * 100.
func PercentChange(previous, current float64) (float64, error) {
	if previous == 0 {
		return 0, errors.New("previous close is zero")
	}
	pct := (current - previous) / previous * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0, errors.New("percent change is not finite")
	}
	return pct, nil
}

// FormatPercent renders a percent with an explicit sign and two decimals, e.g. "+5.00%".
func FormatPercent(pct float64) string {
	d := decimal.NewFromFloat(pct).Round(2)
	if d.IsZero() {
		return "+0.00%"
	}
	s := d.StringFixed(2)
	if d.IsPositive() {
		s = "+" + s
	}
	return s + "%"
}
