package valueobject

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// ErrInvalidRate is returned when an annual rate is negative.
var ErrInvalidRate = errors.New("annual rate must not be negative")

// EffectiveMonthlyRate converts an effective annual rate (TEA) expressed as a
// percentage (10.00 = 10%) into the effective monthly rate (TEM) using the
// compounding identity:
//
//	TEM = (1 + TEA/100)^(1/12) - 1
//
// The twelfth root is computed in float64 and converted back to decimal;
// monetary rounding happens later, when the rate is applied to a balance.
func EffectiveMonthlyRate(annualPct decimal.Decimal) (decimal.Decimal, error) {
	if annualPct.IsNegative() {
		return decimal.Decimal{}, ErrInvalidRate
	}
	if annualPct.IsZero() {
		return decimal.Zero, nil
	}

	annual := annualPct.InexactFloat64() / 100.0
	monthly := math.Pow(1+annual, 1.0/12.0) - 1

	return decimal.NewFromFloat(monthly), nil
}
