// Package money provides cent-precision monetary arithmetic helpers built on
// decimal values. All ledger amounts are rounded to cents through this package
// so that repeated operations cannot accumulate floating-point drift.
package money

import (
	"github.com/shopspring/decimal"

	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/constants"
)

// centTolerance is one cent; balances within it are treated as settled.
var centTolerance = decimal.New(1, -2)

// FromFloat converts a euro amount into a cent-rounded decimal.
func FromFloat(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(2)
}

// Round rounds a value to two decimals, i.e. to represent real currency.
func Round(val decimal.Decimal) decimal.Decimal {
	return val.Round(2)
}

// IsZero checks if a value is effectively zero (within one cent).
func IsZero(val decimal.Decimal) bool {
	return val.Abs().LessThanOrEqual(centTolerance)
}

// IsPositive checks if a value is positive beyond the cent tolerance.
func IsPositive(val decimal.Decimal) bool {
	return val.GreaterThan(centTolerance)
}

// WithinTolerance checks if two values agree within the given tolerance.
func WithinTolerance(val1, val2, tolerance decimal.Decimal) bool {
	return val1.Sub(val2).Abs().LessThanOrEqual(tolerance)
}

// ClampNonNegative floors a value at zero.
func ClampNonNegative(val decimal.Decimal) decimal.Decimal {
	if val.Sign() < 0 {
		return decimal.Zero
	}
	return val
}

// Percent applies a percentage (stored as its literal value, e.g. 3.45 for
// 3.45%) to a value and rounds to cents.
func Percent(val decimal.Decimal, percentage float64) decimal.Decimal {
	pct := decimal.NewFromFloat(percentage).Div(decimal.NewFromInt(constants.PercentageMultiplier))
	return val.Mul(pct).Round(2)
}
