// Package annuity provides closed-form loan payment calculations.
package annuity

import (
	"github.com/shopspring/decimal"

	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/constants"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/money"
)

var one = decimal.NewFromInt(1)

// MonthlyRate converts an annual percentage rate stored as its literal value
// (e.g. 3.45 meaning 3.45%) into a monthly decimal rate.
func MonthlyRate(annualRate float64) decimal.Decimal {
	return decimal.NewFromFloat(annualRate).
		Div(decimal.NewFromInt(constants.PercentageMultiplier)).
		Div(decimal.NewFromInt(constants.MonthsPerYear))
}

// MonthlyPayment calculates the scheduled payment for a loan using the
// standard amortization formula. A zero rate degenerates to straight-line
// repayment of the principal over the term.
func MonthlyPayment(principal decimal.Decimal, annualRate float64, termMonths int) decimal.Decimal {
	if termMonths <= 0 || principal.Sign() <= 0 {
		return decimal.Zero
	}
	months := decimal.NewFromInt(int64(termMonths))
	if annualRate == 0 {
		return money.Round(principal.Div(months))
	}

	rate := MonthlyRate(annualRate)
	power := one.Add(rate).Pow(months)
	payment := principal.Mul(rate).Mul(power).Div(power.Sub(one))
	return money.Round(payment)
}

// InterestPortion calculates the interest accrued on a balance for one month.
func InterestPortion(balance decimal.Decimal, annualRate float64) decimal.Decimal {
	return money.Round(balance.Mul(MonthlyRate(annualRate)))
}
