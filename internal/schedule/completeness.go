package schedule

import (
	"github.com/shopspring/decimal"

	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/money"
)

// CompletenessReport describes how much of the declared term a ledger covers.
// A rate-period stack can under-specify coverage (for example a lone 3-year
// fixed period with no follow-on), which is a common and otherwise-silent
// user error; this report makes the gap visible to the caller.
type CompletenessReport struct {
	IsComplete       bool            `json:"isComplete"`
	CoveredMonths    int             `json:"coveredMonths"`
	MissingMonths    int             `json:"missingMonths"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
}

// CheckCompleteness validates a produced ledger against the declared mortgage
// amount and term. A ledger is complete when it ends at (approximately) zero
// balance, whether it covers the full term or pays off early.
func CheckCompleteness(months []Month, amount decimal.Decimal, termMonths int) CompletenessReport {
	report := CompletenessReport{
		CoveredMonths: len(months),
		MissingMonths: termMonths - len(months),
	}
	if report.MissingMonths < 0 {
		report.MissingMonths = 0
	}

	if len(months) == 0 {
		report.RemainingBalance = amount
		return report
	}

	final := months[len(months)-1].ClosingBalance
	if money.IsZero(final) {
		report.IsComplete = true
		report.RemainingBalance = decimal.Zero
		return report
	}

	report.RemainingBalance = final
	return report
}
