package breakeven

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/annuity"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/money"
)

// RemortgageInput describes a switch from the current rate to a competing one
// over the remaining term.
type RemortgageInput struct {
	Balance              decimal.Decimal `json:"balance"`
	CurrentRate          float64         `json:"currentRate"`
	NewRate              float64         `json:"newRate"`
	RemainingTermMonths  int             `json:"remainingTermMonths"`
	SwitchingCosts       decimal.Decimal `json:"switchingCosts"`
	Cashback             decimal.Decimal `json:"cashback"`
	EarlyRepaymentCharge decimal.Decimal `json:"earlyRepaymentCharge"`
}

// RemortgageMonth is one row of the parallel cost timeline.
type RemortgageMonth struct {
	Month             int             `json:"month"`
	CurrentInterest   decimal.Decimal `json:"currentInterest"`
	NewInterest       decimal.Decimal `json:"newInterest"`
	CumulativeSavings decimal.Decimal `json:"cumulativeSavings"`
}

// RemortgageResult reports whether and when switching pays for itself.
// BreakevenMonth is nil when the switch never breaks even.
type RemortgageResult struct {
	CurrentPayment       decimal.Decimal   `json:"currentPayment"`
	NewPayment           decimal.Decimal   `json:"newPayment"`
	MonthlySavings       decimal.Decimal   `json:"monthlySavings"`
	NetSwitchingCost     decimal.Decimal   `json:"netSwitchingCost"`
	BreakevenMonth       *int              `json:"breakevenMonth"`
	TotalInterestCurrent decimal.Decimal   `json:"totalInterestCurrent"`
	TotalInterestNew     decimal.Decimal   `json:"totalInterestNew"`
	TotalSavings         decimal.Decimal   `json:"totalSavings"`
	Monthly              []RemortgageMonth `json:"monthly"`
	Description          string            `json:"description"`
}

// CompareRemortgage walks the current and new amortizations in parallel and
// finds the month at which cumulative interest savings first exceed the net
// switching cost (costs plus any early-repayment charge, reduced by cashback).
func CompareRemortgage(logger *zap.Logger, in RemortgageInput) (*RemortgageResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if in.Balance.Sign() <= 0 {
		return nil, fmt.Errorf("remortgage balance must be positive, got %s", in.Balance.String())
	}
	if in.RemainingTermMonths <= 0 {
		return nil, fmt.Errorf("remaining term must be positive, got %d months", in.RemainingTermMonths)
	}

	result := &RemortgageResult{
		CurrentPayment:   annuity.MonthlyPayment(in.Balance, in.CurrentRate, in.RemainingTermMonths),
		NewPayment:       annuity.MonthlyPayment(in.Balance, in.NewRate, in.RemainingTermMonths),
		NetSwitchingCost: money.Round(in.SwitchingCosts.Sub(in.Cashback).Add(in.EarlyRepaymentCharge)),
	}
	result.MonthlySavings = money.Round(result.CurrentPayment.Sub(result.NewPayment))

	currentBalance := in.Balance
	newBalance := in.Balance
	cumCurrent := decimal.Zero
	cumNew := decimal.Zero
	result.Monthly = make([]RemortgageMonth, 0, in.RemainingTermMonths)
	for month := 1; month <= in.RemainingTermMonths; month++ {
		currentInterest := annuity.InterestPortion(currentBalance, in.CurrentRate)
		newInterest := annuity.InterestPortion(newBalance, in.NewRate)
		cumCurrent = cumCurrent.Add(currentInterest)
		cumNew = cumNew.Add(newInterest)

		currentBalance = amortizeStep(currentBalance, result.CurrentPayment, currentInterest)
		newBalance = amortizeStep(newBalance, result.NewPayment, newInterest)

		result.Monthly = append(result.Monthly, RemortgageMonth{
			Month:             month,
			CurrentInterest:   currentInterest,
			NewInterest:       newInterest,
			CumulativeSavings: cumCurrent.Sub(cumNew),
		})
	}
	result.TotalInterestCurrent = cumCurrent
	result.TotalInterestNew = cumNew
	result.TotalSavings = cumCurrent.Sub(cumNew)

	if in.NewRate >= in.CurrentRate {
		// Not strictly better: savings never accumulate, breakeven is
		// unreachable regardless of cashback.
		result.Description = fmt.Sprintf("the new rate (%.2f%%) is not below the current rate (%.2f%%), so switching never breaks even",
			in.NewRate, in.CurrentRate)
		return result, nil
	}

	rows := result.Monthly
	result.BreakevenMonth = firstStableCrossover(in.RemainingTermMonths, func(month int) bool {
		return rows[month-1].CumulativeSavings.GreaterThanOrEqual(result.NetSwitchingCost)
	})
	if result.BreakevenMonth == nil {
		result.Description = fmt.Sprintf("interest savings of %s over the remaining term never recover the %s switching cost",
			result.TotalSavings.StringFixed(2), result.NetSwitchingCost.StringFixed(2))
	} else {
		result.Description = fmt.Sprintf("switching pays for itself in month %d: cumulative interest savings exceed the %s net switching cost from then on",
			*result.BreakevenMonth, result.NetSwitchingCost.StringFixed(2))
	}
	return result, nil
}

// amortizeStep advances one month of a plain annuity schedule, clamping the
// final payment so the balance never goes negative.
func amortizeStep(balance, payment, interest decimal.Decimal) decimal.Decimal {
	principal := money.Round(payment.Sub(interest))
	if principal.GreaterThan(balance) {
		principal = balance
	}
	if principal.Sign() < 0 {
		principal = decimal.Zero
	}
	return balance.Sub(principal)
}
