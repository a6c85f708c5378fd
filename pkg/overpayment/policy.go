package overpayment

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/constants"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/money"
)

// AllowanceType describes how a lender computes the free overpayment ceiling.
type AllowanceType string

const (
	// AllowancePercentageOfBalance is a percentage of the outstanding balance.
	AllowancePercentageOfBalance AllowanceType = "percentage_balance"

	// AllowancePercentageOfPayment is a percentage of the monthly payment.
	AllowancePercentageOfPayment AllowanceType = "percentage_payment"

	// AllowanceFlat is a flat euro amount.
	AllowanceFlat AllowanceType = "flat"
)

// Window describes the span over which overpayment transactions are counted.
type Window string

const (
	WindowMonth   Window = "month"
	WindowQuarter Window = "quarter"
	WindowYear    Window = "year"

	// WindowFixed counts transactions over the whole fixed window.
	WindowFixed Window = "fixed"
)

// Policy is an immutable lender overpayment rule.
type Policy struct {
	ID                  string
	AllowanceType       AllowanceType
	AllowanceValue      float64 // percentage, or euro amount for flat allowances
	MinChargeableAmount decimal.Decimal
	ChargeCap           decimal.Decimal
	MaxTransactions     int // 0 means unlimited
	Window              Window
}

// Assessment classifies one requested overpayment against a policy. The
// assessment is advisory: the requested amount is applied in full regardless,
// and any excess only surfaces as a warning and charge estimate.
type Assessment struct {
	Allowance                decimal.Decimal
	WithinAllowance          decimal.Decimal
	Excess                   decimal.Decimal
	EstimatedCharge          decimal.Decimal
	TransactionLimitExceeded bool
}

// Assess splits a requested overpayment into the portion within the policy's
// allowance ceiling and the excess subject to a charge. transactionCount is
// the running count for the policy's active window including this transaction.
func Assess(policy Policy, balance, scheduledPayment, requested decimal.Decimal, transactionCount int) Assessment {
	var allowance decimal.Decimal
	switch policy.AllowanceType {
	case AllowancePercentageOfBalance:
		allowance = money.Percent(balance, policy.AllowanceValue)
	case AllowancePercentageOfPayment:
		allowance = money.Percent(scheduledPayment, policy.AllowanceValue)
	case AllowanceFlat:
		allowance = money.FromFloat(policy.AllowanceValue)
	}

	within := decimal.Min(requested, allowance)
	excess := money.ClampNonNegative(money.Round(requested.Sub(within)))

	charge := excess
	if excess.Sign() > 0 {
		if policy.MinChargeableAmount.Sign() > 0 && excess.LessThan(policy.MinChargeableAmount) {
			charge = decimal.Zero
		} else if policy.ChargeCap.Sign() > 0 && charge.GreaterThan(policy.ChargeCap) {
			charge = policy.ChargeCap
		}
	} else {
		charge = decimal.Zero
	}

	return Assessment{
		Allowance:                allowance,
		WithinAllowance:          within,
		Excess:                   excess,
		EstimatedCharge:          charge,
		TransactionLimitExceeded: policy.MaxTransactions > 0 && transactionCount > policy.MaxTransactions,
	}
}

// Tracker counts overpayment transactions per policy window within a single
// simulation run. It is local to one run; no state crosses run boundaries.
type Tracker struct {
	counts map[string]int
}

// NewTracker creates an empty transaction tracker.
func NewTracker() *Tracker {
	return &Tracker{counts: make(map[string]int)}
}

// Record registers one transaction for the policy's window containing the
// given month and returns the updated count for that window.
func (t *Tracker) Record(policy Policy, month int) int {
	key := fmt.Sprintf("%s:%d", policy.ID, windowIndex(policy.Window, month))
	t.counts[key]++
	return t.counts[key]
}

// windowIndex buckets a 1-indexed month into the policy's counting window.
func windowIndex(window Window, month int) int {
	switch window {
	case WindowMonth:
		return month
	case WindowQuarter:
		return (month - 1) / constants.MonthsPerQuarter
	case WindowYear:
		return (month - 1) / constants.MonthsPerYear
	default:
		return 0
	}
}
