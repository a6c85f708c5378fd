// Package schedule computes month-by-month mortgage amortization ledgers. It
// drives the rate resolver, the self-build drawdown plan, and the overpayment
// policy engine through a single pass over the mortgage term.
package schedule

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/annuity"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/money"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/overpayment"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/rates"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/selfbuild"
)

// Input carries everything one simulation run needs. All reference data is
// read-only; a run never mutates its input.
type Input struct {
	MortgageAmount decimal.Decimal
	TermMonths     int
	PropertyValue  decimal.Decimal
	StartDate      string // optional YYYY-MM, passed through to outputs
	BERRating      string // passed through untouched

	Periods      []rates.Resolved
	Overpayments []overpayment.Config
	Policies     map[string]overpayment.Policy
	SelfBuild    *selfbuild.Plan
}

// Month is one row of the amortization ledger, produced once per simulation
// run and never mutated afterwards.
type Month struct {
	Month            int             `json:"month"`
	OpeningBalance   decimal.Decimal `json:"openingBalance"`
	ScheduledPayment decimal.Decimal `json:"scheduledPayment"`
	Interest         decimal.Decimal `json:"interest"`
	Principal        decimal.Decimal `json:"principal"`
	Overpayment      decimal.Decimal `json:"overpayment"`
	ClosingBalance   decimal.Decimal `json:"closingBalance"`
	Rate             float64         `json:"rate"`
	RatePeriodID     string          `json:"ratePeriodId"`

	CumulativeInterest     decimal.Decimal `json:"cumulativeInterest"`
	CumulativePrincipal    decimal.Decimal `json:"cumulativePrincipal"`
	CumulativeOverpayments decimal.Decimal `json:"cumulativeOverpayments"`
	CumulativeTotal        decimal.Decimal `json:"cumulativeTotal"`

	// Self-build fields; zero-valued for standard mortgages.
	Drawdown        decimal.Decimal `json:"drawdown,omitempty"`
	CumulativeDrawn decimal.Decimal `json:"cumulativeDrawn,omitempty"`
	Phase           selfbuild.Phase `json:"phase,omitempty"`
	InterestOnly    bool            `json:"interestOnly,omitempty"`
}

// AppliedOverpayment records one overpayment actually applied during a run.
type AppliedOverpayment struct {
	Month           int             `json:"month"`
	ConfigID        string          `json:"configId"`
	Amount          decimal.Decimal `json:"amount"`
	WithinAllowance decimal.Decimal `json:"withinAllowance"`
	Excess          decimal.Decimal `json:"excess"`
	EstimatedCharge decimal.Decimal `json:"estimatedCharge"`
}

// Result is the full outcome of one simulation run.
type Result struct {
	Months              []Month              `json:"months"`
	AppliedOverpayments []AppliedOverpayment `json:"appliedOverpayments"`
	Warnings            []Warning            `json:"warnings"`
}

// Engine runs amortization simulations. It holds no per-run state, so a single
// engine may serve concurrent runs.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates an engine with the given logger. If logger is nil, a no-op
// logger is used.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Run executes the month-by-month simulation. Configuration errors fail the
// run before any row is produced; a rate-period stack that ends before the
// term does not fail the run, it produces a valid partial ledger for the
// completeness checker to report on.
func (e *Engine) Run(in Input) (*Result, error) {
	if in.MortgageAmount.Sign() <= 0 {
		return nil, fmt.Errorf("mortgage amount must be positive, got %s", in.MortgageAmount.String())
	}
	if in.TermMonths <= 0 {
		return nil, fmt.Errorf("mortgage term must be positive, got %d months", in.TermMonths)
	}
	for _, oc := range in.Overpayments {
		if err := oc.Validate(); err != nil {
			return nil, err
		}
	}

	result := &Result{}
	tracker := overpayment.NewTracker()

	balance := in.MortgageAmount
	if in.SelfBuild != nil {
		// Self-build principal enters the ledger through drawdowns.
		balance = decimal.Zero
	}

	var (
		payment      decimal.Decimal
		cumInterest  decimal.Decimal
		cumPrincipal decimal.Decimal
		cumOver      decimal.Decimal
		cumDrawn     decimal.Decimal
		repriceNext  bool
		prevPhase    selfbuild.Phase
	)

	for month := 1; month <= in.TermMonths; month++ {
		active, covered := rates.Active(in.Periods, month)
		if !covered {
			e.logger.Debug("rate period stack exhausted before term end",
				zap.String("op", "schedule.Run"),
				zap.Int("month", month),
			)
			break
		}

		opening := balance
		row := Month{
			Month:        month,
			Rate:         active.Rate,
			RatePeriodID: active.PeriodID,
		}

		var phase selfbuild.Phase
		interestOnly := false
		drawdown := decimal.Zero
		if in.SelfBuild != nil {
			drawdown = in.SelfBuild.DrawdownForMonth(month)
			if drawdown.Sign() > 0 {
				opening = opening.Add(drawdown)
				cumDrawn = cumDrawn.Add(drawdown)
			}
			phase = in.SelfBuild.PhaseForMonth(month)
			interestOnly = in.SelfBuild.InterestOnlyScheduled(phase)
			row.Drawdown = drawdown
			row.CumulativeDrawn = cumDrawn
			row.Phase = phase
			row.InterestOnly = interestOnly
		}

		// Repricing always amortizes over what is left of the whole mortgage,
		// not the sub-period.
		remaining := in.TermMonths - month + 1
		reprice := month == active.StartMonth || repriceNext
		if in.SelfBuild != nil {
			if drawdown.Sign() > 0 {
				reprice = true
			}
			if phase == selfbuild.PhaseRepayment && prevPhase != selfbuild.PhaseRepayment {
				reprice = true
			}
			prevPhase = phase
		}
		if reprice && !interestOnly {
			payment = annuity.MonthlyPayment(opening, active.Rate, remaining)
			e.logger.Debug(fmt.Sprintf("month %d: repriced scheduled payment to %s", month, payment.String()),
				zap.String("op", "schedule.Run"),
				zap.String("ratePeriod", active.PeriodID),
			)
		}
		repriceNext = false

		interest := annuity.InterestPortion(opening, active.Rate)

		scheduled := payment
		principalPortion := decimal.Zero
		if interestOnly {
			scheduled = interest
		} else {
			principalPortion = money.Round(scheduled.Sub(interest))
			if principalPortion.GreaterThan(opening) {
				// Final-month clamp: never drive the closing balance negative.
				principalPortion = opening
				scheduled = money.Round(interest.Add(principalPortion))
			}
			principalPortion = money.ClampNonNegative(principalPortion)
		}

		over := decimal.Zero
		redeemable := opening.Sub(principalPortion)
		for _, oc := range in.Overpayments {
			if oc.RatePeriodID != active.PeriodID || !oc.DueInMonth(month) {
				continue
			}
			amount := oc.Amount
			if headroom := redeemable.Sub(over); amount.GreaterThan(headroom) {
				amount = money.Round(headroom)
			}
			if amount.Sign() <= 0 {
				continue
			}

			applied := AppliedOverpayment{
				Month:           month,
				ConfigID:        oc.ID,
				Amount:          amount,
				WithinAllowance: amount,
			}
			if policy, ok := in.Policies[active.OverpaymentPolicyID]; ok && active.OverpaymentPolicyID != "" {
				count := tracker.Record(policy, month)
				assessment := overpayment.Assess(policy, opening, scheduled, amount, count)
				applied.WithinAllowance = assessment.WithinAllowance
				applied.Excess = assessment.Excess
				applied.EstimatedCharge = assessment.EstimatedCharge
				if assessment.Excess.Sign() > 0 {
					result.Warnings = append(result.Warnings, Warning{
						Type:                WarningAllowanceExceeded,
						Month:               month,
						Severity:            SeverityWarning,
						OverpaymentConfigID: oc.ID,
						Message: fmt.Sprintf("overpayment of %s exceeds the free allowance of %s by %s",
							amount.StringFixed(2), assessment.Allowance.StringFixed(2), assessment.Excess.StringFixed(2)),
					})
				}
				if assessment.TransactionLimitExceeded {
					result.Warnings = append(result.Warnings, Warning{
						Type:                WarningTransactionLimitExceeded,
						Month:               month,
						Severity:            SeverityWarning,
						OverpaymentConfigID: oc.ID,
						Message: fmt.Sprintf("overpayment transaction %d exceeds the policy limit of %d for the active window",
							count, policy.MaxTransactions),
					})
				}
			}

			// The requested amount is applied in full either way: allowance
			// findings are warnings, not behavioral caps.
			over = over.Add(amount)
			result.AppliedOverpayments = append(result.AppliedOverpayments, applied)
			if oc.Effect == overpayment.EffectReducePayment {
				repriceNext = true
			}
		}

		closing := money.ClampNonNegative(money.Round(opening.Sub(principalPortion).Sub(over)))

		cumInterest = cumInterest.Add(interest)
		cumPrincipal = cumPrincipal.Add(principalPortion).Add(over)
		cumOver = cumOver.Add(over)

		row.OpeningBalance = opening
		row.ScheduledPayment = scheduled
		row.Interest = interest
		row.Principal = principalPortion
		row.Overpayment = over
		row.ClosingBalance = closing
		row.CumulativeInterest = cumInterest
		row.CumulativePrincipal = cumPrincipal
		row.CumulativeOverpayments = cumOver
		row.CumulativeTotal = cumInterest.Add(cumPrincipal)
		result.Months = append(result.Months, row)

		balance = closing
		if money.IsZero(closing) {
			if month < in.TermMonths {
				result.Warnings = append(result.Warnings, Warning{
					Type:     WarningEarlyRedemption,
					Month:    month,
					Severity: SeverityInfo,
					Message:  fmt.Sprintf("mortgage fully repaid in month %d of a %d month term", month, in.TermMonths),
				})
			}
			break
		}
	}

	return result, nil
}
