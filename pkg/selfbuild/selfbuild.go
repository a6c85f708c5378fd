// Package selfbuild models the staged release of mortgage funds during
// construction and classifies the repayment phase governing each month.
package selfbuild

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/money"
)

// Mode is the repayment mode during construction.
type Mode string

const (
	// ModeInterestOnly schedules interest on the drawn balance only until the
	// full repayment phase begins.
	ModeInterestOnly Mode = "interest_only"

	// ModeInterestAndCapital amortizes normally against the drawn balance from
	// the first drawdown.
	ModeInterestAndCapital Mode = "interest_and_capital"
)

// Phase classifies which repayment rules govern a month.
type Phase string

const (
	// PhaseConstruction runs until the final drawdown.
	PhaseConstruction Phase = "construction"

	// PhaseInterestOnly is the trailing interest-only span after the final
	// drawdown.
	PhaseInterestOnly Phase = "interest_only"

	// PhaseRepayment is full capital-and-interest repayment.
	PhaseRepayment Phase = "repayment"
)

// Stage is one scheduled release of funds.
type Stage struct {
	Month  int
	Amount decimal.Decimal
}

// Plan is a validated drawdown schedule for a self-build mortgage.
type Plan struct {
	mode               Mode
	interestOnlyMonths int
	finalDrawdownMonth int
	byMonth            map[int]decimal.Decimal
}

// NewPlan validates the stage list against the mortgage principal and builds
// the plan. Stage months must be non-decreasing and the stage amounts must sum
// to the principal; a mismatch is a configuration error surfaced here, before
// any simulation begins.
func NewPlan(mode Mode, interestOnlyMonths int, stages []Stage, principal decimal.Decimal) (*Plan, error) {
	if mode != ModeInterestOnly && mode != ModeInterestAndCapital {
		return nil, fmt.Errorf("invalid self-build repayment mode %q", mode)
	}
	if interestOnlyMonths < 0 {
		return nil, fmt.Errorf("interest-only month count must not be negative")
	}
	if len(stages) == 0 {
		return nil, fmt.Errorf("self-build plan requires at least one drawdown stage")
	}

	plan := &Plan{
		mode:               mode,
		interestOnlyMonths: interestOnlyMonths,
		byMonth:            make(map[int]decimal.Decimal, len(stages)),
	}

	total := decimal.Zero
	previousMonth := 0
	for i, stage := range stages {
		if stage.Month < 1 {
			return nil, fmt.Errorf("drawdown stage %d month must be at least 1", i+1)
		}
		if stage.Month < previousMonth {
			return nil, fmt.Errorf("drawdown stage %d month %d precedes stage %d month %d",
				i+1, stage.Month, i, previousMonth)
		}
		if stage.Amount.Sign() <= 0 {
			return nil, fmt.Errorf("drawdown stage %d amount must be positive", i+1)
		}
		plan.byMonth[stage.Month] = plan.byMonth[stage.Month].Add(stage.Amount)
		total = total.Add(stage.Amount)
		previousMonth = stage.Month
	}
	plan.finalDrawdownMonth = previousMonth

	if !money.WithinTolerance(total, principal, decimal.New(1, -2)) {
		return nil, fmt.Errorf("drawdown stages sum to %s but mortgage principal is %s",
			total.String(), principal.String())
	}

	return plan, nil
}

// Mode returns the construction repayment mode.
func (p *Plan) Mode() Mode {
	return p.mode
}

// FinalDrawdownMonth is the month of the last scheduled drawdown.
func (p *Plan) FinalDrawdownMonth() int {
	return p.finalDrawdownMonth
}

// DrawdownForMonth returns the principal released in the given month, zero for
// months with no stage.
func (p *Plan) DrawdownForMonth(month int) decimal.Decimal {
	return p.byMonth[month]
}

// PhaseForMonth classifies the given month: construction until the final
// drawdown, then interest-only for the configured trailing months, then
// full repayment.
func (p *Plan) PhaseForMonth(month int) Phase {
	if month <= p.finalDrawdownMonth {
		return PhaseConstruction
	}
	if month <= p.finalDrawdownMonth+p.interestOnlyMonths {
		return PhaseInterestOnly
	}
	return PhaseRepayment
}

// InterestOnlyScheduled reports whether the scheduled payment for a month in
// the given phase covers interest only.
func (p *Plan) InterestOnlyScheduled(phase Phase) bool {
	return p.mode == ModeInterestOnly && phase != PhaseRepayment
}
