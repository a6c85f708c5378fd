// Package overpayment expands declared overpayments into monthly amounts and
// evaluates them against lender allowance policies.
package overpayment

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/constants"
)

// Frequency describes how often an overpayment recurs.
type Frequency string

const (
	// FrequencyOnce is a single overpayment at its start month.
	FrequencyOnce Frequency = "once"

	// FrequencyMonthly recurs every month.
	FrequencyMonthly Frequency = "monthly"

	// FrequencyQuarterly recurs every three months.
	FrequencyQuarterly Frequency = "quarterly"

	// FrequencyYearly recurs every twelve months.
	FrequencyYearly Frequency = "yearly"
)

// intervalMonths returns the recurrence interval, or 0 for one-time payments.
func (f Frequency) intervalMonths() int {
	switch f {
	case FrequencyMonthly:
		return 1
	case FrequencyQuarterly:
		return constants.MonthsPerQuarter
	case FrequencyYearly:
		return constants.MonthsPerYear
	default:
		return 0
	}
}

// Valid reports whether the frequency is one of the supported values.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyOnce, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}
	return false
}

// Effect describes what an overpayment does to the remaining schedule.
type Effect string

const (
	// EffectReduceTerm keeps the scheduled payment constant so the mortgage
	// finishes early.
	EffectReduceTerm Effect = "reduce_term"

	// EffectReducePayment keeps the term constant and recalculates a lower
	// payment from the new balance.
	EffectReducePayment Effect = "reduce_payment"
)

// Valid reports whether the effect is one of the supported values.
func (e Effect) Valid() bool {
	return e == EffectReduceTerm || e == EffectReducePayment
}

// Config is a user-declared overpayment linked to exactly one rate period.
type Config struct {
	ID           string
	RatePeriodID string
	Frequency    Frequency
	Amount       decimal.Decimal
	StartMonth   int
	EndMonth     int // inclusive; 0 means open-ended (recurring only)
	Effect       Effect
}

// DueInMonth reports whether this overpayment falls due in the given month.
// One-time payments fire only at their start month; recurring payments fire at
// each occurrence of their frequency between start and end month inclusive.
func (c Config) DueInMonth(month int) bool {
	if c.Frequency == FrequencyOnce {
		return month == c.StartMonth
	}
	if month < c.StartMonth {
		return false
	}
	if c.EndMonth > 0 && month > c.EndMonth {
		return false
	}
	interval := c.Frequency.intervalMonths()
	if interval <= 0 {
		return false
	}
	return (month-c.StartMonth)%interval == 0
}

// Validate checks a config for structural errors.
func (c Config) Validate() error {
	if !c.Frequency.Valid() {
		return fmt.Errorf("overpayment %s has invalid frequency %q", c.ID, c.Frequency)
	}
	if !c.Effect.Valid() {
		return fmt.Errorf("overpayment %s has invalid effect %q", c.ID, c.Effect)
	}
	if c.Amount.Sign() <= 0 {
		return fmt.Errorf("overpayment %s amount must be positive", c.ID)
	}
	if c.StartMonth < 1 {
		return fmt.Errorf("overpayment %s start month must be at least 1", c.ID)
	}
	if c.EndMonth != 0 && c.EndMonth < c.StartMonth {
		return fmt.Errorf("overpayment %s end month %d precedes start month %d", c.ID, c.EndMonth, c.StartMonth)
	}
	if c.RatePeriodID == "" {
		return fmt.Errorf("overpayment %s is not linked to a rate period", c.ID)
	}
	return nil
}
