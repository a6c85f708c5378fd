package config

import (
	"fmt"

	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/constants"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/datetime"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/overpayment"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/selfbuild"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/validation"
)

// Validate checks the configuration for fatal errors. A non-nil return means
// no simulation may run; advisory findings belong to ValidateConfiguration.
func (c *Configuration) Validate() error {
	if c.Mortgage.Amount <= 0 {
		return fmt.Errorf("mortgage amount must be positive, got %.2f", c.Mortgage.Amount)
	}
	if c.Mortgage.TermMonths <= 0 {
		return fmt.Errorf("mortgage term must be positive, got %d months", c.Mortgage.TermMonths)
	}
	if c.Mortgage.TermMonths > constants.MaxTermMonths {
		return fmt.Errorf("mortgage term of %d months exceeds the maximum of %d",
			c.Mortgage.TermMonths, constants.MaxTermMonths)
	}
	if c.Mortgage.StartDate != "" {
		if err := datetime.ValidateDate(c.Mortgage.StartDate); err != nil {
			return fmt.Errorf("start date %q is not in %s format: %w",
				c.Mortgage.StartDate, constants.DateTimeLayout, err)
		}
	}
	if len(c.RatePeriods) == 0 {
		return fmt.Errorf("at least one rate period is required")
	}

	for i, rate := range c.Rates {
		if rate.Rate == nil {
			return fmt.Errorf("rate %d (%s) has no rate value", i+1, rate.ID)
		}
		if rate.Lender == "" {
			return fmt.Errorf("rate %d (%s) has no lender", i+1, rate.ID)
		}
	}
	for i, rate := range c.CustomRates {
		if rate.Rate == nil {
			return fmt.Errorf("custom rate %d (%s) has no rate value", i+1, rate.ID)
		}
		if rate.ID == "" {
			return fmt.Errorf("custom rate %d has no id", i+1)
		}
	}

	policyIDs := make(map[string]bool, len(c.OverpaymentPolicies))
	for i, policy := range c.OverpaymentPolicies {
		if policy.ID == "" {
			return fmt.Errorf("overpayment policy %d has no id", i+1)
		}
		if policyIDs[policy.ID] {
			return fmt.Errorf("duplicate overpayment policy id %q", policy.ID)
		}
		policyIDs[policy.ID] = true
		if policy.AllowanceValue == nil {
			return fmt.Errorf("overpayment policy %s has no allowance value", policy.ID)
		}
		switch overpayment.AllowanceType(policy.AllowanceType) {
		case overpayment.AllowancePercentageOfBalance, overpayment.AllowancePercentageOfPayment, overpayment.AllowanceFlat:
		default:
			return fmt.Errorf("overpayment policy %s has invalid allowance type %q", policy.ID, policy.AllowanceType)
		}
		switch overpayment.Window(policy.Window) {
		case overpayment.WindowMonth, overpayment.WindowQuarter, overpayment.WindowYear, overpayment.WindowFixed, "":
		default:
			return fmt.Errorf("overpayment policy %s has invalid window %q", policy.ID, policy.Window)
		}
	}

	for i, op := range c.Overpayments {
		if !overpayment.Frequency(op.Frequency).Valid() {
			return fmt.Errorf("overpayment %d (%s) has invalid frequency %q", i+1, op.ID, op.Frequency)
		}
		if !overpayment.Effect(op.Effect).Valid() {
			return fmt.Errorf("overpayment %d (%s) has invalid effect %q", i+1, op.ID, op.Effect)
		}
		if op.Amount <= 0 {
			return fmt.Errorf("overpayment %d (%s) amount must be positive", i+1, op.ID)
		}
	}

	if c.SelfBuild != nil {
		mode := selfbuild.Mode(c.SelfBuild.Mode)
		if mode != selfbuild.ModeInterestOnly && mode != selfbuild.ModeInterestAndCapital {
			return fmt.Errorf("self-build mode %q is invalid", c.SelfBuild.Mode)
		}
		if len(c.SelfBuild.Stages) == 0 {
			return fmt.Errorf("self-build plan requires at least one drawdown stage")
		}
	}

	if c.Output.Format != "" {
		if c.Output.Format != constants.OutputFormatPretty && c.Output.Format != constants.OutputFormatCSV {
			return fmt.Errorf("output format %q is invalid, expected %s or %s",
				c.Output.Format, constants.OutputFormatPretty, constants.OutputFormatCSV)
		}
	}

	return nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Warnings never block a run; they surface likely mistakes
// such as a rate-period stack that ends before the term does.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	periods := make([]validation.PeriodInfo, len(c.RatePeriods))
	for i, period := range c.RatePeriods {
		periods[i] = validation.PeriodInfo{ID: period.ID, DurationMonths: period.DurationMonths}
	}
	if warning := validation.CoverageWarning(periods, c.Mortgage.TermMonths); warning != "" {
		warnings = append(warnings, warning)
	}

	overpayments := make([]validation.OverpaymentInfo, len(c.Overpayments))
	for i, op := range c.Overpayments {
		overpayments[i] = validation.OverpaymentInfo{
			ID:           op.ID,
			RatePeriodID: op.RatePeriodID,
			StartMonth:   op.StartMonth,
		}
	}
	spans := validation.PeriodSpans(periods, c.Mortgage.TermMonths)
	warnings = append(warnings, validation.OverpaymentSpanWarnings(overpayments, spans)...)

	policyIDs := make(map[string]bool, len(c.OverpaymentPolicies))
	for _, policy := range c.OverpaymentPolicies {
		policyIDs[policy.ID] = true
	}
	for _, rate := range append(append([]Rate{}, c.Rates...), c.CustomRates...) {
		if rate.OverpaymentPolicyID != "" && !policyIDs[rate.OverpaymentPolicyID] {
			warnings = append(warnings, fmt.Sprintf(
				"rate %s references overpayment policy %q which is not declared; overpayments on it will not be assessed",
				rate.ID, rate.OverpaymentPolicyID))
		}
	}

	if c.Mortgage.PropertyValue > 0 && c.Mortgage.Amount > c.Mortgage.PropertyValue {
		warnings = append(warnings, fmt.Sprintf(
			"mortgage amount %.2f exceeds the property value %.2f (loan-to-value above 100%%)",
			c.Mortgage.Amount, c.Mortgage.PropertyValue))
	}

	return warnings
}
