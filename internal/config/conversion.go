package config

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/barreeeiroo/MortgageLab-IE-sub008/internal/breakeven"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/internal/schedule"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/money"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/overpayment"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/rates"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/selfbuild"
)

// ApplyIdentityDefaults assigns a generated id to every rate period, rate, and
// overpayment that was declared without one, so that ledger rows and warnings
// can always name the record they refer to.
func (c *Configuration) ApplyIdentityDefaults() {
	for i := range c.RatePeriods {
		if c.RatePeriods[i].ID == "" {
			c.RatePeriods[i].ID = uuid.NewString()
		}
	}
	for i := range c.Rates {
		if c.Rates[i].ID == "" {
			c.Rates[i].ID = uuid.NewString()
		}
	}
	for i := range c.Overpayments {
		if c.Overpayments[i].ID == "" {
			c.Overpayments[i].ID = uuid.NewString()
		}
	}
}

// BuildSimulation converts the configuration into the engine's input type,
// resolving the rate-period stack against the catalogue and converting all
// monetary values to decimals.
func (c *Configuration) BuildSimulation() (*schedule.Input, error) {
	c.ApplyIdentityDefaults()

	catalogue := rates.NewCatalogue(convertRates(c.Rates), convertRates(c.CustomRates))
	periods := make([]rates.Period, len(c.RatePeriods))
	for i, period := range c.RatePeriods {
		periods[i] = rates.Period{
			ID:             period.ID,
			Lender:         period.Lender,
			RateID:         period.RateID,
			Custom:         period.Custom,
			DurationMonths: period.DurationMonths,
		}
	}
	resolved, err := rates.Resolve(catalogue, periods)
	if err != nil {
		return nil, fmt.Errorf("resolving rate periods: %w", err)
	}

	input := &schedule.Input{
		MortgageAmount: money.FromFloat(c.Mortgage.Amount),
		TermMonths:     c.Mortgage.TermMonths,
		PropertyValue:  money.FromFloat(c.Mortgage.PropertyValue),
		StartDate:      c.Mortgage.StartDate,
		BERRating:      c.Mortgage.BERRating,
		Periods:        resolved,
	}

	for _, op := range c.Overpayments {
		input.Overpayments = append(input.Overpayments, overpayment.Config{
			ID:           op.ID,
			RatePeriodID: op.RatePeriodID,
			Frequency:    overpayment.Frequency(op.Frequency),
			Amount:       money.FromFloat(op.Amount),
			StartMonth:   op.StartMonth,
			EndMonth:     op.EndMonth,
			Effect:       overpayment.Effect(op.Effect),
		})
	}

	if len(c.OverpaymentPolicies) > 0 {
		input.Policies = make(map[string]overpayment.Policy, len(c.OverpaymentPolicies))
		for _, policy := range c.OverpaymentPolicies {
			window := overpayment.Window(policy.Window)
			if policy.Window == "" {
				window = overpayment.WindowYear
			}
			input.Policies[policy.ID] = overpayment.Policy{
				ID:                  policy.ID,
				AllowanceType:       overpayment.AllowanceType(policy.AllowanceType),
				AllowanceValue:      *policy.AllowanceValue,
				MinChargeableAmount: money.FromFloat(policy.MinChargeableAmount),
				ChargeCap:           money.FromFloat(policy.ChargeCap),
				MaxTransactions:     policy.MaxTransactions,
				Window:              window,
			}
		}
	}

	if c.SelfBuild != nil {
		stages := make([]selfbuild.Stage, len(c.SelfBuild.Stages))
		for i, stage := range c.SelfBuild.Stages {
			stages[i] = selfbuild.Stage{
				Month:  stage.Month,
				Amount: money.FromFloat(stage.Amount),
			}
		}
		plan, err := selfbuild.NewPlan(
			selfbuild.Mode(c.SelfBuild.Mode),
			c.SelfBuild.InterestOnlyMonths,
			stages,
			input.MortgageAmount,
		)
		if err != nil {
			return nil, fmt.Errorf("building self-build plan: %w", err)
		}
		input.SelfBuild = plan
	}

	return input, nil
}

func convertRates(in []Rate) []rates.Rate {
	out := make([]rates.Rate, len(in))
	for i, rate := range in {
		value := 0.0
		if rate.Rate != nil {
			value = *rate.Rate
		}
		out[i] = rates.Rate{
			ID:                  rate.ID,
			Lender:              rate.Lender,
			Rate:                value,
			Type:                rates.Type(rate.Type),
			FixedTermYears:      rate.FixedTermYears,
			OverpaymentPolicyID: rate.OverpaymentPolicyID,
		}
	}
	return out
}

// BuildRentVsBuy converts the rent-vs-buy block into comparator input.
func (r *RentVsBuyConfig) BuildRentVsBuy() breakeven.RentVsBuyInput {
	return breakeven.RentVsBuyInput{
		PropertyPrice:         money.FromFloat(r.PropertyPrice),
		Deposit:               money.FromFloat(r.Deposit),
		MortgageRate:          r.MortgageRate,
		TermMonths:            r.TermMonths,
		UpfrontCosts:          money.FromFloat(r.UpfrontCosts),
		MonthlyRent:           money.FromFloat(r.MonthlyRent),
		RentInflationRate:     r.RentInflationRate,
		HomeAppreciationRate:  r.HomeAppreciationRate,
		InvestmentReturnRate:  r.InvestmentReturnRate,
		MonthlyOwnershipCosts: money.FromFloat(r.MonthlyOwnershipCosts),
		SellingCostsRate:      r.SellingCostsRate,
		HorizonMonths:         r.HorizonMonths,
	}
}

// BuildRemortgage converts the remortgage block into comparator input.
func (r *RemortgageConfig) BuildRemortgage() breakeven.RemortgageInput {
	return breakeven.RemortgageInput{
		Balance:              money.FromFloat(r.Balance),
		CurrentRate:          r.CurrentRate,
		NewRate:              r.NewRate,
		RemainingTermMonths:  r.RemainingTermMonths,
		SwitchingCosts:       money.FromFloat(r.SwitchingCosts),
		Cashback:             money.FromFloat(r.Cashback),
		EarlyRepaymentCharge: money.FromFloat(r.EarlyRepaymentCharge),
	}
}

// BuildCashback converts the cashback block into comparator input.
func (c *CashbackConfig) BuildCashback() breakeven.CashbackInput {
	input := breakeven.CashbackInput{
		MortgageAmount: money.FromFloat(c.MortgageAmount),
		TermMonths:     c.TermMonths,
		HorizonMonths:  c.HorizonMonths,
	}
	for _, option := range c.Options {
		input.Options = append(input.Options, breakeven.CashbackOption{
			Name:     option.Name,
			Rate:     option.Rate,
			Cashback: money.FromFloat(option.Cashback),
		})
	}
	return input
}
