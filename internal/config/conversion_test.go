package config

import (
	"testing"

	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/overpayment"
)

func float64Ptr(f float64) *float64 { return &f }

func TestBuildSimulation(t *testing.T) {
	config := &Configuration{
		Mortgage: Mortgage{Amount: 300000, TermMonths: 360, StartDate: "2026-01", BERRating: "B2"},
		Rates: []Rate{
			{ID: "fixed-4yr", Lender: "AIB", Rate: float64Ptr(3.45), Type: "fixed", FixedTermYears: 4, OverpaymentPolicyID: "aib"},
		},
		CustomRates: []Rate{
			{ID: "follow-on", Rate: float64Ptr(3.80), Type: "variable"},
		},
		RatePeriods: []RatePeriod{
			{ID: "intro", Lender: "AIB", RateID: "fixed-4yr", DurationMonths: 48},
			{ID: "rest", RateID: "follow-on", Custom: true, DurationMonths: 0},
		},
		OverpaymentPolicies: []OverpaymentPolicy{
			{ID: "aib", AllowanceType: "percentage_balance", AllowanceValue: float64Ptr(10), Window: "year"},
		},
		Overpayments: []Overpayment{
			{ID: "op1", RatePeriodID: "intro", Frequency: "monthly", Amount: 200, StartMonth: 1, EndMonth: 48, Effect: "reduce_term"},
		},
	}

	input, err := config.BuildSimulation()
	if err != nil {
		t.Fatalf("BuildSimulation() error = %v", err)
	}

	if !input.MortgageAmount.Equal(input.MortgageAmount.Round(2)) {
		t.Errorf("Mortgage amount should be rounded to cents, got %s", input.MortgageAmount)
	}
	if input.TermMonths != 360 {
		t.Errorf("Expected term = 360, got %d", input.TermMonths)
	}
	if input.StartDate != "2026-01" || input.BERRating != "B2" {
		t.Errorf("Pass-through fields lost: startDate=%q berRating=%q", input.StartDate, input.BERRating)
	}

	if len(input.Periods) != 2 {
		t.Fatalf("Expected 2 resolved periods, got %d", len(input.Periods))
	}
	if input.Periods[0].Rate != 3.45 || input.Periods[0].StartMonth != 1 {
		t.Errorf("Unexpected first resolved period: %+v", input.Periods[0])
	}
	if input.Periods[0].OverpaymentPolicyID != "aib" {
		t.Errorf("Expected first period to carry policy aib, got %q", input.Periods[0].OverpaymentPolicyID)
	}
	if input.Periods[1].Rate != 3.80 || input.Periods[1].StartMonth != 49 || input.Periods[1].DurationMonths != 0 {
		t.Errorf("Unexpected second resolved period: %+v", input.Periods[1])
	}

	if len(input.Overpayments) != 1 {
		t.Fatalf("Expected 1 overpayment, got %d", len(input.Overpayments))
	}
	if input.Overpayments[0].Frequency != overpayment.FrequencyMonthly {
		t.Errorf("Expected monthly frequency, got %q", input.Overpayments[0].Frequency)
	}

	policy, ok := input.Policies["aib"]
	if !ok {
		t.Fatalf("Expected policy aib in the input")
	}
	if policy.AllowanceType != overpayment.AllowancePercentageOfBalance || policy.AllowanceValue != 10 {
		t.Errorf("Unexpected policy conversion: %+v", policy)
	}
}

func TestBuildSimulationUnknownRate(t *testing.T) {
	config := &Configuration{
		Mortgage: Mortgage{Amount: 300000, TermMonths: 360},
		RatePeriods: []RatePeriod{
			{ID: "intro", Lender: "AIB", RateID: "does-not-exist", DurationMonths: 48},
		},
	}
	if _, err := config.BuildSimulation(); err == nil {
		t.Errorf("BuildSimulation() expected error for unknown rate reference")
	}
}

func TestBuildSimulationSelfBuildMismatch(t *testing.T) {
	config := &Configuration{
		Mortgage: Mortgage{Amount: 300000, TermMonths: 360},
		CustomRates: []Rate{
			{ID: "r1", Rate: float64Ptr(3.5), Type: "variable"},
		},
		RatePeriods: []RatePeriod{
			{ID: "p1", RateID: "r1", Custom: true, DurationMonths: 0},
		},
		SelfBuild: &SelfBuild{
			Mode: "interest_only",
			Stages: []DrawdownStage{
				{Month: 1, Amount: 100000},
				{Month: 6, Amount: 100000},
			},
		},
	}
	if _, err := config.BuildSimulation(); err == nil {
		t.Errorf("BuildSimulation() expected error when stages do not sum to the principal")
	}
}

func TestApplyIdentityDefaults(t *testing.T) {
	config := &Configuration{
		RatePeriods:  []RatePeriod{{RateID: "r1"}, {ID: "named", RateID: "r2"}},
		Overpayments: []Overpayment{{RatePeriodID: "named"}},
	}
	config.ApplyIdentityDefaults()

	if config.RatePeriods[0].ID == "" {
		t.Errorf("Expected generated id for unnamed rate period")
	}
	if config.RatePeriods[1].ID != "named" {
		t.Errorf("Existing id should be preserved, got %q", config.RatePeriods[1].ID)
	}
	if config.Overpayments[0].ID == "" {
		t.Errorf("Expected generated id for unnamed overpayment")
	}
}

func TestBuildComparatorInputs(t *testing.T) {
	remortgage := RemortgageConfig{
		Balance:             250000,
		CurrentRate:         4.5,
		NewRate:             3.6,
		RemainingTermMonths: 300,
		SwitchingCosts:      1500,
		Cashback:            2000,
	}
	remortgageInput := remortgage.BuildRemortgage()
	if remortgageInput.Balance.String() != "250000" {
		t.Errorf("Expected balance 250000, got %s", remortgageInput.Balance)
	}
	if remortgageInput.RemainingTermMonths != 300 {
		t.Errorf("Expected remaining term 300, got %d", remortgageInput.RemainingTermMonths)
	}

	cashback := CashbackConfig{
		MortgageAmount: 300000,
		TermMonths:     360,
		Options: []CashbackOption{
			{Name: "A", Rate: 4.0, Cashback: 6000},
			{Name: "B", Rate: 3.5},
		},
	}
	cashbackInput := cashback.BuildCashback()
	if len(cashbackInput.Options) != 2 {
		t.Fatalf("Expected 2 cashback options, got %d", len(cashbackInput.Options))
	}
	if cashbackInput.Options[0].Cashback.String() != "6000" {
		t.Errorf("Expected cashback 6000, got %s", cashbackInput.Options[0].Cashback)
	}

	rentVsBuy := RentVsBuyConfig{
		PropertyPrice: 350000,
		Deposit:       35000,
		MortgageRate:  3.8,
		TermMonths:    360,
		MonthlyRent:   1800,
	}
	rentVsBuyInput := rentVsBuy.BuildRentVsBuy()
	if rentVsBuyInput.PropertyPrice.String() != "350000" {
		t.Errorf("Expected property price 350000, got %s", rentVsBuyInput.PropertyPrice)
	}
}
