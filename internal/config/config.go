// Package config defines the scenario configuration structures and includes
// functions for loading, validating, and converting the configuration into
// engine input types.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Configuration holds one full mortgage scenario: the mortgage itself, the
// rate catalogue and period stack, overpayments and lender policies, an
// optional self-build plan, and optional breakeven comparisons. All numeric
// fields are plain primitives; conversion to decimal happens when the
// configuration is turned into engine input.
type Configuration struct {
	Mortgage            Mortgage            `json:"mortgage" yaml:"mortgage"`
	Rates               []Rate              `json:"rates,omitempty" yaml:"rates,omitempty"`
	CustomRates         []Rate              `json:"customRates,omitempty" yaml:"customRates,omitempty"`
	RatePeriods         []RatePeriod        `json:"ratePeriods" yaml:"ratePeriods"`
	OverpaymentPolicies []OverpaymentPolicy `json:"overpaymentPolicies,omitempty" yaml:"overpaymentPolicies,omitempty"`
	Overpayments        []Overpayment       `json:"overpayments,omitempty" yaml:"overpayments,omitempty"`
	SelfBuild           *SelfBuild          `json:"selfBuild,omitempty" yaml:"selfBuild,omitempty"`
	Breakeven           *Breakeven          `json:"breakeven,omitempty" yaml:"breakeven,omitempty"`
	Logging             LoggingConfig       `json:"logging,omitempty" yaml:"logging,omitempty"`
	Output              OutputConfig        `json:"output,omitempty" yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `json:"level,omitempty" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `json:"format,omitempty" yaml:"format,omitempty"`         // json, console
	OutputFile string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `json:"format,omitempty" yaml:"format,omitempty"` // pretty, csv
}

// Mortgage describes the loan being simulated.
type Mortgage struct {
	Amount        float64 `json:"amount" yaml:"amount"`
	TermMonths    int     `json:"termMonths" yaml:"termMonths"`
	PropertyValue float64 `json:"propertyValue,omitempty" yaml:"propertyValue,omitempty"`
	StartDate     string  `json:"startDate,omitempty" yaml:"startDate,omitempty"` // YYYY-MM, labels outputs
	BERRating     string  `json:"berRating,omitempty" yaml:"berRating,omitempty"`
}

// Rate is one catalogue entry, standard or custom. Rate is a pointer so that a
// missing value is distinguishable from an explicit zero.
type Rate struct {
	ID                  string   `json:"id,omitempty" yaml:"id,omitempty"`
	Lender              string   `json:"lender,omitempty" yaml:"lender,omitempty"`
	Rate                *float64 `json:"rate" yaml:"rate"` // annual percentage, 3.45 = 3.45%
	Type                string   `json:"type" yaml:"type"` // fixed, variable
	FixedTermYears      int      `json:"fixedTermYears,omitempty" yaml:"fixedTermYears,omitempty"`
	OverpaymentPolicyID string   `json:"overpaymentPolicyId,omitempty" yaml:"overpaymentPolicyId,omitempty"`
}

// RatePeriod is one segment of the ordered rate-period stack.
type RatePeriod struct {
	ID             string `json:"id,omitempty" yaml:"id,omitempty"`
	Lender         string `json:"lender,omitempty" yaml:"lender,omitempty"`
	RateID         string `json:"rateId" yaml:"rateId"`
	Custom         bool   `json:"custom,omitempty" yaml:"custom,omitempty"`
	DurationMonths int    `json:"durationMonths" yaml:"durationMonths"` // 0 = until the mortgage ends
}

// OverpaymentPolicy mirrors a lender's published overpayment allowance rules.
type OverpaymentPolicy struct {
	ID                  string   `json:"id" yaml:"id"`
	AllowanceType       string   `json:"allowanceType" yaml:"allowanceType"` // percentage_balance, percentage_payment, flat
	AllowanceValue      *float64 `json:"allowanceValue" yaml:"allowanceValue"`
	MinChargeableAmount float64  `json:"minChargeableAmount,omitempty" yaml:"minChargeableAmount,omitempty"`
	ChargeCap           float64  `json:"chargeCap,omitempty" yaml:"chargeCap,omitempty"`
	MaxTransactions     int      `json:"maxTransactions,omitempty" yaml:"maxTransactions,omitempty"` // 0 = unlimited
	Window              string   `json:"window,omitempty" yaml:"window,omitempty"`                    // month, quarter, year, fixed
}

// Overpayment is one declared overpayment, linked to exactly one rate period.
type Overpayment struct {
	ID           string  `json:"id,omitempty" yaml:"id,omitempty"`
	RatePeriodID string  `json:"ratePeriodId" yaml:"ratePeriodId"`
	Frequency    string  `json:"frequency" yaml:"frequency"` // once, monthly, quarterly, yearly
	Amount       float64 `json:"amount" yaml:"amount"`
	StartMonth   int     `json:"startMonth" yaml:"startMonth"`
	EndMonth     int     `json:"endMonth,omitempty" yaml:"endMonth,omitempty"` // inclusive, 0 = open-ended
	Effect       string  `json:"effect" yaml:"effect"`                         // reduce_term, reduce_payment
}

// SelfBuild describes a staged drawdown schedule for a self-build mortgage.
type SelfBuild struct {
	Mode               string          `json:"mode" yaml:"mode"` // interest_only, interest_and_capital
	InterestOnlyMonths int             `json:"interestOnlyMonths,omitempty" yaml:"interestOnlyMonths,omitempty"`
	Stages             []DrawdownStage `json:"stages" yaml:"stages"`
}

// DrawdownStage is one scheduled release of self-build funds.
type DrawdownStage struct {
	Month  int     `json:"month" yaml:"month"`
	Amount float64 `json:"amount" yaml:"amount"`
}

// Breakeven requests any of the three comparisons alongside the simulation.
type Breakeven struct {
	RentVsBuy  *RentVsBuyConfig  `json:"rentVsBuy,omitempty" yaml:"rentVsBuy,omitempty"`
	Remortgage *RemortgageConfig `json:"remortgage,omitempty" yaml:"remortgage,omitempty"`
	Cashback   *CashbackConfig   `json:"cashback,omitempty" yaml:"cashback,omitempty"`
}

// RentVsBuyConfig holds the rent-vs-buy comparison inputs. All rates are
// annual percentages.
type RentVsBuyConfig struct {
	PropertyPrice         float64 `json:"propertyPrice" yaml:"propertyPrice"`
	Deposit               float64 `json:"deposit" yaml:"deposit"`
	MortgageRate          float64 `json:"mortgageRate" yaml:"mortgageRate"`
	TermMonths            int     `json:"termMonths" yaml:"termMonths"`
	UpfrontCosts          float64 `json:"upfrontCosts,omitempty" yaml:"upfrontCosts,omitempty"`
	MonthlyRent           float64 `json:"monthlyRent" yaml:"monthlyRent"`
	RentInflationRate     float64 `json:"rentInflationRate,omitempty" yaml:"rentInflationRate,omitempty"`
	HomeAppreciationRate  float64 `json:"homeAppreciationRate,omitempty" yaml:"homeAppreciationRate,omitempty"`
	InvestmentReturnRate  float64 `json:"investmentReturnRate,omitempty" yaml:"investmentReturnRate,omitempty"`
	MonthlyOwnershipCosts float64 `json:"monthlyOwnershipCosts,omitempty" yaml:"monthlyOwnershipCosts,omitempty"`
	SellingCostsRate      float64 `json:"sellingCostsRate,omitempty" yaml:"sellingCostsRate,omitempty"`
	HorizonMonths         int     `json:"horizonMonths,omitempty" yaml:"horizonMonths,omitempty"`
}

// RemortgageConfig holds the remortgage comparison inputs.
type RemortgageConfig struct {
	Balance              float64 `json:"balance" yaml:"balance"`
	CurrentRate          float64 `json:"currentRate" yaml:"currentRate"`
	NewRate              float64 `json:"newRate" yaml:"newRate"`
	RemainingTermMonths  int     `json:"remainingTermMonths" yaml:"remainingTermMonths"`
	SwitchingCosts       float64 `json:"switchingCosts,omitempty" yaml:"switchingCosts,omitempty"`
	Cashback             float64 `json:"cashback,omitempty" yaml:"cashback,omitempty"`
	EarlyRepaymentCharge float64 `json:"earlyRepaymentCharge,omitempty" yaml:"earlyRepaymentCharge,omitempty"`
}

// CashbackConfig holds the cashback comparison inputs.
type CashbackConfig struct {
	MortgageAmount float64          `json:"mortgageAmount" yaml:"mortgageAmount"`
	TermMonths     int              `json:"termMonths" yaml:"termMonths"`
	HorizonMonths  int              `json:"horizonMonths,omitempty" yaml:"horizonMonths,omitempty"`
	Options        []CashbackOption `json:"options" yaml:"options"`
}

// CashbackOption is one named rate + cashback combination.
type CashbackOption struct {
	Name     string  `json:"name" yaml:"name"`
	Rate     float64 `json:"rate" yaml:"rate"`
	Cashback float64 `json:"cashback,omitempty" yaml:"cashback,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}
