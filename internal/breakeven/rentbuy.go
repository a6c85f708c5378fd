package breakeven

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/annuity"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/constants"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/money"
)

// RentVsBuyInput describes the buy path (mortgage on the property) and the
// rent path (renting while investing the deposit and any monthly surplus).
type RentVsBuyInput struct {
	PropertyPrice decimal.Decimal `json:"propertyPrice"`
	Deposit       decimal.Decimal `json:"deposit"`
	MortgageRate  float64         `json:"mortgageRate"`
	TermMonths    int             `json:"termMonths"`
	UpfrontCosts  decimal.Decimal `json:"upfrontCosts"` // stamp duty, legal, valuation

	MonthlyRent       decimal.Decimal `json:"monthlyRent"`
	RentInflationRate float64         `json:"rentInflationRate"` // annual %

	HomeAppreciationRate  float64         `json:"homeAppreciationRate"`  // annual %
	InvestmentReturnRate  float64         `json:"investmentReturnRate"`  // annual %, renter's opportunity rate
	MonthlyOwnershipCosts decimal.Decimal `json:"monthlyOwnershipCosts"` // insurance, maintenance, charges
	SellingCostsRate      float64         `json:"sellingCostsRate"`      // % of sale price

	HorizonMonths int `json:"horizonMonths"` // 0 defaults to the term
}

// RentVsBuyMonth is one row of the parallel owner/renter timeline.
type RentVsBuyMonth struct {
	Month                   int             `json:"month"`
	HomeValue               decimal.Decimal `json:"homeValue"`
	MortgageBalance         decimal.Decimal `json:"mortgageBalance"`
	Equity                  decimal.Decimal `json:"equity"`
	SaleProceeds            decimal.Decimal `json:"saleProceeds"`
	RenterFund              decimal.Decimal `json:"renterFund"`
	CumulativeRent          decimal.Decimal `json:"cumulativeRent"`
	CumulativeOwnerCosts    decimal.Decimal `json:"cumulativeOwnerCosts"`
	OwnerMinusRenterNetWorth decimal.Decimal `json:"ownerMinusRenterNetWorth"`
}

// Milestone is one of the three independent rent-vs-buy crossover points.
// Month is nil when the milestone is never reached within the horizon.
type Milestone struct {
	Month       *int   `json:"month"`
	Description string `json:"description"`
}

// RentVsBuyResult carries the timeline and the three milestones. The
// milestones are independent and not guaranteed to coincide; equity recovery
// ignores the time value of money and so lands no later than the net-worth
// breakeven.
type RentVsBuyResult struct {
	MonthlyPayment    decimal.Decimal  `json:"monthlyPayment"`
	Monthly           []RentVsBuyMonth `json:"monthly"`
	Yearly            []RentVsBuyMonth `json:"yearly"`
	NetWorthBreakeven Milestone        `json:"netWorthBreakeven"`
	SaleBreakeven     Milestone        `json:"saleBreakeven"`
	EquityRecovery    Milestone        `json:"equityRecovery"`
}

// CompareRentVsBuy builds the owner and renter timelines month by month and
// locates the three milestones as stable crossovers.
func CompareRentVsBuy(logger *zap.Logger, in RentVsBuyInput) (*RentVsBuyResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if in.PropertyPrice.Sign() <= 0 {
		return nil, fmt.Errorf("property price must be positive, got %s", in.PropertyPrice.String())
	}
	if in.Deposit.Sign() < 0 || in.Deposit.GreaterThanOrEqual(in.PropertyPrice) {
		return nil, fmt.Errorf("deposit %s must be non-negative and below the property price", in.Deposit.String())
	}
	if in.TermMonths <= 0 {
		return nil, fmt.Errorf("mortgage term must be positive, got %d months", in.TermMonths)
	}
	if in.MonthlyRent.Sign() <= 0 {
		return nil, fmt.Errorf("monthly rent must be positive, got %s", in.MonthlyRent.String())
	}

	horizon := in.HorizonMonths
	if horizon <= 0 {
		horizon = in.TermMonths
	}

	mortgage := in.PropertyPrice.Sub(in.Deposit)
	payment := annuity.MonthlyPayment(mortgage, in.MortgageRate, in.TermMonths)
	upfrontCash := in.Deposit.Add(in.UpfrontCosts)

	appreciation := monthlyGrowthFactor(in.HomeAppreciationRate)
	investment := monthlyGrowthFactor(in.InvestmentReturnRate)
	rentInflation := decimal.NewFromFloat(1).Add(
		decimal.NewFromFloat(in.RentInflationRate).Div(decimal.NewFromInt(constants.PercentageMultiplier)))
	sellFraction := decimal.NewFromFloat(1).Sub(
		decimal.NewFromFloat(in.SellingCostsRate).Div(decimal.NewFromInt(constants.PercentageMultiplier)))

	result := &RentVsBuyResult{
		MonthlyPayment: payment,
		Monthly:        make([]RentVsBuyMonth, 0, horizon),
	}

	homeValue := in.PropertyPrice
	balance := mortgage
	// The renter starts with the cash the buyer sank into the purchase and
	// invests the monthly cash-flow difference between owning and renting.
	renterFund := upfrontCash
	rent := in.MonthlyRent
	cumRent := decimal.Zero
	cumOwner := decimal.Zero

	for month := 1; month <= horizon; month++ {
		homeValue = money.Round(homeValue.Mul(appreciation))
		renterFund = money.Round(renterFund.Mul(investment))

		interest := annuity.InterestPortion(balance, in.MortgageRate)
		scheduled := payment
		if balance.Sign() == 0 {
			scheduled = decimal.Zero
		}
		balance = amortizeStep(balance, scheduled, interest)

		ownerOutlay := scheduled.Add(in.MonthlyOwnershipCosts)
		renterFund = money.Round(renterFund.Add(ownerOutlay).Sub(rent))
		cumRent = cumRent.Add(rent)
		cumOwner = cumOwner.Add(ownerOutlay)

		equity := money.Round(homeValue.Sub(balance))
		saleProceeds := money.Round(homeValue.Mul(sellFraction).Sub(balance))

		result.Monthly = append(result.Monthly, RentVsBuyMonth{
			Month:                   month,
			HomeValue:               homeValue,
			MortgageBalance:         balance,
			Equity:                  equity,
			SaleProceeds:            saleProceeds,
			RenterFund:              renterFund,
			CumulativeRent:          cumRent,
			CumulativeOwnerCosts:    cumOwner,
			OwnerMinusRenterNetWorth: money.Round(saleProceeds.Sub(renterFund)),
		})
		if month < horizon {
			result.Yearly = appendYearly(result.Yearly, result.Monthly[month-1])
		}

		if month%constants.MonthsPerYear == 0 {
			rent = money.Round(rent.Mul(rentInflation))
		}
	}
	// The horizon row always closes the yearly series.
	result.Yearly = append(result.Yearly, result.Monthly[horizon-1])

	rows := result.Monthly
	netWorth := firstStableCrossover(horizon, func(m int) bool {
		return rows[m-1].SaleProceeds.GreaterThanOrEqual(rows[m-1].RenterFund)
	})
	sale := firstStableCrossover(horizon, func(m int) bool {
		return rows[m-1].SaleProceeds.GreaterThanOrEqual(upfrontCash)
	})
	equity := firstStableCrossover(horizon, func(m int) bool {
		return rows[m-1].Equity.GreaterThanOrEqual(upfrontCash)
	})

	result.NetWorthBreakeven = milestone(netWorth,
		"buying overtakes renting on net worth in month %d, accounting for the invested deposit",
		"renting stays ahead on net worth for the whole horizon")
	result.SaleBreakeven = milestone(sale,
		"selling in month %d would first recover the deposit and upfront costs",
		"a sale never recovers the deposit and upfront costs within the horizon")
	result.EquityRecovery = milestone(equity,
		"simple equity first exceeds the deposit and upfront costs in month %d",
		"equity never exceeds the deposit and upfront costs within the horizon")

	return result, nil
}

// appendYearly records every 12th month into the yearly series.
func appendYearly(yearly []RentVsBuyMonth, row RentVsBuyMonth) []RentVsBuyMonth {
	if row.Month%constants.MonthsPerYear == 0 {
		return append(yearly, row)
	}
	return yearly
}

func milestone(month *int, reachedFormat, missed string) Milestone {
	if month == nil {
		return Milestone{Description: missed}
	}
	return Milestone{Month: month, Description: fmt.Sprintf(reachedFormat, *month)}
}

// monthlyGrowthFactor converts an annual percentage growth rate into a
// monthly compounding factor.
func monthlyGrowthFactor(annualRate float64) decimal.Decimal {
	return decimal.NewFromFloat(1).Add(annuity.MonthlyRate(annualRate))
}
