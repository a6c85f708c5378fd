package breakeven

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/annuity"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/money"
)

// CashbackOption is one named rate + cashback combination.
type CashbackOption struct {
	Name     string          `json:"name"`
	Rate     float64         `json:"rate"`
	Cashback decimal.Decimal `json:"cashback"`
}

// CashbackInput compares two or more cashback offers on the same mortgage.
type CashbackInput struct {
	MortgageAmount decimal.Decimal  `json:"mortgageAmount"`
	TermMonths     int              `json:"termMonths"`
	HorizonMonths  int              `json:"horizonMonths"` // 0 defaults to the term
	Options        []CashbackOption `json:"options"`
}

// CashbackOptionResult carries the per-option computed fields. NetCost is the
// cumulative interest at the horizon less the cashback received up front.
type CashbackOptionResult struct {
	Name           string          `json:"name"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
	NetCost        decimal.Decimal `json:"netCost"`
}

// PairwiseBreakeven reports when the option that is cheaper at the horizon
// first becomes, and stays, the cheaper of the pair. A nil month means the
// ordering never stabilizes in its favor before the horizon.
type PairwiseBreakeven struct {
	CheaperOption  string `json:"cheaperOption"`
	OtherOption    string `json:"otherOption"`
	BreakevenMonth *int   `json:"breakevenMonth"`
	Description    string `json:"description"`
}

// CashbackResult compares all options plus every pair of them.
type CashbackResult struct {
	Options        []CashbackOptionResult `json:"options"`
	Pairwise       []PairwiseBreakeven    `json:"pairwise"`
	BestOption     string                 `json:"bestOption"`
	WorstOption    string                 `json:"worstOption"`
	SavingsVsWorst decimal.Decimal        `json:"savingsVsWorst"`
}

// CompareCashback builds a net-cost timeline per option (cumulative interest
// minus the up-front cashback) and computes C(n,2) pairwise stable breakevens.
func CompareCashback(logger *zap.Logger, in CashbackInput) (*CashbackResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if in.MortgageAmount.Sign() <= 0 {
		return nil, fmt.Errorf("mortgage amount must be positive, got %s", in.MortgageAmount.String())
	}
	if in.TermMonths <= 0 {
		return nil, fmt.Errorf("mortgage term must be positive, got %d months", in.TermMonths)
	}
	if len(in.Options) < 2 {
		return nil, fmt.Errorf("cashback comparison needs at least 2 options, got %d", len(in.Options))
	}

	horizon := in.HorizonMonths
	if horizon <= 0 || horizon > in.TermMonths {
		horizon = in.TermMonths
	}

	result := &CashbackResult{
		Options: make([]CashbackOptionResult, len(in.Options)),
	}

	// netCosts[i][m-1] is option i's cumulative net cost at month m.
	netCosts := make([][]decimal.Decimal, len(in.Options))
	for i, opt := range in.Options {
		payment := annuity.MonthlyPayment(in.MortgageAmount, opt.Rate, in.TermMonths)
		balance := in.MortgageAmount
		cumInterest := decimal.Zero
		timeline := make([]decimal.Decimal, horizon)
		for month := 1; month <= horizon; month++ {
			interest := annuity.InterestPortion(balance, opt.Rate)
			cumInterest = cumInterest.Add(interest)
			balance = amortizeStep(balance, payment, interest)
			timeline[month-1] = cumInterest.Sub(opt.Cashback)
		}
		netCosts[i] = timeline
		result.Options[i] = CashbackOptionResult{
			Name:           opt.Name,
			MonthlyPayment: payment,
			TotalInterest:  cumInterest,
			NetCost:        money.Round(cumInterest.Sub(opt.Cashback)),
		}
	}

	best, worst := 0, 0
	for i, opt := range result.Options {
		if opt.NetCost.LessThan(result.Options[best].NetCost) {
			best = i
		}
		if opt.NetCost.GreaterThan(result.Options[worst].NetCost) {
			worst = i
		}
	}
	result.BestOption = result.Options[best].Name
	result.WorstOption = result.Options[worst].Name
	result.SavingsVsWorst = money.Round(result.Options[worst].NetCost.Sub(result.Options[best].NetCost))

	for i := 0; i < len(in.Options); i++ {
		for j := i + 1; j < len(in.Options); j++ {
			result.Pairwise = append(result.Pairwise, pairBreakeven(
				result.Options[i], netCosts[i],
				result.Options[j], netCosts[j],
				horizon,
			))
		}
	}

	return result, nil
}

// pairBreakeven orders a pair by net cost at the horizon and finds the first
// stable month at which the cheaper option's cumulative cost is at or below
// the other's.
func pairBreakeven(a CashbackOptionResult, aCosts []decimal.Decimal, b CashbackOptionResult, bCosts []decimal.Decimal, horizon int) PairwiseBreakeven {
	cheaper, other := a, b
	cheaperCosts, otherCosts := aCosts, bCosts
	if b.NetCost.LessThan(a.NetCost) {
		cheaper, other = b, a
		cheaperCosts, otherCosts = bCosts, aCosts
	}

	month := firstStableCrossover(horizon, func(m int) bool {
		return cheaperCosts[m-1].LessThanOrEqual(otherCosts[m-1])
	})

	entry := PairwiseBreakeven{
		CheaperOption:  cheaper.Name,
		OtherOption:    other.Name,
		BreakevenMonth: month,
	}
	if month == nil {
		entry.Description = fmt.Sprintf("%s never stays cheaper than %s before the horizon", cheaper.Name, other.Name)
	} else {
		entry.Description = fmt.Sprintf("%s becomes and stays cheaper than %s from month %d", cheaper.Name, other.Name, *month)
	}
	return entry
}
