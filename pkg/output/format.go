// Package output provides utilities for formatting and displaying simulation results.
package output

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/barreeeiroo/MortgageLab-IE-sub008/internal/breakeven"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/internal/schedule"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/pkg/datetime"
)

// monthLabel renders a ledger month as a calendar label when a start date is
// configured, otherwise as the plain month index.
func monthLabel(startDate string, month int) string {
	if startDate == "" {
		return strconv.Itoa(month)
	}
	label, err := datetime.MonthLabel(startDate, month)
	if err != nil {
		return strconv.Itoa(month)
	}
	return label
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(result *schedule.Result, report schedule.CompletenessReport, startDate string) {
	p := message.NewPrinter(language.English)

	fmt.Printf("--- Amortization schedule ---\n")
	fmt.Printf("Month   | Opening      | Payment    | Interest   | Principal  | Overpaid   | Closing      | Rate\n")
	fmt.Printf("_____   | _______      | _______    | ________   | _________  | ________   | _______      | ____\n")
	for _, row := range result.Months {
		opening, _ := row.OpeningBalance.Float64()
		payment, _ := row.ScheduledPayment.Float64()
		interest, _ := row.Interest.Float64()
		principal, _ := row.Principal.Float64()
		overpaid, _ := row.Overpayment.Float64()
		closing, _ := row.ClosingBalance.Float64()
		_, _ = p.Printf("%-7s | %12.2f | %10.2f | %10.2f | %10.2f | %10.2f | %12.2f | %.2f%%\n",
			monthLabel(startDate, row.Month), opening, payment, interest, principal, overpaid, closing, row.Rate)
	}

	if len(result.Warnings) > 0 {
		fmt.Printf("\n--- Warnings ---\n")
		for _, warning := range result.Warnings {
			fmt.Printf("[%s] month %s: %s\n", warning.Severity, monthLabel(startDate, warning.Month), warning.Message)
		}
	}

	fmt.Printf("\n--- Completeness ---\n")
	if report.IsComplete {
		fmt.Printf("Schedule is complete: %d months covered\n", report.CoveredMonths)
	} else {
		remaining, _ := report.RemainingBalance.Float64()
		_, _ = p.Printf("Schedule is incomplete: %d months covered, %d missing, %.2f outstanding\n",
			report.CoveredMonths, report.MissingMonths, remaining)
	}
}

// CsvFormat outputs the ledger in comma-separated value format.
func CsvFormat(result *schedule.Result, startDate string) {
	fmt.Printf(`"month","openingBalance","scheduledPayment","interest","principal","overpayment","closingBalance","rate","ratePeriodId"`)
	fmt.Printf("\n")
	for _, row := range result.Months {
		fmt.Printf(`"%s","%s","%s","%s","%s","%s","%s","%.2f","%s"`,
			monthLabel(startDate, row.Month),
			row.OpeningBalance.StringFixed(2),
			row.ScheduledPayment.StringFixed(2),
			row.Interest.StringFixed(2),
			row.Principal.StringFixed(2),
			row.Overpayment.StringFixed(2),
			row.ClosingBalance.StringFixed(2),
			row.Rate,
			row.RatePeriodID)
		fmt.Printf("\n")
	}
}

// PrettyRemortgage outputs a remortgage comparison summary.
func PrettyRemortgage(result *breakeven.RemortgageResult) {
	p := message.NewPrinter(language.English)

	fmt.Printf("--- Remortgage comparison ---\n")
	current, _ := result.CurrentPayment.Float64()
	proposed, _ := result.NewPayment.Float64()
	savings, _ := result.MonthlySavings.Float64()
	netCost, _ := result.NetSwitchingCost.Float64()
	_, _ = p.Printf("Current payment: %.2f | New payment: %.2f | Monthly savings: %.2f\n", current, proposed, savings)
	_, _ = p.Printf("Net switching cost: %.2f\n", netCost)
	fmt.Printf("%s\n", result.Description)
}

// PrettyRentVsBuy outputs a rent-vs-buy comparison summary with its yearly
// timeline.
func PrettyRentVsBuy(result *breakeven.RentVsBuyResult) {
	p := message.NewPrinter(language.English)

	fmt.Printf("--- Rent vs buy comparison ---\n")
	payment, _ := result.MonthlyPayment.Float64()
	_, _ = p.Printf("Monthly mortgage payment: %.2f\n", payment)
	fmt.Printf("%s\n", result.NetWorthBreakeven.Description)
	fmt.Printf("%s\n", result.SaleBreakeven.Description)
	fmt.Printf("%s\n", result.EquityRecovery.Description)

	fmt.Printf("\nMonth | Home value   | Sale proceeds | Renter fund  | Owner - renter\n")
	fmt.Printf("_____ | __________   | _____________ | ___________  | ______________\n")
	for _, row := range result.Yearly {
		homeValue, _ := row.HomeValue.Float64()
		saleProceeds, _ := row.SaleProceeds.Float64()
		renterFund, _ := row.RenterFund.Float64()
		diff, _ := row.OwnerMinusRenterNetWorth.Float64()
		_, _ = p.Printf("%5d | %12.2f | %13.2f | %12.2f | %14.2f\n",
			row.Month, homeValue, saleProceeds, renterFund, diff)
	}
}

// PrettyCashback outputs a cashback comparison summary.
func PrettyCashback(result *breakeven.CashbackResult) {
	p := message.NewPrinter(language.English)

	fmt.Printf("--- Cashback comparison ---\n")
	fmt.Printf("Option                         | Payment    | Total interest | Net cost\n")
	fmt.Printf("______                         | _______    | ______________ | ________\n")
	for _, option := range result.Options {
		payment, _ := option.MonthlyPayment.Float64()
		totalInterest, _ := option.TotalInterest.Float64()
		netCost, _ := option.NetCost.Float64()
		_, _ = p.Printf("%-30s | %10.2f | %14.2f | %12.2f\n", option.Name, payment, totalInterest, netCost)
	}

	savings, _ := result.SavingsVsWorst.Float64()
	_, _ = p.Printf("\nBest: %s | Worst: %s | Savings vs worst: %.2f\n", result.BestOption, result.WorstOption, savings)
	for _, pair := range result.Pairwise {
		fmt.Printf("%s\n", pair.Description)
	}
}
