package output

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/barreeeiroo/MortgageLab-IE-sub008/internal/breakeven"
	"github.com/barreeeiroo/MortgageLab-IE-sub008/internal/schedule"
)

// captureOutput redirects stdout while fn runs and returns what was printed.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error = %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading captured output: %v", err)
	}
	return string(data)
}

func sampleResult() *schedule.Result {
	return &schedule.Result{
		Months: []schedule.Month{
			{
				Month:            1,
				OpeningBalance:   decimal.NewFromInt(300000),
				ScheduledPayment: decimal.NewFromFloat(1347.13),
				Interest:         decimal.NewFromInt(875),
				Principal:        decimal.NewFromFloat(472.13),
				Overpayment:      decimal.NewFromInt(200),
				ClosingBalance:   decimal.NewFromFloat(299327.87),
				Rate:             3.5,
				RatePeriodID:     "intro",
			},
		},
		Warnings: []schedule.Warning{
			{
				Type:     schedule.WarningAllowanceExceeded,
				Month:    1,
				Severity: schedule.SeverityWarning,
				Message:  "overpayment exceeds the free allowance",
			},
		},
	}
}

func TestPrettyFormat(t *testing.T) {
	report := schedule.CompletenessReport{
		IsComplete:    false,
		CoveredMonths: 1,
		MissingMonths: 359,
		RemainingBalance: decimal.NewFromFloat(
			299327.87),
	}

	got := captureOutput(t, func() {
		PrettyFormat(sampleResult(), report, "")
	})

	for _, fragment := range []string{
		"Amortization schedule",
		"3.50%",
		"overpayment exceeds the free allowance",
		"1 months covered, 359 missing",
	} {
		if !strings.Contains(got, fragment) {
			t.Errorf("PrettyFormat() output missing %q:\n%s", fragment, got)
		}
	}
}

func TestPrettyFormatCalendarLabels(t *testing.T) {
	report := schedule.CompletenessReport{IsComplete: true, CoveredMonths: 1}

	got := captureOutput(t, func() {
		PrettyFormat(sampleResult(), report, "2026-01")
	})

	if !strings.Contains(got, "2026-01") {
		t.Errorf("PrettyFormat() with a start date should label months with calendar dates:\n%s", got)
	}
}

func TestCsvFormat(t *testing.T) {
	got := captureOutput(t, func() {
		CsvFormat(sampleResult(), "2026-01")
	})

	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected header plus 1 row, got %d lines:\n%s", len(lines), got)
	}
	if !strings.HasPrefix(lines[0], `"month","openingBalance"`) {
		t.Errorf("Unexpected CSV header: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"2026-01"`) || !strings.Contains(lines[1], `"299327.87"`) {
		t.Errorf("Unexpected CSV row: %s", lines[1])
	}
}

func TestPrettyRemortgage(t *testing.T) {
	result, err := breakeven.CompareRemortgage(nil, breakeven.RemortgageInput{
		Balance:             decimal.NewFromInt(250000),
		CurrentRate:         4.5,
		NewRate:             3.6,
		RemainingTermMonths: 300,
		SwitchingCosts:      decimal.NewFromInt(1500),
	})
	if err != nil {
		t.Fatalf("CompareRemortgage() error = %v", err)
	}

	got := captureOutput(t, func() {
		PrettyRemortgage(result)
	})

	if !strings.Contains(got, "Remortgage comparison") || !strings.Contains(got, "Monthly savings") {
		t.Errorf("Unexpected remortgage output:\n%s", got)
	}
}

func TestPrettyCashback(t *testing.T) {
	result, err := breakeven.CompareCashback(nil, breakeven.CashbackInput{
		MortgageAmount: decimal.NewFromInt(300000),
		TermMonths:     360,
		Options: []breakeven.CashbackOption{
			{Name: "Cashback offer", Rate: 4.0, Cashback: decimal.NewFromInt(6000)},
			{Name: "Low rate offer", Rate: 3.5},
		},
	})
	if err != nil {
		t.Fatalf("CompareCashback() error = %v", err)
	}

	got := captureOutput(t, func() {
		PrettyCashback(result)
	})

	for _, fragment := range []string{"Cashback comparison", "Cashback offer", "Low rate offer", "Best: "} {
		if !strings.Contains(got, fragment) {
			t.Errorf("PrettyCashback() output missing %q:\n%s", fragment, got)
		}
	}
}
