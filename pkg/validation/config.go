// Package validation provides configuration validation utilities.
package validation

import "fmt"

// PeriodInfo is the slice of a rate period the cross-field checks need.
type PeriodInfo struct {
	ID             string
	DurationMonths int // 0 = open-ended
}

// OverpaymentInfo is the slice of an overpayment the cross-field checks need.
type OverpaymentInfo struct {
	ID           string
	RatePeriodID string
	StartMonth   int
}

// CoverageWarning reports a warning when a closed rate-period stack covers
// fewer months than the mortgage term. An open-ended final period always
// covers the full term, so it never warns.
func CoverageWarning(periods []PeriodInfo, termMonths int) string {
	coverage := 0
	for _, period := range periods {
		if period.DurationMonths == 0 {
			return ""
		}
		coverage += period.DurationMonths
	}
	if coverage >= termMonths {
		return ""
	}
	return fmt.Sprintf(
		"rate periods cover %d of %d months; the ledger will stop early unless another period is added",
		coverage, termMonths)
}

// PeriodSpans derives the absolute month span of each named period from the
// ordered stack, with the first period starting at month 1. Open-ended periods
// run to the end of the term.
func PeriodSpans(periods []PeriodInfo, termMonths int) map[string][2]int {
	spans := make(map[string][2]int, len(periods))
	start := 1
	for _, period := range periods {
		end := termMonths
		if period.DurationMonths > 0 {
			end = start + period.DurationMonths - 1
		}
		if period.ID != "" {
			spans[period.ID] = [2]int{start, end}
		}
		start += period.DurationMonths
	}
	return spans
}

// OverpaymentSpanWarnings flags overpayments linked to undeclared periods and
// overpayments whose start month falls outside their linked period's span.
// Either way the overpayment would silently never apply.
func OverpaymentSpanWarnings(overpayments []OverpaymentInfo, spans map[string][2]int) []string {
	var warnings []string
	for _, op := range overpayments {
		span, ok := spans[op.RatePeriodID]
		if !ok {
			warnings = append(warnings, fmt.Sprintf(
				"overpayment %s references rate period %q which is not declared", op.ID, op.RatePeriodID))
			continue
		}
		if op.StartMonth < span[0] || op.StartMonth > span[1] {
			warnings = append(warnings, fmt.Sprintf(
				"overpayment %s starts in month %d, outside rate period %s (months %d-%d); it will never apply",
				op.ID, op.StartMonth, op.RatePeriodID, span[0], span[1]))
		}
	}
	return warnings
}
