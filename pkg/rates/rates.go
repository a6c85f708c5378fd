// Package rates resolves ordered rate-period stacks against a rate catalogue.
//
// A rate period never stores its absolute position; start months are derived
// once per run by folding the stack left to right over the period durations.
package rates

import "fmt"

// Type classifies a catalogue rate.
type Type string

const (
	// TypeFixed is a rate guaranteed for a stated term.
	TypeFixed Type = "fixed"

	// TypeVariable is a rate the lender may change at its discretion. Within a
	// simulation it is treated as constant unless a new period is declared.
	TypeVariable Type = "variable"
)

// Rate is an immutable catalogue entry. The engine only reads its numeric rate
// value and type; eligibility constraints live upstream.
type Rate struct {
	ID                  string
	Lender              string
	Rate                float64 // annual percentage, literal value (3.45 = 3.45%)
	Type                Type
	FixedTermYears      int    // fixed rates only
	OverpaymentPolicyID string // optional lender overpayment policy
}

// Period is one segment of the user's rate-period stack.
type Period struct {
	ID             string
	Lender         string
	RateID         string
	Custom         bool // references the custom rate set instead of the catalogue
	DurationMonths int  // 0 means the period runs until the mortgage ends
}

// Resolved is a period with its concrete rate value and derived start month.
type Resolved struct {
	PeriodID            string
	Rate                float64
	Type                Type
	StartMonth          int
	DurationMonths      int
	OverpaymentPolicyID string
}

// Catalogue partitions the standard lender rates from user-defined custom
// rates. Standard rates are keyed by lender and rate id, custom rates by id
// alone.
type Catalogue struct {
	standard map[string]Rate
	custom   map[string]Rate
}

// NewCatalogue builds a catalogue from the standard and custom rate sets.
func NewCatalogue(standard, custom []Rate) *Catalogue {
	cat := &Catalogue{
		standard: make(map[string]Rate, len(standard)),
		custom:   make(map[string]Rate, len(custom)),
	}
	for _, r := range standard {
		cat.standard[standardKey(r.Lender, r.ID)] = r
	}
	for _, r := range custom {
		cat.custom[r.ID] = r
	}
	return cat
}

func standardKey(lender, rateID string) string {
	return lender + "/" + rateID
}

// Lookup finds the rate referenced by a period.
func (c *Catalogue) Lookup(period Period) (Rate, bool) {
	if period.Custom {
		rate, ok := c.custom[period.RateID]
		return rate, ok
	}
	rate, ok := c.standard[standardKey(period.Lender, period.RateID)]
	return rate, ok
}

// Resolve maps an ordered period stack onto concrete rates with absolute start
// months. The first period starts at month 1 and each subsequent start is the
// cumulative sum of prior durations. An unknown rate reference fails the whole
// resolution: skipping a period would silently shift every later start month.
func Resolve(cat *Catalogue, periods []Period) ([]Resolved, error) {
	resolved := make([]Resolved, 0, len(periods))
	start := 1
	for i, period := range periods {
		if period.DurationMonths < 0 {
			return nil, fmt.Errorf("rate period %s has negative duration %d", period.ID, period.DurationMonths)
		}
		if period.DurationMonths == 0 && i != len(periods)-1 {
			return nil, fmt.Errorf("rate period %s is open-ended but is not the final period", period.ID)
		}
		rate, ok := cat.Lookup(period)
		if !ok {
			return nil, fmt.Errorf("rate period %s references unknown rate %s (lender %q, custom=%t)",
				period.ID, period.RateID, period.Lender, period.Custom)
		}
		resolved = append(resolved, Resolved{
			PeriodID:            period.ID,
			Rate:                rate.Rate,
			Type:                rate.Type,
			StartMonth:          start,
			DurationMonths:      period.DurationMonths,
			OverpaymentPolicyID: rate.OverpaymentPolicyID,
		})
		start += period.DurationMonths
	}
	return resolved, nil
}

// Active returns the resolved period whose span contains the given month. The
// final period is open-ended when its duration is zero. The second return is
// false when the stack does not cover the month (a coverage gap).
func Active(resolved []Resolved, month int) (Resolved, bool) {
	for _, r := range resolved {
		if month < r.StartMonth {
			continue
		}
		if r.DurationMonths == 0 || month < r.StartMonth+r.DurationMonths {
			return r, true
		}
	}
	return Resolved{}, false
}

// Coverage returns the number of months covered by the resolved stack, or -1
// when the final period is open-ended.
func Coverage(resolved []Resolved) int {
	if len(resolved) == 0 {
		return 0
	}
	last := resolved[len(resolved)-1]
	if last.DurationMonths == 0 {
		return -1
	}
	return last.StartMonth + last.DurationMonths - 1
}
