package validation

import (
	"strings"
	"testing"
)

func TestCoverageWarning(t *testing.T) {
	tests := []struct {
		name       string
		periods    []PeriodInfo
		termMonths int
		wantEmpty  bool
	}{
		{
			name:       "Full coverage",
			periods:    []PeriodInfo{{ID: "a", DurationMonths: 120}, {ID: "b", DurationMonths: 240}},
			termMonths: 360,
			wantEmpty:  true,
		},
		{
			name:       "Open-ended final period",
			periods:    []PeriodInfo{{ID: "a", DurationMonths: 48}, {ID: "b", DurationMonths: 0}},
			termMonths: 360,
			wantEmpty:  true,
		},
		{
			name:       "Shortfall",
			periods:    []PeriodInfo{{ID: "a", DurationMonths: 48}},
			termMonths: 360,
			wantEmpty:  false,
		},
		{
			name:       "No periods",
			periods:    nil,
			termMonths: 360,
			wantEmpty:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warning := CoverageWarning(tt.periods, tt.termMonths)
			if tt.wantEmpty && warning != "" {
				t.Errorf("CoverageWarning() = %q, expected no warning", warning)
			}
			if !tt.wantEmpty && warning == "" {
				t.Errorf("CoverageWarning() expected a warning but got none")
			}
		})
	}
}

func TestPeriodSpans(t *testing.T) {
	spans := PeriodSpans([]PeriodInfo{
		{ID: "intro", DurationMonths: 48},
		{ID: "mid", DurationMonths: 24},
		{ID: "rest", DurationMonths: 0},
	}, 360)

	if got := spans["intro"]; got != [2]int{1, 48} {
		t.Errorf("intro span = %v, expected [1 48]", got)
	}
	if got := spans["mid"]; got != [2]int{49, 72} {
		t.Errorf("mid span = %v, expected [49 72]", got)
	}
	if got := spans["rest"]; got != [2]int{73, 360} {
		t.Errorf("rest span = %v, expected [73 360]", got)
	}
}

func TestOverpaymentSpanWarnings(t *testing.T) {
	spans := PeriodSpans([]PeriodInfo{
		{ID: "intro", DurationMonths: 48},
		{ID: "rest", DurationMonths: 0},
	}, 360)

	warnings := OverpaymentSpanWarnings([]OverpaymentInfo{
		{ID: "ok", RatePeriodID: "intro", StartMonth: 12},
		{ID: "late", RatePeriodID: "intro", StartMonth: 60},
		{ID: "orphan", RatePeriodID: "gone", StartMonth: 1},
	}, spans)

	if len(warnings) != 2 {
		t.Fatalf("Expected 2 warnings, got %d: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "late") || !strings.Contains(warnings[0], "outside rate period") {
		t.Errorf("Unexpected first warning: %q", warnings[0])
	}
	if !strings.Contains(warnings[1], "orphan") || !strings.Contains(warnings[1], "not declared") {
		t.Errorf("Unexpected second warning: %q", warnings[1])
	}
}
