package overpayment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDueInMonth(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		month  int
		due    bool
	}{
		{
			name:   "One-time at start month",
			config: Config{Frequency: FrequencyOnce, StartMonth: 6},
			month:  6,
			due:    true,
		},
		{
			name:   "One-time after start month",
			config: Config{Frequency: FrequencyOnce, StartMonth: 6},
			month:  7,
			due:    false,
		},
		{
			name:   "Monthly within span",
			config: Config{Frequency: FrequencyMonthly, StartMonth: 2, EndMonth: 12},
			month:  9,
			due:    true,
		},
		{
			name:   "Monthly before start",
			config: Config{Frequency: FrequencyMonthly, StartMonth: 2, EndMonth: 12},
			month:  1,
			due:    false,
		},
		{
			name:   "Monthly at inclusive end month",
			config: Config{Frequency: FrequencyMonthly, StartMonth: 2, EndMonth: 12},
			month:  12,
			due:    true,
		},
		{
			name:   "Monthly past end month",
			config: Config{Frequency: FrequencyMonthly, StartMonth: 2, EndMonth: 12},
			month:  13,
			due:    false,
		},
		{
			name:   "Quarterly on occurrence",
			config: Config{Frequency: FrequencyQuarterly, StartMonth: 1},
			month:  7,
			due:    true,
		},
		{
			name:   "Quarterly off occurrence",
			config: Config{Frequency: FrequencyQuarterly, StartMonth: 1},
			month:  8,
			due:    false,
		},
		{
			name:   "Yearly on anniversary",
			config: Config{Frequency: FrequencyYearly, StartMonth: 12},
			month:  36,
			due:    true,
		},
		{
			name:   "Open-ended monthly keeps firing",
			config: Config{Frequency: FrequencyMonthly, StartMonth: 1},
			month:  240,
			due:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.due, tt.config.DueInMonth(tt.month))
		})
	}
}

func TestConfigValidate(t *testing.T) {
	valid := Config{
		ID:           "op1",
		RatePeriodID: "p1",
		Frequency:    FrequencyMonthly,
		Amount:       decimal.NewFromInt(200),
		StartMonth:   1,
		EndMonth:     48,
		Effect:       EffectReduceTerm,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c Config) Config
	}{
		{"Invalid frequency", func(c Config) Config { c.Frequency = "weekly"; return c }},
		{"Invalid effect", func(c Config) Config { c.Effect = "reduce_interest"; return c }},
		{"Non-positive amount", func(c Config) Config { c.Amount = decimal.Zero; return c }},
		{"Start month below 1", func(c Config) Config { c.StartMonth = 0; return c }},
		{"End before start", func(c Config) Config { c.EndMonth = 1; c.StartMonth = 10; return c }},
		{"Missing rate period link", func(c Config) Config { c.RatePeriodID = ""; return c }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.mutate(valid).Validate())
		})
	}
}
