package schedule

// WarningType tags a simulation warning.
type WarningType string

const (
	// WarningAllowanceExceeded marks an overpayment exceeding the lender's
	// free allowance for the period.
	WarningAllowanceExceeded WarningType = "allowance_exceeded"

	// WarningEarlyRedemption marks the mortgage being fully repaid before the
	// declared term ends.
	WarningEarlyRedemption WarningType = "early_redemption"

	// WarningTransactionLimitExceeded marks the policy's transaction count for
	// the active window being surpassed.
	WarningTransactionLimitExceeded WarningType = "transaction_limit_exceeded"
)

// Severity grades a warning.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Warning is an advisory finding attached to a simulation result. Warnings
// never abort a run; they exist as cost and behavior signals for the caller.
type Warning struct {
	Type                WarningType `json:"type"`
	Month               int         `json:"month"`
	Severity            Severity    `json:"severity"`
	OverpaymentConfigID string      `json:"overpaymentConfigId,omitempty"`
	Message             string      `json:"message"`
}
