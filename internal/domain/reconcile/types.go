package reconcile

// Status is the tri-state outcome of reconciling a statement against the
// payments made toward it.
type Status string

const (
	// StatusBalanced means the combined payments cover the statement total
	// within tolerance.
	StatusBalanced Status = "balanced"
	// StatusRemaining means part of the statement total is still owed.
	StatusRemaining Status = "remaining"
	// StatusOverpaid means the combined payments exceed the statement total.
	StatusOverpaid Status = "overpaid"
)

// Config holds reconciliation configuration.
type Config struct {
	// Tolerance is the absolute difference under which a statement is
	// considered fully paid. Default: 0.01 (1 cent).
	Tolerance float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{Tolerance: 0.01}
}

// Summary is the full reconciliation picture for one statement. It is
// derived from the current transaction set on every call and never cached:
// an adjustment edit on any linked transaction changes the summary for all
// of them.
type Summary struct {
	StatementID            string  `json:"statement_id"`
	StatementTotal         float64 `json:"statement_total"`
	TotalBankPayments      float64 `json:"total_bank_payments"`
	TotalAdjustments       float64 `json:"total_adjustments"`
	CombinedPaidAmount     float64 `json:"combined_paid_amount"`
	CombinedDifference     float64 `json:"combined_difference"`
	Status                 Status  `json:"status"`
	LinkedTransactionCount int     `json:"linked_transaction_count"`
	IsMultiTransaction     bool    `json:"is_multi_transaction"`
}
