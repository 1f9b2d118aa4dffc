package matcher

// Status classifies how a transaction's amount compares with the sum of its
// matched documents.
type Status string

const (
	// StatusPerfect means the matched documents cover the transaction amount
	// within tolerance.
	StatusPerfect Status = "perfect"
	// StatusRemaining means the documents cover less than the transaction.
	StatusRemaining Status = "remaining"
	// StatusExcess means the documents exceed the transaction amount.
	StatusExcess Status = "excess"
	// StatusUnmatched means the transaction has no matched documents yet.
	StatusUnmatched Status = "unmatched"
)

// Config holds matcher configuration.
type Config struct {
	AmountTolerance float64 // Default: 0.01 (1 cent)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{AmountTolerance: 0.01}
}

// Result contains the balance between a transaction and its matched
// documents.
type Result struct {
	TransactionAmount float64 `json:"transaction_amount"`
	MatchedAmount     float64 `json:"matched_amount"`
	BalanceDifference float64 `json:"balance_difference"`
	MatchedCount      int     `json:"matched_count"`
	Status            Status  `json:"status"`
}
