package storage

import "time"

// Mutation outcomes.
const (
	OutcomeApplied    = "applied"
	OutcomeFailed     = "failed"
	OutcomeRolledBack = "rolled_back"
)

// MutationRecord is one journaled mutation attempt: what was changed, on
// which transaction, and how it ended.
type MutationRecord struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transaction_id"`
	StatementID   string    `json:"statement_id,omitempty"`
	Kind          string    `json:"kind"`
	Outcome       string    `json:"outcome"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// MutationFilters defines filters for listing mutation records.
type MutationFilters struct {
	TransactionID string // Filter by transaction (empty = all)
	Kind          string // Filter by mutation kind (empty = all)
	Outcome       string // Filter by outcome (empty = all)
	Limit         int    // Max results (0 = default 50)
	Offset        int    // Pagination offset
}

// ReconciliationSnapshot is a point-in-time reconciliation result for one
// statement, persisted after each mutation that touches it.
type ReconciliationSnapshot struct {
	ID                 int64     `json:"id"`
	StatementID        string    `json:"statement_id"`
	StatementTotal     float64   `json:"statement_total"`
	CombinedPaidAmount float64   `json:"combined_paid_amount"`
	CombinedDifference float64   `json:"combined_difference"`
	Status             string    `json:"status"`
	LinkedCount        int       `json:"linked_count"`
	TakenAt            time.Time `json:"taken_at"`
}
