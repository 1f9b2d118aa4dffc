package dto

import (
	"github.com/clearledger/recon-backend/internal/adapters/ledgerapi"
	"github.com/clearledger/recon-backend/internal/domain/ledger"
	"github.com/clearledger/recon-backend/internal/domain/matcher"
	"github.com/clearledger/recon-backend/internal/domain/reconcile"
	"github.com/clearledger/recon-backend/internal/infrastructure/storage"
)

// TransactionResponse is one transaction annotated with its derived
// figures: the document match balance, and — when the transaction is linked
// to statements — the reconciliation summary for each.
type TransactionResponse struct {
	Transaction     ledger.Transaction  `json:"transaction"`
	MatchBalance    matcher.Result      `json:"match_balance"`
	Reconciliations []reconcile.Summary `json:"reconciliations,omitempty"`
}

// TransactionListResponse wraps the annotated transaction list.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Count        int                   `json:"count"`
}

// ReconciliationResponse wraps one statement's reconciliation summary.
type ReconciliationResponse struct {
	Summary reconcile.Summary `json:"summary"`
	Version int64             `json:"version"`
}

// BalanceResponse wraps one transaction's match balance.
type BalanceResponse struct {
	TransactionID string         `json:"transaction_id"`
	Balance       matcher.Result `json:"balance"`
}

// MutationResponse reports the outcome of a mutation request.
type MutationResponse struct {
	Success bool `json:"success"`
}

// MutationListResponse wraps journaled mutation records.
type MutationListResponse struct {
	Mutations []storage.MutationRecord `json:"mutations"`
	Count     int                      `json:"count"`
}

// SnapshotListResponse wraps reconciliation snapshots for a statement.
type SnapshotListResponse struct {
	StatementID string                           `json:"statement_id"`
	Snapshots   []storage.ReconciliationSnapshot `json:"snapshots"`
	Count       int                              `json:"count"`
}

// LiabilitiesResponse wraps the upstream liabilities report.
type LiabilitiesResponse struct {
	Liabilities ledgerapi.Liabilities `json:"liabilities"`
}
