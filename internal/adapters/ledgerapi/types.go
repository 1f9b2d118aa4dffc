package ledgerapi

import (
	"context"

	"github.com/clearledger/recon-backend/internal/domain/ledger"
)

// Client is the upstream ledger API surface this service consumes. The
// server owns all business logic (document matching, similarity search);
// this client only moves data.
type Client interface {
	ListTransactions(ctx context.Context, params ListParams) ([]ledger.Transaction, error)
	CreateTransaction(ctx context.Context, txn ledger.Transaction) (*ledger.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, update TransactionUpdate) (*ledger.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	Liabilities(ctx context.Context, params LiabilityParams) (*Liabilities, error)
	FindSimilar(ctx context.Context, id string) ([]ledger.Transaction, error)
	UpdateAdjustment(ctx context.Context, txnID, statementID string, amount float64) (*ledger.Transaction, error)
	UnlinkCreditCard(ctx context.Context, txnID, statementID string) (*ledger.Transaction, error)
	AddMatch(ctx context.Context, txnID, documentID string) (*ledger.Transaction, error)
	RemoveMatch(ctx context.Context, txnID, documentID string) (*ledger.Transaction, error)
}

// ListParams filters the transaction list. StatementID and
// AccountID/AccountType are alternative scopes; companyId is supplied by the
// client itself.
type ListParams struct {
	StatementID string
	AccountID   string
	AccountType ledger.AccountType
	Limit       int
	SortBy      string
	SortOrder   string
}

// TransactionUpdate is a partial update; nil fields are left untouched
// upstream.
type TransactionUpdate struct {
	Category    *string                 `json:"category,omitempty"`
	Type        *ledger.TransactionType `json:"type,omitempty"`
	Note        *string                 `json:"note,omitempty"`
	Debit       *float64                `json:"debit,omitempty"`
	Credit      *float64                `json:"credit,omitempty"`
	Description *string                 `json:"description,omitempty"`
	Vendor      *string                 `json:"vendor,omitempty"`
	Date        *string                 `json:"date,omitempty"`
}

// LiabilityParams bounds the liabilities report.
type LiabilityParams struct {
	StartDate string
	EndDate   string
}

// Liabilities is the upstream liabilities report.
type Liabilities struct {
	CreditCardLiabilities float64 `json:"creditCardLiabilities"`
	LoanLiabilities       float64 `json:"loanLiabilities"`
	TotalPayments         float64 `json:"totalPayments"`
	NetLiabilities        float64 `json:"netLiabilities"`
}
