package ledgerapi

import (
	"context"
	"sync"

	"github.com/clearledger/recon-backend/internal/domain/ledger"
)

// FakeClient is an in-memory Client implementation for testing. It echoes
// mutations back the way the upstream server does and supports error
// injection per operation.
type FakeClient struct {
	mu           sync.Mutex
	Transactions []ledger.Transaction

	// Hooks for test assertions
	UpdateAdjustmentCalls int
	UpdateCalls           int
	UnlinkCalls           int
	AddMatchCalls         int
	RemoveMatchCalls      int
	LastUpdate            TransactionUpdate

	// Error injection for testing error paths
	ListErr             error
	CreateErr           error
	UpdateErr           error
	DeleteErr           error
	UpdateAdjustmentErr error
	UnlinkErr           error
	AddMatchErr         error
	RemoveMatchErr      error

	LiabilitiesResult Liabilities
}

// Compile-time check that FakeClient implements Client
var _ Client = (*FakeClient)(nil)

// NewFakeClient seeds a fake client with transactions.
func NewFakeClient(txns ...ledger.Transaction) *FakeClient {
	return &FakeClient{Transactions: txns}
}

func (f *FakeClient) find(id string) *ledger.Transaction {
	for i := range f.Transactions {
		if f.Transactions[i].ID == id {
			return &f.Transactions[i]
		}
	}
	return nil
}

func (f *FakeClient) ListTransactions(_ context.Context, _ ListParams) ([]ledger.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]ledger.Transaction, len(f.Transactions))
	copy(out, f.Transactions)
	return out, nil
}

func (f *FakeClient) CreateTransaction(_ context.Context, txn ledger.Transaction) (*ledger.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	f.Transactions = append(f.Transactions, txn)
	created := txn
	return &created, nil
}

func (f *FakeClient) UpdateTransaction(_ context.Context, id string, update TransactionUpdate) (*ledger.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateCalls++
	f.LastUpdate = update
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	txn := f.find(id)
	if txn == nil {
		return nil, &apiError{StatusCode: 404, Message: "transaction not found"}
	}
	if update.Category != nil {
		txn.Category = *update.Category
	}
	if update.Type != nil {
		txn.Type = *update.Type
	}
	if update.Note != nil {
		txn.Note = *update.Note
	}
	if update.Description != nil {
		txn.Description = *update.Description
	}
	updated := *txn
	return &updated, nil
}

func (f *FakeClient) DeleteTransaction(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	kept := f.Transactions[:0]
	for _, t := range f.Transactions {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	f.Transactions = kept
	return nil
}

func (f *FakeClient) Liabilities(_ context.Context, _ LiabilityParams) (*Liabilities, error) {
	result := f.LiabilitiesResult
	return &result, nil
}

func (f *FakeClient) FindSimilar(_ context.Context, _ string) ([]ledger.Transaction, error) {
	return nil, nil
}

func (f *FakeClient) UpdateAdjustment(_ context.Context, txnID, statementID string, amount float64) (*ledger.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateAdjustmentCalls++
	if f.UpdateAdjustmentErr != nil {
		return nil, f.UpdateAdjustmentErr
	}
	txn := f.find(txnID)
	if txn == nil {
		return nil, &apiError{StatusCode: 404, Message: "transaction not found"}
	}
	for i := range txn.LinkedStatements {
		if txn.LinkedStatements[i].Statement.ID() == statementID {
			txn.LinkedStatements[i].AdjustmentAmount = amount
		}
	}
	updated := *txn
	return &updated, nil
}

func (f *FakeClient) UnlinkCreditCard(_ context.Context, txnID, statementID string) (*ledger.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UnlinkCalls++
	if f.UnlinkErr != nil {
		return nil, f.UnlinkErr
	}
	txn := f.find(txnID)
	if txn == nil {
		return nil, &apiError{StatusCode: 404, Message: "transaction not found"}
	}
	kept := txn.LinkedStatements[:0]
	for _, link := range txn.LinkedStatements {
		if link.Statement.ID() != statementID {
			kept = append(kept, link)
		}
	}
	txn.LinkedStatements = kept
	updated := *txn
	return &updated, nil
}

func (f *FakeClient) AddMatch(_ context.Context, txnID, documentID string) (*ledger.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.AddMatchCalls++
	if f.AddMatchErr != nil {
		return nil, f.AddMatchErr
	}
	txn := f.find(txnID)
	if txn == nil {
		return nil, &apiError{StatusCode: 404, Message: "transaction not found"}
	}
	txn.MatchedDocuments = append(txn.MatchedDocuments, ledger.Document{ID: documentID})
	updated := *txn
	return &updated, nil
}

func (f *FakeClient) RemoveMatch(_ context.Context, txnID, documentID string) (*ledger.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RemoveMatchCalls++
	if f.RemoveMatchErr != nil {
		return nil, f.RemoveMatchErr
	}
	txn := f.find(txnID)
	if txn == nil {
		return nil, &apiError{StatusCode: 404, Message: "transaction not found"}
	}
	kept := txn.MatchedDocuments[:0]
	for _, doc := range txn.MatchedDocuments {
		if doc.ID != documentID {
			kept = append(kept, doc)
		}
	}
	txn.MatchedDocuments = kept
	updated := *txn
	return &updated, nil
}
