// Package service coordinates mutations against the upstream ledger server
// and the local transaction store.
//
// Two update disciplines are in play:
//
//   - Category, type and note edits apply optimistically: the local change
//     lands first, the upstream call follows, and on failure the recorded
//     previous value is restored.
//   - Adjustment, link and match edits are confirm-then-apply: local state
//     is untouched until the server accepts the change, because these edits
//     shift reconciliation figures for every transaction sharing the
//     statement.
//
// A per-transaction in-flight set blocks re-entrant mutations on the same
// transaction; concurrent callers get ErrMutationInFlight instead of a
// silent drop. Every attempt is journaled to the audit repository.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clearledger/recon-backend/internal/adapters/ledgerapi"
	"github.com/clearledger/recon-backend/internal/domain/ledger"
	"github.com/clearledger/recon-backend/internal/domain/matcher"
	"github.com/clearledger/recon-backend/internal/domain/reconcile"
	"github.com/clearledger/recon-backend/internal/infrastructure/storage"
)

// Mutation kinds recorded in the journal.
const (
	KindCategory    = "category"
	KindType        = "type"
	KindNote        = "note"
	KindAdjustment  = "adjustment"
	KindUnlink      = "unlink"
	KindAddMatch    = "add_match"
	KindRemoveMatch = "remove_match"
	KindCreate      = "create"
	KindDelete      = "delete"
)

var (
	// ErrMutationInFlight is returned when a mutation is requested for a
	// transaction that already has one outstanding.
	ErrMutationInFlight = errors.New("a mutation for this transaction is already in flight")

	// ErrConfirmRequired is returned when adding a match to a perfectly
	// matched transaction without explicit confirmation.
	ErrConfirmRequired = errors.New("transaction is fully matched; confirm to add another document")

	// ErrTransactionNotFound is returned for unknown transaction ids.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// MutationService coordinates local state and upstream mutations.
type MutationService struct {
	client       ledgerapi.Client
	store        *Store
	repo         storage.Repository
	matcher      *matcher.Matcher
	reconcileCfg reconcile.Config
	logger       *slog.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewMutationService creates a coordinator over the given client and store.
func NewMutationService(client ledgerapi.Client, store *Store, repo storage.Repository, logger *slog.Logger) *MutationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MutationService{
		client:       client,
		store:        store,
		repo:         repo,
		matcher:      matcher.New(matcher.DefaultConfig()),
		reconcileCfg: reconcile.DefaultConfig(),
		logger:       logger,
		inFlight:     make(map[string]struct{}),
	}
}

// Store exposes the underlying transaction store.
func (s *MutationService) Store() *Store {
	return s.store
}

// Refresh replaces the store with a fresh upstream fetch.
func (s *MutationService) Refresh(ctx context.Context, params ledgerapi.ListParams) error {
	txns, err := s.client.ListTransactions(ctx, params)
	if err != nil {
		return fmt.Errorf("fetching transactions: %w", err)
	}
	s.store.Replace(txns)
	s.logger.Info("transaction store refreshed", "count", len(txns))
	return nil
}

// acquire marks a transaction as having a mutation in flight.
func (s *MutationService) acquire(txnID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[txnID]; busy {
		return ErrMutationInFlight
	}
	s.inFlight[txnID] = struct{}{}
	return nil
}

func (s *MutationService) release(txnID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, txnID)
}

// journal records a mutation attempt; journal failures are logged, never
// propagated, so audit problems cannot fail a user action.
func (s *MutationService) journal(txnID, stmtID, kind, outcome, errMsg string) {
	record := &storage.MutationRecord{
		ID:            uuid.NewString(),
		TransactionID: txnID,
		StatementID:   stmtID,
		Kind:          kind,
		Outcome:       outcome,
		ErrorMessage:  errMsg,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.SaveMutation(record); err != nil {
		s.logger.Error("failed to journal mutation", "kind", kind, "transaction_id", txnID, "error", err)
	}
}

// snapshotStatement persists the post-mutation reconciliation picture.
func (s *MutationService) snapshotStatement(statementID string) {
	if statementID == "" {
		return
	}
	summary := s.ReconcileStatement(statementID, nil)
	snap := &storage.ReconciliationSnapshot{
		StatementID:        summary.StatementID,
		StatementTotal:     summary.StatementTotal,
		CombinedPaidAmount: summary.CombinedPaidAmount,
		CombinedDifference: summary.CombinedDifference,
		Status:             string(summary.Status),
		LinkedCount:        summary.LinkedTransactionCount,
		TakenAt:            time.Now().UTC(),
	}
	if err := s.repo.SaveSnapshot(snap); err != nil {
		s.logger.Error("failed to save reconciliation snapshot", "statement_id", statementID, "error", err)
	}
}

// optimisticUpdate applies a field edit locally first, then confirms it
// upstream, restoring the previous transaction on failure.
func (s *MutationService) optimisticUpdate(
	ctx context.Context,
	txnID, kind string,
	update ledgerapi.TransactionUpdate,
	apply func(ledger.Transaction) ledger.Transaction,
) error {
	if err := s.acquire(txnID); err != nil {
		return err
	}
	defer s.release(txnID)

	prev, ok := s.store.Get(txnID)
	if !ok {
		return ErrTransactionNotFound
	}

	s.store.Update(txnID, apply)

	if _, err := s.client.UpdateTransaction(ctx, txnID, update); err != nil {
		// Roll the optimistic edit back to the recorded previous state.
		s.store.Update(txnID, func(ledger.Transaction) ledger.Transaction { return prev })
		s.journal(txnID, "", kind, storage.OutcomeRolledBack, err.Error())
		s.logger.Warn("mutation rolled back", "kind", kind, "transaction_id", txnID, "error", err)
		return err
	}

	s.journal(txnID, "", kind, storage.OutcomeApplied, "")
	return nil
}

// UpdateCategory sets a transaction's category (optimistic).
func (s *MutationService) UpdateCategory(ctx context.Context, txnID, category string) error {
	return s.optimisticUpdate(ctx, txnID, KindCategory,
		ledgerapi.TransactionUpdate{Category: &category},
		func(t ledger.Transaction) ledger.Transaction {
			t.Category = category
			return t
		})
}

// UpdateType sets a transaction's business/personal type (optimistic).
func (s *MutationService) UpdateType(ctx context.Context, txnID string, txnType ledger.TransactionType) error {
	if txnType != ledger.TypeBusiness && txnType != ledger.TypePersonal {
		return fmt.Errorf("invalid transaction type %q", txnType)
	}
	return s.optimisticUpdate(ctx, txnID, KindType,
		ledgerapi.TransactionUpdate{Type: &txnType},
		func(t ledger.Transaction) ledger.Transaction {
			t.Type = txnType
			return t
		})
}

// UpdateNote sets a transaction's note (optimistic).
func (s *MutationService) UpdateNote(ctx context.Context, txnID, note string) error {
	if len(note) > ledger.MaxNoteLength {
		return fmt.Errorf("note exceeds %d characters", ledger.MaxNoteLength)
	}
	return s.optimisticUpdate(ctx, txnID, KindNote,
		ledgerapi.TransactionUpdate{Note: &note},
		func(t ledger.Transaction) ledger.Transaction {
			t.Note = note
			return t
		})
}

// UpdateAdjustment sets the adjustment amount on one statement link.
// Confirm-then-apply: the local link changes only after the server accepts,
// and the statement version is bumped so every peer transaction re-derives
// its combined totals.
func (s *MutationService) UpdateAdjustment(ctx context.Context, txnID, statementID string, amount float64) error {
	if err := s.acquire(txnID); err != nil {
		return err
	}
	defer s.release(txnID)

	txn, ok := s.store.Get(txnID)
	if !ok {
		return ErrTransactionNotFound
	}
	if !txn.IsLinkedTo(statementID) {
		return fmt.Errorf("transaction %s is not linked to statement %s", txnID, statementID)
	}

	if _, err := s.client.UpdateAdjustment(ctx, txnID, statementID, amount); err != nil {
		s.journal(txnID, statementID, KindAdjustment, storage.OutcomeFailed, err.Error())
		return err
	}

	s.store.Update(txnID, func(t ledger.Transaction) ledger.Transaction {
		links := make([]ledger.StatementLink, len(t.LinkedStatements))
		copy(links, t.LinkedStatements)
		for i := range links {
			if links[i].Statement.ID() == statementID {
				links[i].AdjustmentAmount = amount
			}
		}
		t.LinkedStatements = links
		return t
	})
	s.store.BumpStatement(statementID)

	s.journal(txnID, statementID, KindAdjustment, storage.OutcomeApplied, "")
	s.snapshotStatement(statementID)
	return nil
}

// Unlink removes a statement link from a transaction (confirm-then-apply).
func (s *MutationService) Unlink(ctx context.Context, txnID, statementID string) error {
	if err := s.acquire(txnID); err != nil {
		return err
	}
	defer s.release(txnID)

	txn, ok := s.store.Get(txnID)
	if !ok {
		return ErrTransactionNotFound
	}
	if !txn.IsLinkedTo(statementID) {
		return fmt.Errorf("transaction %s is not linked to statement %s", txnID, statementID)
	}

	if _, err := s.client.UnlinkCreditCard(ctx, txnID, statementID); err != nil {
		s.journal(txnID, statementID, KindUnlink, storage.OutcomeFailed, err.Error())
		return err
	}

	s.store.Update(txnID, func(t ledger.Transaction) ledger.Transaction {
		links := make([]ledger.StatementLink, 0, len(t.LinkedStatements))
		for _, link := range t.LinkedStatements {
			if link.Statement.ID() != statementID {
				links = append(links, link)
			}
		}
		t.LinkedStatements = links
		return t
	})
	s.store.BumpStatement(statementID)

	s.journal(txnID, statementID, KindUnlink, storage.OutcomeApplied, "")
	s.snapshotStatement(statementID)
	return nil
}

// AddMatch associates a document with a transaction. When the transaction
// is already perfectly matched the caller must pass confirmed=true, since
// any further match forces excess.
func (s *MutationService) AddMatch(ctx context.Context, txnID, documentID string, confirmed bool) error {
	if err := s.acquire(txnID); err != nil {
		return err
	}
	defer s.release(txnID)

	txn, ok := s.store.Get(txnID)
	if !ok {
		return ErrTransactionNotFound
	}
	if s.matcher.NeedsConfirmation(txn) && !confirmed {
		return ErrConfirmRequired
	}

	updated, err := s.client.AddMatch(ctx, txnID, documentID)
	if err != nil {
		s.journal(txnID, "", KindAddMatch, storage.OutcomeFailed, err.Error())
		return err
	}

	s.applyUpstream(txnID, updated)
	s.journal(txnID, "", KindAddMatch, storage.OutcomeApplied, "")
	return nil
}

// RemoveMatch removes a document match (confirm-then-apply).
func (s *MutationService) RemoveMatch(ctx context.Context, txnID, documentID string) error {
	if err := s.acquire(txnID); err != nil {
		return err
	}
	defer s.release(txnID)

	if _, ok := s.store.Get(txnID); !ok {
		return ErrTransactionNotFound
	}

	updated, err := s.client.RemoveMatch(ctx, txnID, documentID)
	if err != nil {
		s.journal(txnID, "", KindRemoveMatch, storage.OutcomeFailed, err.Error())
		return err
	}

	s.applyUpstream(txnID, updated)
	s.journal(txnID, "", KindRemoveMatch, storage.OutcomeApplied, "")
	return nil
}

// Create validates and creates a new transaction upstream, then mirrors it
// locally.
func (s *MutationService) Create(ctx context.Context, txn ledger.Transaction) (*ledger.Transaction, error) {
	if err := txn.ValidateNew(); err != nil {
		return nil, err
	}

	created, err := s.client.CreateTransaction(ctx, txn)
	if err != nil {
		s.journal(txn.ID, "", KindCreate, storage.OutcomeFailed, err.Error())
		return nil, err
	}

	s.store.Append(*created)
	s.journal(created.ID, "", KindCreate, storage.OutcomeApplied, "")
	return created, nil
}

// Delete removes a transaction upstream and locally.
func (s *MutationService) Delete(ctx context.Context, txnID string) error {
	if err := s.acquire(txnID); err != nil {
		return err
	}
	defer s.release(txnID)

	txn, ok := s.store.Get(txnID)
	if !ok {
		return ErrTransactionNotFound
	}

	if err := s.client.DeleteTransaction(ctx, txnID); err != nil {
		s.journal(txnID, "", KindDelete, storage.OutcomeFailed, err.Error())
		return err
	}

	s.store.Remove(txnID)
	for _, link := range txn.LinkedStatements {
		s.store.BumpStatement(link.Statement.ID())
	}
	s.journal(txnID, "", KindDelete, storage.OutcomeApplied, "")
	return nil
}

// applyUpstream mirrors a server-returned transaction into the store and
// bumps every statement it touches.
func (s *MutationService) applyUpstream(txnID string, updated *ledger.Transaction) {
	if updated == nil {
		return
	}
	s.store.Update(txnID, func(ledger.Transaction) ledger.Transaction { return *updated })
	for _, link := range updated.LinkedStatements {
		s.store.BumpStatement(link.Statement.ID())
	}
}

// ReconcileStatement derives the reconciliation summary for a statement
// from the current store snapshot. Never cached.
func (s *MutationService) ReconcileStatement(statementID string, external map[string]float64) reconcile.Summary {
	return reconcile.ReconcileStatement(s.reconcileCfg, statementID, s.store.Snapshot(), external)
}

// MatchBalance derives the document match balance for one transaction.
func (s *MutationService) MatchBalance(txnID string) (matcher.Result, error) {
	txn, ok := s.store.Get(txnID)
	if !ok {
		return matcher.Result{}, ErrTransactionNotFound
	}
	return s.matcher.Balance(txn), nil
}

// Liabilities proxies the upstream liabilities report.
func (s *MutationService) Liabilities(ctx context.Context, params ledgerapi.LiabilityParams) (*ledgerapi.Liabilities, error) {
	return s.client.Liabilities(ctx, params)
}

// FindSimilar proxies the upstream similarity search.
func (s *MutationService) FindSimilar(ctx context.Context, txnID string) ([]ledger.Transaction, error) {
	return s.client.FindSimilar(ctx, txnID)
}
