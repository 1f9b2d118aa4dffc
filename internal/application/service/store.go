package service

import (
	"sync"

	"github.com/clearledger/recon-backend/internal/domain/ledger"
)

// Store holds the in-memory transaction set the coordinator operates on.
// It is the single shared mutable resource: every write produces a new
// slice (copy-on-write), readers always see a consistent snapshot, and
// derived figures are recomputed from the snapshot rather than cached.
//
// Each statement carries a version counter bumped whenever any linked
// transaction changes, so observers can cheaply detect that their derived
// reconciliation summary is stale.
type Store struct {
	mu           sync.RWMutex
	transactions []ledger.Transaction
	stmtVersions map[string]int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{stmtVersions: make(map[string]int64)}
}

// Replace swaps in a freshly fetched transaction set.
func (s *Store) Replace(txns []ledger.Transaction) {
	copied := make([]ledger.Transaction, len(txns))
	copy(copied, txns)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = copied
}

// Snapshot returns a copy of the current transaction set.
func (s *Store) Snapshot() []ledger.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ledger.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Get returns the transaction with the given id.
func (s *Store) Get(id string) (ledger.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.transactions {
		if t.ID == id {
			return t, true
		}
	}
	return ledger.Transaction{}, false
}

// Update replaces the transaction produced by apply, building a new slice.
// Returns false when the id is unknown.
func (s *Store) Update(id string, apply func(ledger.Transaction) ledger.Transaction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	next := make([]ledger.Transaction, len(s.transactions))
	for i, t := range s.transactions {
		if t.ID == id {
			next[i] = apply(t)
			found = true
		} else {
			next[i] = t
		}
	}
	if found {
		s.transactions = next
	}
	return found
}

// Append adds a new transaction.
func (s *Store) Append(txn ledger.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]ledger.Transaction, len(s.transactions), len(s.transactions)+1)
	copy(next, s.transactions)
	s.transactions = append(next, txn)
}

// Remove drops the transaction with the given id.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]ledger.Transaction, 0, len(s.transactions))
	found := false
	for _, t := range s.transactions {
		if t.ID == id {
			found = true
			continue
		}
		next = append(next, t)
	}
	if found {
		s.transactions = next
	}
	return found
}

// BumpStatement increments the statement's version. Called after any change
// that affects reconciliation for the statement, so every transaction
// sharing it re-derives instead of showing stale combined totals.
func (s *Store) BumpStatement(statementID string) {
	if statementID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stmtVersions[statementID]++
}

// StatementVersion returns the current version for a statement.
func (s *Store) StatementVersion(statementID string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stmtVersions[statementID]
}

// Len returns the number of transactions held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.transactions)
}
