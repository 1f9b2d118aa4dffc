package storage

import "sync"

// MockRepository is an in-memory implementation of Repository for testing.
// It stores all data in maps and slices, making tests fast and isolated.
type MockRepository struct {
	mu        sync.Mutex
	mutations []MutationRecord
	snapshots []ReconciliationSnapshot

	// Hooks for test assertions
	SaveMutationCalled bool
	LastSavedMutation  *MutationRecord
	SaveSnapshotCalled bool
	LastSavedSnapshot  *ReconciliationSnapshot

	// Error injection for testing error paths
	SaveMutationErr error
	SaveSnapshotErr error

	nextSnapshotID int64
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates a new mock repository for testing
func NewMockRepository() *MockRepository {
	return &MockRepository{nextSnapshotID: 1}
}

// SaveMutation appends a mutation record to the journal
func (m *MockRepository) SaveMutation(record *MutationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveMutationCalled = true
	if m.SaveMutationErr != nil {
		return m.SaveMutationErr
	}
	copied := *record
	m.mutations = append(m.mutations, copied)
	m.LastSavedMutation = &copied
	return nil
}

// GetMutation retrieves a record by its id
func (m *MockRepository) GetMutation(id string) (*MutationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.mutations {
		if m.mutations[i].ID == id {
			record := m.mutations[i]
			return &record, nil
		}
	}
	return nil, nil
}

// ListMutations returns records matching the given filters, newest first
func (m *MockRepository) ListMutations(filters MutationFilters) ([]MutationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []MutationRecord
	for i := len(m.mutations) - 1; i >= 0; i-- {
		record := m.mutations[i]
		if filters.TransactionID != "" && record.TransactionID != filters.TransactionID {
			continue
		}
		if filters.Kind != "" && record.Kind != filters.Kind {
			continue
		}
		if filters.Outcome != "" && record.Outcome != filters.Outcome {
			continue
		}
		out = append(out, record)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}
	if filters.Offset > 0 {
		if filters.Offset >= len(out) {
			return nil, nil
		}
		out = out[filters.Offset:]
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SaveSnapshot persists a reconciliation snapshot
func (m *MockRepository) SaveSnapshot(snapshot *ReconciliationSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveSnapshotCalled = true
	if m.SaveSnapshotErr != nil {
		return m.SaveSnapshotErr
	}
	snapshot.ID = m.nextSnapshotID
	m.nextSnapshotID++
	copied := *snapshot
	m.snapshots = append(m.snapshots, copied)
	m.LastSavedSnapshot = &copied
	return nil
}

// ListSnapshots returns the most recent snapshots for a statement
func (m *MockRepository) ListSnapshots(statementID string, limit int) ([]ReconciliationSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 {
		limit = 50
	}

	var out []ReconciliationSnapshot
	for i := len(m.snapshots) - 1; i >= 0 && len(out) < limit; i-- {
		if m.snapshots[i].StatementID == statementID {
			out = append(out, m.snapshots[i])
		}
	}
	return out, nil
}

// Close is a no-op for the mock
func (m *MockRepository) Close() error {
	return nil
}
