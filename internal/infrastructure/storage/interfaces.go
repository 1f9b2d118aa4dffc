package storage

// Repository defines the complete storage interface.
// This interface allows swapping implementations (SQLite, PostgreSQL, etc.)
// and makes testing with mocks straightforward.
type Repository interface {
	MutationRepository
	SnapshotRepository
	Close() error
}

// MutationRepository handles the mutation journal.
type MutationRepository interface {
	// SaveMutation appends a mutation record to the journal
	SaveMutation(record *MutationRecord) error

	// GetMutation retrieves a record by its id
	GetMutation(id string) (*MutationRecord, error)

	// ListMutations returns records matching the given filters, newest first
	ListMutations(filters MutationFilters) ([]MutationRecord, error)
}

// SnapshotRepository handles reconciliation snapshots.
type SnapshotRepository interface {
	// SaveSnapshot persists a reconciliation snapshot
	SaveSnapshot(snapshot *ReconciliationSnapshot) error

	// ListSnapshots returns the most recent snapshots for a statement
	ListSnapshots(statementID string, limit int) ([]ReconciliationSnapshot, error)
}
