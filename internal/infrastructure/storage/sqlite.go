package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Storage provides SQLite database access for the mutation journal and
// reconciliation snapshots. It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints (SQLite-specific)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveMutation appends a mutation record to the journal
func (s *Storage) SaveMutation(record *MutationRecord) error {
	query := `
	INSERT OR REPLACE INTO mutation_records
	(id, transaction_id, statement_id, kind, outcome, error_message, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		record.ID,
		record.TransactionID,
		record.StatementID,
		record.Kind,
		record.Outcome,
		record.ErrorMessage,
		record.CreatedAt,
	)
	return err
}

// GetMutation retrieves a record by its id
func (s *Storage) GetMutation(id string) (*MutationRecord, error) {
	query := `
	SELECT id, transaction_id, statement_id, kind, outcome, error_message, created_at
	FROM mutation_records WHERE id = ?
	`

	record := &MutationRecord{}
	var statementID, errorMessage sql.NullString
	err := s.db.QueryRow(query, id).Scan(
		&record.ID,
		&record.TransactionID,
		&statementID,
		&record.Kind,
		&record.Outcome,
		&errorMessage,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.StatementID = statementID.String
	record.ErrorMessage = errorMessage.String
	return record, nil
}

// ListMutations returns records matching the given filters, newest first
func (s *Storage) ListMutations(filters MutationFilters) ([]MutationRecord, error) {
	query := `
	SELECT id, transaction_id, statement_id, kind, outcome, error_message, created_at
	FROM mutation_records WHERE 1=1
	`
	var args []any

	if filters.TransactionID != "" {
		query += " AND transaction_id = ?"
		args = append(args, filters.TransactionID)
	}
	if filters.Kind != "" {
		query += " AND kind = ?"
		args = append(args, filters.Kind)
	}
	if filters.Outcome != "" {
		query += " AND outcome = ?"
		args = append(args, filters.Outcome)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}
	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, filters.Offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []MutationRecord
	for rows.Next() {
		var record MutationRecord
		var statementID, errorMessage sql.NullString
		if err := rows.Scan(
			&record.ID,
			&record.TransactionID,
			&statementID,
			&record.Kind,
			&record.Outcome,
			&errorMessage,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		record.StatementID = statementID.String
		record.ErrorMessage = errorMessage.String
		records = append(records, record)
	}
	return records, rows.Err()
}

// SaveSnapshot persists a reconciliation snapshot
func (s *Storage) SaveSnapshot(snapshot *ReconciliationSnapshot) error {
	query := `
	INSERT INTO reconciliation_snapshots
	(statement_id, statement_total, combined_paid_amount, combined_difference,
	 status, linked_count, taken_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.Exec(query,
		snapshot.StatementID,
		snapshot.StatementTotal,
		snapshot.CombinedPaidAmount,
		snapshot.CombinedDifference,
		snapshot.Status,
		snapshot.LinkedCount,
		snapshot.TakenAt,
	)
	if err != nil {
		return err
	}

	if id, err := result.LastInsertId(); err == nil {
		snapshot.ID = id
	}
	return nil
}

// ListSnapshots returns the most recent snapshots for a statement
func (s *Storage) ListSnapshots(statementID string, limit int) ([]ReconciliationSnapshot, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
	SELECT id, statement_id, statement_total, combined_paid_amount,
	       combined_difference, status, linked_count, taken_at
	FROM reconciliation_snapshots
	WHERE statement_id = ?
	ORDER BY taken_at DESC LIMIT ?
	`

	rows, err := s.db.Query(query, statementID, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var snapshots []ReconciliationSnapshot
	for rows.Next() {
		var snap ReconciliationSnapshot
		if err := rows.Scan(
			&snap.ID,
			&snap.StatementID,
			&snap.StatementTotal,
			&snap.CombinedPaidAmount,
			&snap.CombinedDifference,
			&snap.Status,
			&snap.LinkedCount,
			&snap.TakenAt,
		); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}
