package storage_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearledger/recon-backend/internal/infrastructure/storage"
)

func newStorage(t *testing.T) *storage.Storage {
	t.Helper()
	s, err := storage.NewStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func record(id, txnID, kind, outcome string, at time.Time) *storage.MutationRecord {
	return &storage.MutationRecord{
		ID:            id,
		TransactionID: txnID,
		Kind:          kind,
		Outcome:       outcome,
		CreatedAt:     at,
	}
}

func TestStorage_SaveAndGetMutation(t *testing.T) {
	s := newStorage(t)

	now := time.Now().UTC().Truncate(time.Second)
	saved := &storage.MutationRecord{
		ID:            "m1",
		TransactionID: "t1",
		StatementID:   "stmt-1",
		Kind:          "adjustment",
		Outcome:       storage.OutcomeApplied,
		CreatedAt:     now,
	}
	require.NoError(t, s.SaveMutation(saved))

	got, err := s.GetMutation("m1")
	require.NoError(t, err)
	assert.Equal(t, "t1", got.TransactionID)
	assert.Equal(t, "stmt-1", got.StatementID)
	assert.Equal(t, "adjustment", got.Kind)
	assert.Equal(t, storage.OutcomeApplied, got.Outcome)
	assert.True(t, got.CreatedAt.Equal(now))
}

func TestStorage_SaveMutationUpsert(t *testing.T) {
	s := newStorage(t)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, s.SaveMutation(record("m1", "t1", "note", storage.OutcomeApplied, now)))

	updated := record("m1", "t1", "note", storage.OutcomeRolledBack, now)
	updated.ErrorMessage = "server rejected the edit"
	require.NoError(t, s.SaveMutation(updated))

	got, err := s.GetMutation("m1")
	require.NoError(t, err)
	assert.Equal(t, storage.OutcomeRolledBack, got.Outcome)
	assert.Equal(t, "server rejected the edit", got.ErrorMessage)

	records, err := s.ListMutations(storage.MutationFilters{})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestStorage_ListMutations(t *testing.T) {
	s := newStorage(t)

	base := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, s.SaveMutation(record("m1", "t1", "category", storage.OutcomeApplied, base)))
	require.NoError(t, s.SaveMutation(record("m2", "t1", "adjustment", storage.OutcomeFailed, base.Add(time.Second))))
	require.NoError(t, s.SaveMutation(record("m3", "t2", "category", storage.OutcomeRolledBack, base.Add(2*time.Second))))

	t.Run("newest first", func(t *testing.T) {
		records, err := s.ListMutations(storage.MutationFilters{})
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "m3", records[0].ID)
		assert.Equal(t, "m1", records[2].ID)
	})

	t.Run("filter by transaction", func(t *testing.T) {
		records, err := s.ListMutations(storage.MutationFilters{TransactionID: "t1"})
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("filter by kind and outcome", func(t *testing.T) {
		records, err := s.ListMutations(storage.MutationFilters{Kind: "category", Outcome: storage.OutcomeRolledBack})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "m3", records[0].ID)
	})

	t.Run("limit and offset", func(t *testing.T) {
		records, err := s.ListMutations(storage.MutationFilters{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "m2", records[0].ID)
	})
}

func TestStorage_Snapshots(t *testing.T) {
	s := newStorage(t)

	base := time.Now().UTC().Truncate(time.Second)
	first := &storage.ReconciliationSnapshot{
		StatementID:        "stmt-1",
		StatementTotal:     1000,
		CombinedPaidAmount: 700,
		CombinedDifference: 300,
		Status:             "remaining",
		LinkedCount:        2,
		TakenAt:            base,
	}
	require.NoError(t, s.SaveSnapshot(first))
	assert.NotZero(t, first.ID)

	second := &storage.ReconciliationSnapshot{
		StatementID:        "stmt-1",
		StatementTotal:     1000,
		CombinedPaidAmount: 1000,
		CombinedDifference: 0,
		Status:             "balanced",
		LinkedCount:        2,
		TakenAt:            base.Add(time.Second),
	}
	require.NoError(t, s.SaveSnapshot(second))

	other := &storage.ReconciliationSnapshot{StatementID: "stmt-2", Status: "balanced", TakenAt: base}
	require.NoError(t, s.SaveSnapshot(other))

	t.Run("most recent first, scoped to the statement", func(t *testing.T) {
		snaps, err := s.ListSnapshots("stmt-1", 0)
		require.NoError(t, err)
		require.Len(t, snaps, 2)
		assert.Equal(t, "balanced", snaps[0].Status)
		assert.Equal(t, "remaining", snaps[1].Status)
	})

	t.Run("limit caps results", func(t *testing.T) {
		snaps, err := s.ListSnapshots("stmt-1", 1)
		require.NoError(t, err)
		require.Len(t, snaps, 1)
		assert.Equal(t, 0.0, snaps[0].CombinedDifference)
	})

	t.Run("unknown statement yields nothing", func(t *testing.T) {
		snaps, err := s.ListSnapshots("stmt-9", 0)
		require.NoError(t, err)
		assert.Empty(t, snaps)
	})
}

func TestMockRepository(t *testing.T) {
	t.Run("records hooks on save", func(t *testing.T) {
		repo := storage.NewMockRepository()

		require.NoError(t, repo.SaveMutation(record("m1", "t1", "note", storage.OutcomeApplied, time.Now())))
		assert.True(t, repo.SaveMutationCalled)
		assert.Equal(t, "m1", repo.LastSavedMutation.ID)
	})

	t.Run("injected errors propagate", func(t *testing.T) {
		repo := storage.NewMockRepository()
		repo.SaveMutationErr = assert.AnError

		err := repo.SaveMutation(record("m1", "t1", "note", storage.OutcomeApplied, time.Now()))
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("filters match the sqlite behavior", func(t *testing.T) {
		repo := storage.NewMockRepository()
		now := time.Now()
		require.NoError(t, repo.SaveMutation(record("m1", "t1", "category", storage.OutcomeApplied, now)))
		require.NoError(t, repo.SaveMutation(record("m2", "t2", "category", storage.OutcomeFailed, now)))

		records, err := repo.ListMutations(storage.MutationFilters{Outcome: storage.OutcomeFailed})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "m2", records[0].ID)
	})
}
