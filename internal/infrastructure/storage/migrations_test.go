package storage_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearledger/recon-backend/internal/infrastructure/storage"
)

func TestMigrations_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "migrate.db")

	s, err := storage.NewStorage(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveMutation(record("m1", "t1", "note", storage.OutcomeApplied, time.Now().UTC())))
	require.NoError(t, s.Close())

	// Reopening runs migrations again; already-applied versions are skipped
	// and existing data survives.
	reopened, err := storage.NewStorage(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	got, err := reopened.GetMutation("m1")
	require.NoError(t, err)
	assert.Equal(t, "t1", got.TransactionID)
}
