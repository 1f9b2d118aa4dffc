package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearledger/recon-backend/internal/application/service"
	"github.com/clearledger/recon-backend/internal/domain/ledger"
)

func TestStore_CopyOnWrite(t *testing.T) {
	store := service.NewStore()
	store.Replace([]ledger.Transaction{
		{ID: "t1", Category: "Travel"},
		{ID: "t2", Category: "Meals"},
	})

	before := store.Snapshot()

	ok := store.Update("t1", func(txn ledger.Transaction) ledger.Transaction {
		txn.Category = "Software"
		return txn
	})
	require.True(t, ok)

	// Earlier snapshots are unaffected by later writes.
	assert.Equal(t, "Travel", before[0].Category)

	after, found := store.Get("t1")
	require.True(t, found)
	assert.Equal(t, "Software", after.Category)
}

func TestStore_UpdateUnknownID(t *testing.T) {
	store := service.NewStore()
	store.Replace([]ledger.Transaction{{ID: "t1"}})

	ok := store.Update("missing", func(txn ledger.Transaction) ledger.Transaction { return txn })
	assert.False(t, ok)
}

func TestStore_AppendAndRemove(t *testing.T) {
	store := service.NewStore()
	store.Append(ledger.Transaction{ID: "t1"})
	store.Append(ledger.Transaction{ID: "t2"})
	assert.Equal(t, 2, store.Len())

	assert.True(t, store.Remove("t1"))
	assert.False(t, store.Remove("t1"))
	assert.Equal(t, 1, store.Len())
}

func TestStore_StatementVersions(t *testing.T) {
	store := service.NewStore()

	assert.Zero(t, store.StatementVersion("stmt-1"))

	store.BumpStatement("stmt-1")
	store.BumpStatement("stmt-1")
	store.BumpStatement("stmt-2")

	assert.Equal(t, int64(2), store.StatementVersion("stmt-1"))
	assert.Equal(t, int64(1), store.StatementVersion("stmt-2"))

	// Empty ids are ignored.
	store.BumpStatement("")
	assert.Zero(t, store.StatementVersion(""))
}
