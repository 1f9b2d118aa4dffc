package ledger_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clearledger/recon-backend/internal/domain/ledger"
)

func TestTransaction_Amount(t *testing.T) {
	t.Run("debit wins when populated", func(t *testing.T) {
		txn := ledger.Transaction{Debit: 120.50}
		assert.Equal(t, 120.50, txn.Amount())
	})

	t.Run("falls back to credit", func(t *testing.T) {
		txn := ledger.Transaction{Credit: 75.25}
		assert.Equal(t, 75.25, txn.Amount())
	})

	t.Run("zero when neither side set", func(t *testing.T) {
		txn := ledger.Transaction{}
		assert.Zero(t, txn.Amount())
	})

	t.Run("negative amounts are normalized", func(t *testing.T) {
		txn := ledger.Transaction{Credit: -40}
		assert.Equal(t, 40.0, txn.Amount())
	})
}

func TestTransaction_LinkFor(t *testing.T) {
	txn := ledger.Transaction{
		LinkedStatements: []ledger.StatementLink{
			{Statement: ledger.RefID("stmt-1"), AdjustmentAmount: 5},
			{Statement: ledger.RefID("stmt-2"), AdjustmentAmount: -3},
		},
	}

	link, ok := txn.LinkFor("stmt-2")
	assert.True(t, ok)
	assert.Equal(t, -3.0, link.AdjustmentAmount)

	_, ok = txn.LinkFor("stmt-9")
	assert.False(t, ok)
	assert.True(t, txn.IsLinkedTo("stmt-1"))
}

func TestTransaction_Validate(t *testing.T) {
	t.Run("debit and credit are mutually exclusive", func(t *testing.T) {
		txn := ledger.Transaction{
			Debit:       100,
			Credit:      50,
			AccountType: ledger.AccountTypeBank,
		}
		err := txn.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "mutually exclusive")
	})

	t.Run("single-sided transaction is valid", func(t *testing.T) {
		txn := ledger.Transaction{Debit: 100, AccountType: ledger.AccountTypeBank}
		assert.NoError(t, txn.Validate())
	})

	t.Run("note over limit is rejected", func(t *testing.T) {
		txn := ledger.Transaction{
			Debit:       10,
			AccountType: ledger.AccountTypeCash,
			Note:        strings.Repeat("x", ledger.MaxNoteLength+1),
		}
		err := txn.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "note exceeds")
	})

	t.Run("unknown account type is rejected", func(t *testing.T) {
		txn := ledger.Transaction{Debit: 10, AccountType: "wallet"}
		assert.Error(t, txn.Validate())
	})
}

func TestTransaction_ValidateNew(t *testing.T) {
	t.Run("collects all problems into one message", func(t *testing.T) {
		txn := ledger.Transaction{AccountType: "wallet"}
		err := txn.ValidateNew()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "description is required")
		assert.Contains(t, err.Error(), "amount must be greater than zero")
		assert.Contains(t, err.Error(), "unknown account type")
	})

	t.Run("valid new transaction passes", func(t *testing.T) {
		txn := ledger.Transaction{
			Description: "Office chairs",
			Debit:       499.99,
			AccountType: ledger.AccountTypeBank,
		}
		assert.NoError(t, txn.ValidateNew())
	})
}
