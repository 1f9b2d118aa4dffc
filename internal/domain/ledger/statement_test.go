package ledger_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearledger/recon-backend/internal/domain/ledger"
)

func TestStatementRef_UnmarshalJSON(t *testing.T) {
	t.Run("bare id string", func(t *testing.T) {
		var ref ledger.StatementRef
		require.NoError(t, json.Unmarshal([]byte(`"stmt-42"`), &ref))

		assert.Equal(t, "stmt-42", ref.ID())
		_, embedded := ref.Embedded()
		assert.False(t, embedded)
		_, ok := ref.Total()
		assert.False(t, ok)
	})

	t.Run("populated statement object", func(t *testing.T) {
		payload := `{"_id":"stmt-42","fileName":"visa-march.pdf","total":1523.40}`

		var ref ledger.StatementRef
		require.NoError(t, json.Unmarshal([]byte(payload), &ref))

		assert.Equal(t, "stmt-42", ref.ID())
		total, ok := ref.Total()
		assert.True(t, ok)
		assert.Equal(t, 1523.40, total)
	})

	t.Run("statementTotal alias is honored", func(t *testing.T) {
		payload := `{"_id":"stmt-7","statementTotal":880.00}`

		var ref ledger.StatementRef
		require.NoError(t, json.Unmarshal([]byte(payload), &ref))

		total, ok := ref.Total()
		assert.True(t, ok)
		assert.Equal(t, 880.00, total)
	})

	t.Run("total field wins over alias", func(t *testing.T) {
		payload := `{"_id":"stmt-7","total":900.00,"statementTotal":880.00}`

		var ref ledger.StatementRef
		require.NoError(t, json.Unmarshal([]byte(payload), &ref))

		total, _ := ref.Total()
		assert.Equal(t, 900.00, total)
	})
}

func TestStatementRef_MarshalJSON(t *testing.T) {
	t.Run("bare ref writes the id", func(t *testing.T) {
		data, err := json.Marshal(ledger.RefID("stmt-1"))
		require.NoError(t, err)
		assert.JSONEq(t, `"stmt-1"`, string(data))
	})

	t.Run("embedded ref writes the object", func(t *testing.T) {
		ref := ledger.RefEmbedded(ledger.Statement{ID: "stmt-1", Total: 100})
		data, err := json.Marshal(ref)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"total":100`)
	})
}

func TestStatementLink_RoundTrip(t *testing.T) {
	payload := `{"statementId":{"_id":"stmt-3","total":250.00},"adjustmentAmount":12.5}`

	var link ledger.StatementLink
	require.NoError(t, json.Unmarshal([]byte(payload), &link))

	assert.Equal(t, "stmt-3", link.Statement.ID())
	assert.Equal(t, 12.5, link.AdjustmentAmount)
}
