package ledger

import (
	"encoding/json"
	"time"
)

// Statement is a billing-period record with an authoritative total.
// Statements are read-only from this service's perspective.
type Statement struct {
	ID       string          `json:"_id"`
	FileName string          `json:"fileName,omitempty"`
	Period   StatementPeriod `json:"statementPeriod"`
	Total    float64         `json:"total"`
}

// StatementPeriod is the date range a statement covers.
type StatementPeriod struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// StatementRef is a reference to a statement that may arrive from upstream
// either as a bare id string or as a populated statement object. All code
// goes through ID/Total instead of inspecting the raw JSON shape.
type StatementRef struct {
	id       string
	embedded *Statement
}

// RefID builds a bare (unpopulated) reference.
func RefID(id string) StatementRef {
	return StatementRef{id: id}
}

// RefEmbedded builds a populated reference.
func RefEmbedded(s Statement) StatementRef {
	return StatementRef{id: s.ID, embedded: &s}
}

// ID returns the statement id regardless of reference shape.
func (r StatementRef) ID() string {
	if r.embedded != nil {
		return r.embedded.ID
	}
	return r.id
}

// Embedded returns the populated statement when the reference carries one.
func (r StatementRef) Embedded() (*Statement, bool) {
	return r.embedded, r.embedded != nil
}

// Total returns the embedded statement total. ok is false for bare
// references, where callers fall back to external or derived totals.
func (r StatementRef) Total() (float64, bool) {
	if r.embedded == nil {
		return 0, false
	}
	return r.embedded.Total, true
}

// UnmarshalJSON accepts both wire shapes: "65ab..." and {"_id": ..., "total": ...}.
// Some upstream payloads carry the total under "statementTotal" instead of
// "total"; whichever is non-zero wins.
func (r *StatementRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*r = StatementRef{id: id}
		return nil
	}

	var payload struct {
		Statement
		StatementTotal float64 `json:"statementTotal"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	s := payload.Statement
	if s.Total == 0 && payload.StatementTotal != 0 {
		s.Total = payload.StatementTotal
	}
	*r = StatementRef{id: s.ID, embedded: &s}
	return nil
}

// MarshalJSON writes the populated object when present, else the bare id.
func (r StatementRef) MarshalJSON() ([]byte, error) {
	if r.embedded != nil {
		return json.Marshal(r.embedded)
	}
	return json.Marshal(r.id)
}

// StatementLink records that a bank/cash transaction contributes a payment
// toward a credit-card statement, with an optional manual adjustment.
type StatementLink struct {
	Statement        StatementRef `json:"statementId"`
	AdjustmentAmount float64      `json:"adjustmentAmount"`
}
