package dto

import (
	"encoding/json"
	"strconv"
)

// UpdateTransactionRequest carries the editable transaction fields. Nil
// fields are left untouched.
type UpdateTransactionRequest struct {
	Category *string `json:"category,omitempty"`
	Type     *string `json:"type,omitempty"`
	Note     *string `json:"note,omitempty"`
}

// AdjustmentRequest sets the adjustment amount on one statement link.
type AdjustmentRequest struct {
	StatementID string     `json:"statementId"`
	Amount      FlexAmount `json:"adjustmentAmount"`
}

// UnlinkRequest removes a statement link from a transaction.
type UnlinkRequest struct {
	StatementID string `json:"statementId"`
}

// MatchRequest associates a document with a transaction. Confirmed must be
// true when the transaction is already perfectly matched.
type MatchRequest struct {
	DocumentID string `json:"documentId"`
	Confirmed  bool   `json:"confirmed,omitempty"`
}

// FlexAmount accepts both a JSON number and a numeric string; anything
// unparsable becomes 0, matching how the dashboard submits adjustment
// edits from a free-form input.
type FlexAmount float64

// UnmarshalJSON implements json.Unmarshaler.
func (a *FlexAmount) UnmarshalJSON(data []byte) error {
	var number float64
	if err := json.Unmarshal(data, &number); err == nil {
		*a = FlexAmount(number)
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		*a = 0
		return nil
	}
	parsed, err := strconv.ParseFloat(text, 64)
	if err != nil {
		*a = 0
		return nil
	}
	*a = FlexAmount(parsed)
	return nil
}

// Float64 returns the parsed value.
func (a FlexAmount) Float64() float64 {
	return float64(a)
}
