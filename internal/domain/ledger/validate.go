package ledger

import (
	"fmt"
	"strings"
)

// MaxNoteLength is the upstream limit on transaction notes.
const MaxNoteLength = 500

// Validate checks invariants that must hold for any transaction, fetched or
// locally constructed. All problems are collected and joined into a single
// error so the caller can surface one message before attempting a network
// call.
func (t *Transaction) Validate() error {
	var problems []string

	if t.Debit != 0 && t.Credit != 0 {
		problems = append(problems, "debit and credit are mutually exclusive")
	}
	if len(t.Note) > MaxNoteLength {
		problems = append(problems, fmt.Sprintf("note exceeds %d characters", MaxNoteLength))
	}
	switch t.AccountType {
	case AccountTypeBank, AccountTypeCreditCard, AccountTypeCash:
	default:
		problems = append(problems, fmt.Sprintf("unknown account type %q", t.AccountType))
	}

	return joinProblems(problems)
}

// ValidateNew applies the stricter rules for a transaction about to be
// created: everything Validate checks, plus a description and a positive
// amount.
func (t *Transaction) ValidateNew() error {
	var problems []string

	if strings.TrimSpace(t.Description) == "" {
		problems = append(problems, "description is required")
	}
	if t.Amount() <= 0 {
		problems = append(problems, "amount must be greater than zero")
	}
	if err := t.Validate(); err != nil {
		problems = append(problems, err.Error())
	}

	return joinProblems(problems)
}

func joinProblems(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%s", strings.Join(problems, "; "))
}
