// Package ledger defines the transaction, statement and document model shared
// by the reconciliation core, the upstream API client and the HTTP surface.
//
// Amounts follow the upstream convention: a transaction carries either a debit
// or a credit, never both, and the effective amount is the absolute value of
// whichever side is populated.
package ledger

import (
	"math"
	"time"
)

// AccountType identifies which kind of account a transaction belongs to.
type AccountType string

const (
	AccountTypeBank       AccountType = "bank_account"
	AccountTypeCreditCard AccountType = "credit_card"
	AccountTypeCash       AccountType = "cash_account"
)

// TransactionType is the business/personal classification.
type TransactionType string

const (
	TypeBusiness TransactionType = "Business"
	TypePersonal TransactionType = "Personal"
)

// Transaction is a single ledger entry fetched from the upstream API.
type Transaction struct {
	ID               string          `json:"_id"`
	Date             time.Time       `json:"date"`
	Description      string          `json:"description"`
	Vendor           string          `json:"vendor,omitempty"`
	Category         string          `json:"category,omitempty"`
	Type             TransactionType `json:"type,omitempty"`
	Debit            float64         `json:"debit,omitempty"`
	Credit           float64         `json:"credit,omitempty"`
	AccountType      AccountType     `json:"accountType"`
	AccountID        string          `json:"accountId"`
	StatementID      string          `json:"statementId,omitempty"`
	Note             string          `json:"note,omitempty"`
	MatchedDocuments []Document      `json:"matchedDocuments,omitempty"`
	LinkedStatements []StatementLink `json:"linkedCreditCardStatements,omitempty"`
}

// Amount returns the effective unsigned amount of the transaction.
// Debit takes precedence when populated; a transaction with neither side
// set has amount 0.
func (t *Transaction) Amount() float64 {
	if t.Debit != 0 {
		return math.Abs(t.Debit)
	}
	return math.Abs(t.Credit)
}

// Signed returns debit minus credit, the net charge as seen from a
// credit-card account.
func (t *Transaction) Signed() float64 {
	return t.Debit - t.Credit
}

// LinkFor returns the statement link for the given statement id, if any.
func (t *Transaction) LinkFor(statementID string) (StatementLink, bool) {
	for _, link := range t.LinkedStatements {
		if link.Statement.ID() == statementID {
			return link, true
		}
	}
	return StatementLink{}, false
}

// IsLinkedTo reports whether the transaction carries a link to the statement.
func (t *Transaction) IsLinkedTo(statementID string) bool {
	_, ok := t.LinkFor(statementID)
	return ok
}
