// Package matcher computes the match balance between a transaction and the
// documents (invoices, bills, receipts) matched against it. This is the
// non-credit-card counterpart of statement reconciliation: the transaction
// amount is compared with the sum of matched document totals.
//
// Example usage:
//
//	m := matcher.New(matcher.DefaultConfig())
//	result := m.Balance(txn)
//	if result.Status == matcher.StatusPerfect {
//		// fully matched; adding another document would force excess
//	}
package matcher

import (
	"math"

	"github.com/clearledger/recon-backend/internal/domain/ledger"
)

// Matcher computes match balances for transactions.
type Matcher struct {
	config Config
}

// New creates a matcher with the given config.
func New(config Config) *Matcher {
	return &Matcher{config: config}
}

// Balance compares the transaction amount against the sum of its matched
// document totals. Side-effect free; missing totals count as zero.
func (m *Matcher) Balance(t ledger.Transaction) Result {
	var matched float64
	for _, doc := range t.MatchedDocuments {
		matched += doc.Total
	}

	amount := t.Amount()
	diff := amount - matched

	var status Status
	switch {
	case len(t.MatchedDocuments) == 0:
		if amount > 0 {
			status = StatusUnmatched
		} else {
			status = StatusPerfect
		}
	case math.Abs(diff) <= m.config.AmountTolerance:
		status = StatusPerfect
	case diff > m.config.AmountTolerance:
		status = StatusRemaining
	default:
		status = StatusExcess
	}

	return Result{
		TransactionAmount: amount,
		MatchedAmount:     matched,
		BalanceDifference: diff,
		MatchedCount:      len(t.MatchedDocuments),
		Status:            status,
	}
}

// NeedsConfirmation reports whether adding another document match to the
// transaction requires an explicit confirmation step. A perfectly matched
// transaction would be pushed into excess by any further match.
func (m *Matcher) NeedsConfirmation(t ledger.Transaction) bool {
	return m.Balance(t).Status == StatusPerfect && len(t.MatchedDocuments) > 0
}
