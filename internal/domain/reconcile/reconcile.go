// Package reconcile computes statement reconciliation: how much of a
// credit-card statement has been paid by the bank transactions linked to it,
// and whether the statement is balanced, still owed, or overpaid.
//
// Everything here is pure arithmetic over a transaction slice. There is no
// I/O and no caching; callers recompute from the current transaction state
// whenever they need a figure.
//
// Example usage:
//
//	cfg := reconcile.DefaultConfig()
//	summary := reconcile.ReconcileStatement(cfg, stmtID, transactions, nil)
//	if summary.Status == reconcile.StatusRemaining {
//		// statement still has a balance owed
//	}
package reconcile

import (
	"math"

	"github.com/clearledger/recon-backend/internal/domain/ledger"
)

// BuildStatementTotals indexes statement totals by id from whatever embedded
// statement objects the transaction set carries. Bare id references are
// skipped; their totals are resolved later via the external map or the
// derived card total.
//
// When two transactions embed the same statement with different totals the
// later one in input order wins. The server is the source of truth, so the
// merge is deliberately non-strict.
func BuildStatementTotals(txns []ledger.Transaction) map[string]float64 {
	totals := make(map[string]float64)
	for _, t := range txns {
		for _, link := range t.LinkedStatements {
			if total, ok := link.Statement.Total(); ok {
				totals[link.Statement.ID()] = total
			}
		}
	}
	return totals
}

// FindLinkedTransactions returns every bank-account transaction that carries
// a link to the statement. Credit-card-side transactions for the same
// statement are the liability being paid, not payments, and are excluded.
func FindLinkedTransactions(statementID string, txns []ledger.Transaction) []ledger.Transaction {
	var linked []ledger.Transaction
	for _, t := range txns {
		if t.AccountType != ledger.AccountTypeBank {
			continue
		}
		if t.IsLinkedTo(statementID) {
			linked = append(linked, t)
		}
	}
	return linked
}

// AggregatePayments sums the payment amounts and manual adjustments that the
// linked transactions contribute toward the statement. The adjustment comes
// from the specific link matching the statement id, not from the whole link
// list.
func AggregatePayments(statementID string, linked []ledger.Transaction) (totalBankPayments, totalAdjustments float64) {
	for _, t := range linked {
		totalBankPayments += t.Amount()
		if link, ok := t.LinkFor(statementID); ok {
			totalAdjustments += link.AdjustmentAmount
		}
	}
	return totalBankPayments, totalAdjustments
}

// DeriveCardTotal reconstructs a statement total from the credit-card
// transactions imported for that statement, summing debit minus credit: the
// net charges on the card for the billing period.
func DeriveCardTotal(statementID string, txns []ledger.Transaction) float64 {
	var total float64
	for _, t := range txns {
		if t.AccountType == ledger.AccountTypeCreditCard && t.StatementID == statementID {
			total += t.Signed()
		}
	}
	return total
}

// ResolveStatementTotal finds the statement total using the three-tier
// priority order: embedded statement object, externally supplied totals map,
// derived card total. A zero at one tier falls through to the next.
func ResolveStatementTotal(statementID string, txns []ledger.Transaction, external map[string]float64) float64 {
	if total := BuildStatementTotals(txns)[statementID]; total != 0 {
		return total
	}
	if total := external[statementID]; total != 0 {
		return total
	}
	return DeriveCardTotal(statementID, txns)
}

// Reconcile combines a statement total with aggregated payments and
// adjustments into the combined difference and its status.
//
// Sign convention: positive difference = remaining balance owed, negative =
// overpaid, within tolerance = balanced.
func Reconcile(cfg Config, statementTotal, totalBankPayments, totalAdjustments float64, linkedCount int) Summary {
	paid := totalBankPayments + totalAdjustments
	diff := statementTotal - paid

	status := StatusBalanced
	switch {
	case diff > cfg.Tolerance:
		status = StatusRemaining
	case diff < -cfg.Tolerance:
		status = StatusOverpaid
	}

	return Summary{
		StatementTotal:         statementTotal,
		TotalBankPayments:      totalBankPayments,
		TotalAdjustments:       totalAdjustments,
		CombinedPaidAmount:     paid,
		CombinedDifference:     diff,
		Status:                 status,
		LinkedTransactionCount: linkedCount,
		IsMultiTransaction:     linkedCount > 1,
	}
}

// ReconcileStatement is the end-to-end derivation for one statement: resolve
// the total, aggregate the linked payments, reconcile. It yields the same
// summary no matter which linked transaction's perspective prompted the
// call.
func ReconcileStatement(cfg Config, statementID string, txns []ledger.Transaction, external map[string]float64) Summary {
	total := ResolveStatementTotal(statementID, txns, external)
	linked := FindLinkedTransactions(statementID, txns)
	payments, adjustments := AggregatePayments(statementID, linked)

	summary := Reconcile(cfg, total, payments, adjustments, len(linked))
	summary.StatementID = statementID
	return summary
}

// IsBalanced reports whether a difference is within tolerance of zero.
func (c Config) IsBalanced(difference float64) bool {
	return math.Abs(difference) <= c.Tolerance
}
