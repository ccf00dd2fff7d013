// Package engine implements the settlement state machine: the rules by which
// a single transaction record mutates a client account.
//
// Settlement is pure in-place mutation with no I/O. Ordering, reference
// lookup and deferral are the processor's concern; the engine only ever sees
// one account, one transaction and (for the dispute family) the referenced
// original.
package engine

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/payrun/internal/models"
)

// Outcome describes what a settlement attempt did. Non-applied outcomes are
// silent no-ops by policy; callers may surface them as logs or metrics but
// they never change settlement results.
type Outcome int

const (
	// OutcomeApplied means the account was mutated.
	OutcomeApplied Outcome = iota

	// OutcomeMissingAmount means a required amount was absent: a monetary
	// record without one, or a referenced transaction without one.
	OutcomeMissingAmount

	// OutcomeInsufficientFunds means a withdrawal exceeded available funds
	// and was dropped.
	OutcomeInsufficientFunds

	// OutcomeMissingReference means a dispute-family record arrived with no
	// referenced transaction.
	OutcomeMissingReference
)

// Settle applies tx to acc in place. ref is the referenced deposit or
// withdrawal for dispute-family transactions and ignored otherwise.
//
// The dispute family always re-reads the amount from ref rather than from any
// intermediate state, so dispute/resolve/chargeback math is idempotent with
// respect to the amount. State-machine ordering is deliberately not enforced:
// a resolve without a prior dispute still moves funds, and a locked account
// still settles further transactions. Tightening either would change
// settlement outcomes.
func Settle(acc *models.Account, tx *models.Transaction, ref *models.Transaction) Outcome {
	switch tx.Type {
	case models.TxDeposit:
		if tx.Amount == nil {
			return OutcomeMissingAmount
		}
		acc.Available = acc.Available.Add(*tx.Amount)
		acc.Total = acc.Total.Add(*tx.Amount)

	case models.TxWithdrawal:
		if tx.Amount == nil {
			return OutcomeMissingAmount
		}
		if acc.Available.LessThan(*tx.Amount) {
			return OutcomeInsufficientFunds
		}
		acc.Available = acc.Available.Sub(*tx.Amount)
		acc.Total = acc.Total.Sub(*tx.Amount)

	case models.TxDispute:
		amount, out := refAmount(ref)
		if out != OutcomeApplied {
			return out
		}
		acc.Available = acc.Available.Sub(amount)
		acc.Held = acc.Held.Add(amount)

	case models.TxResolve:
		amount, out := refAmount(ref)
		if out != OutcomeApplied {
			return out
		}
		acc.Available = acc.Available.Add(amount)
		acc.Held = acc.Held.Sub(amount)

	case models.TxChargeback:
		amount, out := refAmount(ref)
		if out != OutcomeApplied {
			return out
		}
		acc.Held = acc.Held.Sub(amount)
		acc.Total = acc.Total.Sub(amount)
		acc.Locked = true
	}

	return OutcomeApplied
}

func refAmount(ref *models.Transaction) (decimal.Decimal, Outcome) {
	if ref == nil {
		return decimal.Zero, OutcomeMissingReference
	}
	if ref.Amount == nil {
		return decimal.Zero, OutcomeMissingAmount
	}
	return *ref.Amount, OutcomeApplied
}
