package models

import "github.com/shopspring/decimal"

// Account represents one client's balance state at a point in the replay.
//
// The invariant Total == Available + Held holds after every settlement step.
// Available may go negative through the dispute lifecycle (a dispute re-holds
// the original amount regardless of what has been withdrawn since); that is
// accepted ledger behavior.
type Account struct {
	// ClientID is the unique client identifier.
	ClientID uint16

	// Available is the amount usable for withdrawal.
	Available decimal.Decimal

	// Held is the amount frozen pending dispute resolution.
	Held decimal.Decimal

	// Total is Available + Held.
	Total decimal.Decimal

	// Locked is set irreversibly when a chargeback lands on the account.
	Locked bool
}

// NewAccount returns a fresh, unlocked account with zero funds.
func NewAccount(clientID uint16) *Account {
	return &Account{
		ClientID:  clientID,
		Available: decimal.Zero,
		Held:      decimal.Zero,
		Total:     decimal.Zero,
	}
}
