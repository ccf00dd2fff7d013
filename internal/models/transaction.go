package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TxType identifies what a transaction record does to an account.
type TxType string

const (
	TxDeposit    TxType = "deposit"
	TxWithdrawal TxType = "withdrawal"
	TxDispute    TxType = "dispute"
	TxResolve    TxType = "resolve"
	TxChargeback TxType = "chargeback"
)

// ParseTxType converts an input field into a TxType. Matching is
// case-insensitive; unknown values are an error.
func ParseTxType(s string) (TxType, error) {
	switch t := TxType(strings.ToLower(s)); t {
	case TxDeposit, TxWithdrawal, TxDispute, TxResolve, TxChargeback:
		return t, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// Monetary reports whether the type carries its own amount. Only monetary
// transactions enter the reference index; the dispute family points back at
// them by transaction ID.
func (t TxType) Monetary() bool {
	return t == TxDeposit || t == TxWithdrawal
}

// Transaction is one immutable record from the input stream.
type Transaction struct {
	// Type is the transaction type.
	Type TxType

	// ClientID is the client whose account this record settles against.
	ClientID uint16

	// TxID is unique among deposits and withdrawals. Dispute, resolve and
	// chargeback records reuse the TxID of the transaction they reference.
	TxID uint32

	// Amount is the monetary amount, or nil when the record carries none.
	// Dispute-family records always have a nil Amount; their effective
	// amount is re-read from the referenced transaction at settlement time.
	Amount *decimal.Decimal
}
