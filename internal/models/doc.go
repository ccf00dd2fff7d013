// Package models defines the core domain models for payrun.
//
// # Models
//
//   - Account: a client's balance snapshot (available, held, total, locked)
//   - Transaction: one immutable input record from the transaction stream
//
// # Design Principles
//
//  1. **Exact money math**: all amounts are shopspring decimals, never floats
//  2. **Absent means absent**: Transaction.Amount is a pointer; nil models a
//     record that carries no amount (the entire dispute family, plus malformed
//     deposit/withdrawal rows)
//  3. **Immutable inputs**: Transactions are never modified after decoding;
//     only Accounts mutate, and only through the settlement engine
package models
