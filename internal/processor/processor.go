// Package processor replays an ordered transaction stream into final account
// balances.
//
// The processor owns all run state: the account map, the deposit/withdrawal
// reference index, and the FIFO work queue. Dispute-family records that
// reference a transaction not yet seen are pushed to the back of the queue
// and retried; the stream stays in arrival order for everything else.
package processor

import (
	"log/slog"

	"github.com/mmynk/payrun/internal/engine"
	"github.com/mmynk/payrun/internal/metrics"
	"github.com/mmynk/payrun/internal/models"
)

// Result is the outcome of one full replay.
type Result struct {
	// Accounts maps each client seen in the stream to its final state.
	Accounts map[uint16]*models.Account

	// Unresolved holds dispute-family records whose referenced transaction
	// never appeared, in the order they were dropped. They had no effect on
	// any account.
	Unresolved []models.Transaction
}

// Processor replays transactions. It is single-threaded; one Processor value
// should not be shared across goroutines.
type Processor struct {
	metrics *metrics.Metrics
}

// New creates a Processor. m may be nil to disable metrics.
func New(m *metrics.Metrics) *Processor {
	return &Processor{metrics: m}
}

// Process consumes txs in order and returns the final per-client accounts.
//
// Deposits and withdrawals settle immediately and enter the reference index
// under their TxID. Dispute-family records settle against the indexed
// original when it exists and are otherwise requeued. The requeue is bounded:
// once every remaining record has been deferred with no settlement in
// between (one full rotation with no progress), the rest can never resolve
// and is drained into Result.Unresolved.
func (p *Processor) Process(txs []models.Transaction) *Result {
	queue := make([]models.Transaction, len(txs))
	copy(queue, txs)

	accounts := make(map[uint16]*models.Account)
	refs := make(map[uint32]*models.Transaction)

	var unresolved []models.Transaction
	stalled := 0

	for head := 0; head < len(queue); head++ {
		if stalled > 0 && stalled >= len(queue)-head {
			// Everything left has already been around once without a
			// single settlement; no future iteration can index the
			// transaction they reference.
			unresolved = append(unresolved, queue[head:]...)
			break
		}

		tx := queue[head]

		acc, ok := accounts[tx.ClientID]
		if !ok {
			acc = models.NewAccount(tx.ClientID)
			accounts[tx.ClientID] = acc
		}

		if tx.Type.Monetary() {
			p.record(&tx, engine.Settle(acc, &tx, nil))
			// Indexed even when settlement no-opped: the original indexes
			// every deposit/withdrawal, and disputes against an amount-less
			// record no-op at settlement time instead.
			indexed := tx
			refs[tx.TxID] = &indexed
			stalled = 0
			continue
		}

		ref, ok := refs[tx.TxID]
		if !ok {
			slog.Debug("deferring transaction, reference not yet seen",
				"type", tx.Type, "client", tx.ClientID, "tx", tx.TxID)
			p.metrics.Deferred()
			queue = append(queue, tx)
			stalled++
			continue
		}

		p.record(&tx, engine.Settle(acc, &tx, ref))
		stalled = 0
	}

	if len(unresolved) > 0 {
		p.metrics.Unresolved(len(unresolved))
		for _, tx := range unresolved {
			slog.Warn("dropping unresolvable transaction",
				"type", tx.Type, "client", tx.ClientID, "tx", tx.TxID)
		}
	}

	return &Result{Accounts: accounts, Unresolved: unresolved}
}

// record translates a settlement outcome into metrics and debug logs.
func (p *Processor) record(tx *models.Transaction, out engine.Outcome) {
	switch out {
	case engine.OutcomeApplied:
		p.metrics.Settled(tx.Type)
	case engine.OutcomeInsufficientFunds:
		slog.Debug("withdrawal dropped, insufficient funds",
			"client", tx.ClientID, "tx", tx.TxID, "amount", tx.Amount)
		p.metrics.InsufficientFunds()
	case engine.OutcomeMissingAmount:
		slog.Debug("record ignored, missing amount",
			"type", tx.Type, "client", tx.ClientID, "tx", tx.TxID)
		p.metrics.MissingAmount()
	}
}
