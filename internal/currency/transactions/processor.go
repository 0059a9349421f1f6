package transactions

import (
	"errors"
	"fmt"
	"time"

	"github.com/assetchain/assetchain/internal/currency"
	"github.com/assetchain/assetchain/internal/currency/status"
	"github.com/assetchain/assetchain/internal/logger"
	"github.com/assetchain/assetchain/internal/metrics"
	"github.com/assetchain/assetchain/internal/view"
)

var log = logger.CreateForPackage()

// ErrTxRejected is returned by Apply when a transaction fails
// verification. Rejected transactions touch neither the ledger nor the
// status store.
var ErrTxRejected = errors.New("transaction rejected by verification")

// Processor is the single-threaded block-application loop: decode,
// verify, execute, record status. It owns the metrics sink; execution
// logic itself never touches a counter.
type Processor struct {
	registry *Registry
	sink     metrics.Sink
}

// NewProcessor creates a processor over the given registry. A nil sink
// discards metrics.
func NewProcessor(registry *Registry, sink metrics.Sink) *Processor {
	if sink == nil {
		sink = metrics.NoopSink{}
	}
	return &Processor{registry: registry, sink: sink}
}

// Apply processes one raw transaction against the fork. A verification
// failure returns ErrTxRejected. An expected execution failure is
// recorded into the status ledger and returns nil: the block continues.
// Any other error is fatal to block processing and propagates.
func (p *Processor) Apply(fork *view.Fork, rawTx []byte) error {
	tx, err := p.registry.DecodeBytes(rawTx)
	if err != nil {
		return fmt.Errorf("failed to decode transaction: %w", err)
	}

	ok := tx.Verify()
	p.sink.TransactionVerified(tx.Name(), ok)
	if !ok {
		log.Debug("tx %s %s: rejected by verification", tx.Name(), tx.Hash())
		return ErrTxRejected
	}

	start := time.Now()
	result := tx.Execute(fork)
	took := time.Since(start)

	var execErr currency.Error
	if result != nil && !errors.As(result, &execErr) {
		p.sink.TransactionExecuted(tx.Name(), false, took)
		return fmt.Errorf("fatal fault executing %s %s: %w", tx.Name(), tx.Hash(), result)
	}
	p.sink.TransactionExecuted(tx.Name(), result == nil, took)

	if result == nil {
		log.Debug("tx %s %s: ok", tx.Name(), tx.Hash())
	} else {
		log.Debug("tx %s %s: %v", tx.Name(), tx.Hash(), result)
	}
	return status.Store(fork, tx.Hash(), result)
}

// ApplyBlock applies an ordered transaction sequence to the fork,
// strictly sequentially. The first fatal fault aborts the whole block.
// Rejected transactions abort too: a proposer must never include them.
func (p *Processor) ApplyBlock(fork *view.Fork, rawTxs [][]byte) error {
	for i, rawTx := range rawTxs {
		if err := p.Apply(fork, rawTx); err != nil {
			return fmt.Errorf("tx %d: %w", i, err)
		}
	}
	return nil
}
