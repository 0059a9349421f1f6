package transactions_test

import (
	"testing"
	"time"

	"github.com/assetchain/assetchain/internal/crypto"
	"github.com/assetchain/assetchain/internal/currency"
	"github.com/assetchain/assetchain/internal/currency/status"
	"github.com/assetchain/assetchain/internal/currency/transactions"
	"github.com/assetchain/assetchain/internal/currency/transactions/builders"
	"github.com/assetchain/assetchain/internal/keyvaluedb/memorydb"
	"github.com/assetchain/assetchain/internal/view"
	"github.com/stretchr/testify/require"
)

type sinkEvent struct {
	kind string
	ok   bool
}

type recordingSink struct {
	verified []sinkEvent
	executed []sinkEvent
}

func (s *recordingSink) TransactionVerified(kind string, ok bool) {
	s.verified = append(s.verified, sinkEvent{kind, ok})
}

func (s *recordingSink) TransactionExecuted(kind string, ok bool, _ time.Duration) {
	s.executed = append(s.executed, sinkEvent{kind, ok})
}

func TestProcessorReportsOutcomesToSink(t *testing.T) {
	l := newTestLedger(t)
	sink := &recordingSink{}
	l.proc = transactions.NewProcessor(transactions.NewRegistry(), sink)

	alice := newAccount(t)
	bob := newAccount(t)
	l.fund(alice.pub, 100)

	ok := builders.NewTransfer(alice.pub, bob.pub, 30).Build(alice.sec)
	l.apply(ok)

	// Execution failure: recorded in the status ledger, reported as not ok.
	broke := builders.NewTransfer(alice.pub, bob.pub, 1000).Seed(1).Build(alice.sec)
	l.apply(broke)

	// Verification failure: reported, never executed.
	forged := builders.NewTransfer(alice.pub, bob.pub, 1).Build(bob.sec)
	require.ErrorIs(t, l.proc.Apply(l.fork, forged.Bytes()), transactions.ErrTxRejected)

	require.Equal(t, []sinkEvent{
		{"transfer", true},
		{"transfer", true},
		{"transfer", false},
	}, sink.verified)
	require.Equal(t, []sinkEvent{
		{"transfer", true},
		{"transfer", false},
	}, sink.executed)
}

func TestProcessorRejectsGarbageBytes(t *testing.T) {
	proc := transactions.NewProcessor(transactions.NewRegistry(), nil)
	fork := view.NewFork(memorydb.New())

	require.Error(t, proc.Apply(fork, []byte("not a message")))
}

func TestApplyBlockStopsAtFirstRejection(t *testing.T) {
	l := newTestLedger(t)
	alice := newAccount(t)
	bob := newAccount(t)
	carol := newAccount(t)
	l.fund(alice.pub, 100)

	first := builders.NewTransfer(alice.pub, bob.pub, 10).Build(alice.sec)
	forged := builders.NewTransfer(alice.pub, carol.pub, 10).Seed(1).Build(carol.sec)
	never := builders.NewTransfer(alice.pub, carol.pub, 10).Seed(2).Build(alice.sec)

	err := l.proc.ApplyBlock(l.fork, [][]byte{first.Bytes(), forged.Bytes(), never.Bytes()})
	require.ErrorIs(t, err, transactions.ErrTxRejected)

	// The first transaction went through before the abort.
	require.Equal(t, status.Success, l.statusOf(first))
	require.EqualValues(t, 10, l.wallet(bob.pub).Balance)
	_, found, err := status.Get(l.fork, never.Hash())
	require.NoError(t, err)
	require.False(t, found)
}

func TestApplyBlockContinuesPastExecutionFailures(t *testing.T) {
	l := newTestLedger(t)
	alice := newAccount(t)
	bob := newAccount(t)
	l.fund(alice.pub, 100)

	broke := builders.NewTransfer(alice.pub, bob.pub, 1000).Build(alice.sec)
	fine := builders.NewTransfer(alice.pub, bob.pub, 10).Seed(1).Build(alice.sec)

	require.NoError(t, l.proc.ApplyBlock(l.fork, [][]byte{broke.Bytes(), fine.Bytes()}))
	require.Equal(t, uint8(currency.ErrInsufficientFunds), l.statusOf(broke))
	require.Equal(t, status.Success, l.statusOf(fine))
}

func TestCalculateFeesQuotesPayers(t *testing.T) {
	l := newTestLedger(t)
	reg := transactions.NewRegistry()
	seller := newAccount(t)
	buyer := newAccount(t)

	b := builders.NewTrade(buyer.pub, seller.pub).
		AddAsset("foobar", 1, 1).
		FeeStrategy(transactions.FeeStrategyRecipientAndSender)
	msg := b.Build(crypto.Sign(b.OfferBytes(), seller.sec), buyer.sec)

	tx, err := reg.DecodeBytes(msg.Bytes())
	require.NoError(t, err)
	calc, ok := tx.(transactions.FeesCalculator)
	require.True(t, ok)

	table, err := calc.CalculateFees(l.fork)
	require.NoError(t, err)
	require.EqualValues(t, flatFee-flatFee/2, table[seller.pub])
	require.EqualValues(t, flatFee/2, table[buyer.pub])
}
