package transactions_test

import (
	"testing"

	"github.com/assetchain/assetchain/internal/currency/transactions"
	"github.com/stretchr/testify/require"
)

func TestSplitFeeSumsExactly(t *testing.T) {
	for _, fee := range []uint64{0, 1, 2, 9, 10, 11, 1<<64 - 1} {
		first, second := transactions.SplitFee(fee)
		require.Equal(t, fee, first+second)
		require.True(t, first >= second, "odd unit must land on the first party")
	}
}

func TestFeeStrategyFromWire(t *testing.T) {
	for wire, want := range map[uint8]transactions.FeeStrategy{
		1: transactions.FeeStrategyRecipient,
		2: transactions.FeeStrategySender,
		3: transactions.FeeStrategyRecipientAndSender,
		4: transactions.FeeStrategyIntermediary,
	} {
		got, ok := transactions.FeeStrategyFromWire(wire)
		require.True(t, ok)
		require.Equal(t, want, got)
	}
	for _, wire := range []uint8{0, 5, 255} {
		_, ok := transactions.FeeStrategyFromWire(wire)
		require.False(t, ok, "wire value %d", wire)
	}
}

func TestFeeStrategyValidity(t *testing.T) {
	require.True(t, transactions.FeeStrategyRecipient.ValidFor(false))
	require.True(t, transactions.FeeStrategyRecipient.ValidFor(true))
	require.False(t, transactions.FeeStrategyIntermediary.ValidFor(false))
	require.True(t, transactions.FeeStrategyIntermediary.ValidFor(true))
}
