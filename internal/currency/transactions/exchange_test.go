package transactions_test

import (
	"testing"

	"github.com/assetchain/assetchain/internal/crypto"
	"github.com/assetchain/assetchain/internal/currency"
	"github.com/assetchain/assetchain/internal/currency/assets"
	"github.com/assetchain/assetchain/internal/currency/status"
	"github.com/assetchain/assetchain/internal/currency/transactions"
	"github.com/assetchain/assetchain/internal/currency/transactions/builders"
	"github.com/stretchr/testify/require"
)

func TestExchangeSwapsAssetsBothWays(t *testing.T) {
	l := newTestLedger(t)
	alice := newAccount(t)
	bob := newAccount(t)

	foo := l.registerAsset(alice.pub, "foo", 3, assets.Fees{})
	bar := l.registerAsset(bob.pub, "bar", 2, assets.Fees{})
	l.fund(alice.pub, 100, assets.NewAssetBundle(foo, 3))
	l.fund(bob.pub, 50, assets.NewAssetBundle(bar, 2))

	b := builders.NewExchange(alice.pub, bob.pub, 25).
		AddSenderAsset(assets.NewAssetBundle(foo, 3)).
		AddRecipientAsset(assets.NewAssetBundle(bar, 2))
	aliceSig := crypto.Sign(b.OfferBytes(), alice.sec)
	msg := b.Build(aliceSig, bob.sec)
	l.apply(msg)

	require.Equal(t, status.Success, l.statusOf(msg))
	// Bob pays the flat fee (recipient strategy) and receives 25 coins.
	require.EqualValues(t, 75, l.wallet(alice.pub).Balance)
	require.Zero(t, l.wallet(alice.pub).AmountOf(foo))
	require.EqualValues(t, 2, l.wallet(alice.pub).AmountOf(bar))
	require.EqualValues(t, 50-flatFee+25, l.wallet(bob.pub).Balance)
	require.EqualValues(t, 3, l.wallet(bob.pub).AmountOf(foo))
	require.Zero(t, l.wallet(bob.pub).AmountOf(bar))
	require.EqualValues(t, flatFee, l.wallet(l.treasury.pub).Balance)
}

func TestExchangeCollectsCreatorFee(t *testing.T) {
	l := newTestLedger(t)
	creator := newAccount(t)
	alice := newAccount(t)
	bob := newAccount(t)

	fees := assets.NewFees(assets.Fee{}, assets.NewFee(3, assets.Zero()), assets.Fee{})
	gem := l.registerAsset(creator.pub, "gem", 4, fees)
	l.fund(alice.pub, 100, assets.NewAssetBundle(gem, 4))
	l.fund(bob.pub, 100)

	b := builders.NewExchange(alice.pub, bob.pub, 0).
		AddSenderAsset(assets.NewAssetBundle(gem, 4)).
		FeeStrategy(transactions.FeeStrategySender)
	aliceSig := crypto.Sign(b.OfferBytes(), alice.sec)
	msg := b.Build(aliceSig, bob.sec)
	l.apply(msg)

	require.Equal(t, status.Success, l.statusOf(msg))
	require.EqualValues(t, 100-flatFee-3, l.wallet(alice.pub).Balance)
	require.EqualValues(t, 3, l.wallet(creator.pub).Balance)
	require.EqualValues(t, 4, l.wallet(bob.pub).AmountOf(gem))
}

func TestExchangeIntermediaryPaysCommission(t *testing.T) {
	l := newTestLedger(t)
	alice := newAccount(t)
	bob := newAccount(t)
	broker := newAccount(t)

	foo := l.registerAsset(alice.pub, "foo", 3, assets.Fees{})
	l.fund(alice.pub, 50, assets.NewAssetBundle(foo, 3))
	l.fund(bob.pub, 100)

	b := builders.NewExchangeIntermediary(alice.pub, bob.pub, broker.pub, 20, 5).
		AddSenderAsset(assets.NewAssetBundle(foo, 3))
	aliceSig := crypto.Sign(b.OfferBytes(), alice.sec)
	brokerSig := crypto.Sign(b.OfferBytes(), broker.sec)
	msg := b.Build(aliceSig, brokerSig, bob.sec)
	l.apply(msg)

	require.Equal(t, status.Success, l.statusOf(msg))
	// Bob pays the flat fee and the broker's commission on top of
	// receiving the 20-coin payment.
	require.EqualValues(t, 30, l.wallet(alice.pub).Balance)
	require.EqualValues(t, 100-flatFee+20-5, l.wallet(bob.pub).Balance)
	require.EqualValues(t, 3, l.wallet(bob.pub).AmountOf(foo))
	require.EqualValues(t, 5, l.wallet(broker.pub).Balance)
	require.EqualValues(t, flatFee, l.wallet(l.treasury.pub).Balance)
}

func TestExchangeFailsWhenRecipientLacksAssets(t *testing.T) {
	l := newTestLedger(t)
	alice := newAccount(t)
	bob := newAccount(t)

	foo := l.registerAsset(alice.pub, "foo", 3, assets.Fees{})
	bar := l.registerAsset(bob.pub, "bar", 2, assets.Fees{})
	l.fund(alice.pub, 100, assets.NewAssetBundle(foo, 3))
	l.fund(bob.pub, 100, assets.NewAssetBundle(bar, 1))

	b := builders.NewExchange(alice.pub, bob.pub, 0).
		AddSenderAsset(assets.NewAssetBundle(foo, 3)).
		AddRecipientAsset(assets.NewAssetBundle(bar, 2))
	aliceSig := crypto.Sign(b.OfferBytes(), alice.sec)
	msg := b.Build(aliceSig, bob.sec)
	l.apply(msg)

	require.Equal(t, uint8(currency.ErrInsufficientAssetAmount), l.statusOf(msg))
	// Only the flat fee sticks.
	require.EqualValues(t, 100-flatFee, l.wallet(bob.pub).Balance)
	require.EqualValues(t, 100, l.wallet(alice.pub).Balance)
	require.EqualValues(t, 3, l.wallet(alice.pub).AmountOf(foo))
	require.EqualValues(t, 1, l.wallet(bob.pub).AmountOf(bar))
}
