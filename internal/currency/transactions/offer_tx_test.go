package transactions_test

import (
	"testing"

	"github.com/assetchain/assetchain/internal/currency"
	"github.com/assetchain/assetchain/internal/currency/assets"
	"github.com/assetchain/assetchain/internal/currency/offers"
	"github.com/assetchain/assetchain/internal/currency/status"
	"github.com/assetchain/assetchain/internal/currency/transactions"
	"github.com/assetchain/assetchain/internal/currency/transactions/builders"
	"github.com/stretchr/testify/require"
)

func TestAskOfferLandsInBook(t *testing.T) {
	l := newTestLedger(t)
	seller := newAccount(t)
	id := l.registerAsset(seller.pub, "foobar", 5, assets.Fees{})
	l.fund(seller.pub, 0, assets.NewAssetBundle(id, 5))

	msg := builders.NewAskOffer(seller.pub, assets.NewTradeAsset(id, 5, 60)).Build(seller.sec)
	l.apply(msg)

	require.Equal(t, status.Success, l.statusOf(msg))
	book, err := offers.Fetch(l.fork, id)
	require.NoError(t, err)
	best, ok := book.BestAsk()
	require.True(t, ok)
	require.EqualValues(t, 60, best.Price)
	require.Len(t, best.Offers, 1)
	require.Equal(t, seller.pub, best.Offers[0].Wallet)
	require.Equal(t, msg.Hash(), best.Offers[0].TxHash)
	// Placing an offer holds nothing.
	require.EqualValues(t, 5, l.wallet(seller.pub).AmountOf(id))
}

func TestBidOfferLandsInBook(t *testing.T) {
	l := newTestLedger(t)
	creator := newAccount(t)
	buyer := newAccount(t)
	id := l.registerAsset(creator.pub, "foobar", 5, assets.Fees{})
	l.fund(buyer.pub, 500)

	msg := builders.NewBidOffer(buyer.pub, assets.NewTradeAsset(id, 5, 60)).Build(buyer.sec)
	l.apply(msg)

	require.Equal(t, status.Success, l.statusOf(msg))
	book, err := offers.Fetch(l.fork, id)
	require.NoError(t, err)
	best, ok := book.BestBid()
	require.True(t, ok)
	require.EqualValues(t, 60, best.Price)
	require.EqualValues(t, 500, l.wallet(buyer.pub).Balance)
}

func TestAskOfferNeedsHoldings(t *testing.T) {
	l := newTestLedger(t)
	seller := newAccount(t)
	id := l.registerAsset(seller.pub, "foobar", 5, assets.Fees{})
	l.fund(seller.pub, 0, assets.NewAssetBundle(id, 2))

	msg := builders.NewAskOffer(seller.pub, assets.NewTradeAsset(id, 5, 60)).Build(seller.sec)
	l.apply(msg)

	require.Equal(t, uint8(currency.ErrInsufficientAssetAmount), l.statusOf(msg))
	book, err := offers.Fetch(l.fork, id)
	require.NoError(t, err)
	_, ok := book.BestAsk()
	require.False(t, ok)
}

func TestBidOfferNeedsFunds(t *testing.T) {
	l := newTestLedger(t)
	creator := newAccount(t)
	buyer := newAccount(t)
	id := l.registerAsset(creator.pub, "foobar", 5, assets.Fees{})
	l.fund(buyer.pub, 299)

	// 5 at price 60 needs 300.
	msg := builders.NewBidOffer(buyer.pub, assets.NewTradeAsset(id, 5, 60)).Build(buyer.sec)
	l.apply(msg)

	require.Equal(t, uint8(currency.ErrInsufficientFunds), l.statusOf(msg))
}

func TestOffersOnUnknownAssetFail(t *testing.T) {
	l := newTestLedger(t)
	anyone := newAccount(t)
	ghost := assets.NewAssetID("ghost", anyone.pub)
	l.fund(anyone.pub, 500)

	ask := builders.NewAskOffer(anyone.pub, assets.NewTradeAsset(ghost, 1, 1)).Build(anyone.sec)
	l.apply(ask)
	require.Equal(t, uint8(currency.ErrAssetNotFound), l.statusOf(ask))

	bid := builders.NewBidOffer(anyone.pub, assets.NewTradeAsset(ghost, 1, 1)).Seed(1).Build(anyone.sec)
	l.apply(bid)
	require.Equal(t, uint8(currency.ErrAssetNotFound), l.statusOf(bid))
}

func TestZeroPricedOfferIsRejected(t *testing.T) {
	l := newTestLedger(t)
	anyone := newAccount(t)
	id := l.registerAsset(anyone.pub, "foobar", 5, assets.Fees{})

	msg := builders.NewAskOffer(anyone.pub, assets.NewTradeAsset(id, 5, 0)).Build(anyone.sec)
	require.ErrorIs(t, l.proc.Apply(l.fork, msg.Bytes()), transactions.ErrTxRejected)
}

func TestOverflowingOfferValueIsRejected(t *testing.T) {
	l := newTestLedger(t)
	creator := newAccount(t)
	buyer := newAccount(t)
	seller := newAccount(t)
	id := l.registerAsset(creator.pub, "foobar", 5, assets.Fees{})
	l.fund(buyer.pub, 1)
	l.fund(seller.pub, 0, assets.NewAssetBundle(id, 1<<33))

	// 2^32 units at price 2^32 wraps the lot value to zero, which would
	// make any wallet look solvent for it.
	lot := assets.NewTradeAsset(id, 1<<32, 1<<32)

	bid := builders.NewBidOffer(buyer.pub, lot).Build(buyer.sec)
	l.apply(bid)
	require.Equal(t, uint8(currency.ErrInvalidTransaction), l.statusOf(bid))

	ask := builders.NewAskOffer(seller.pub, lot).Build(seller.sec)
	l.apply(ask)
	require.Equal(t, uint8(currency.ErrInvalidTransaction), l.statusOf(ask))

	book, err := offers.Fetch(l.fork, id)
	require.NoError(t, err)
	require.Empty(t, book.Bids)
	require.Empty(t, book.Asks)
}
