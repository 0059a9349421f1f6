package wallet

import (
	"math"
	"testing"

	"github.com/assetchain/assetchain/internal/crypto"
	"github.com/assetchain/assetchain/internal/currency"
	"github.com/assetchain/assetchain/internal/currency/assets"
	"github.com/assetchain/assetchain/internal/keyvaluedb/memorydb"
	"github.com/assetchain/assetchain/internal/view"
	"github.com/stretchr/testify/require"
)

func newKey(t *testing.T) crypto.PublicKey {
	t.Helper()
	pub, _, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	return pub
}

func TestFetchAbsentWalletIsEmpty(t *testing.T) {
	fork := view.NewFork(memorydb.New())
	w, err := Fetch(fork, newKey(t))
	require.NoError(t, err)
	require.Zero(t, w.Balance)
	require.Empty(t, w.Assets)
}

func TestStoreFetchRoundTrip(t *testing.T) {
	db := memorydb.New()
	fork := view.NewFork(db)
	key := newKey(t)
	id := assets.NewAssetID("foobar", key)

	require.NoError(t, Store(fork, key, New(1000, []assets.AssetBundle{assets.NewAssetBundle(id, 9)})))

	w, err := Fetch(fork, key)
	require.NoError(t, err)
	require.EqualValues(t, 1000, w.Balance)
	require.EqualValues(t, 9, w.AmountOf(id))

	// Survives a commit to the backing store.
	require.NoError(t, fork.Commit())
	w, err = Fetch(view.NewSnapshot(db), key)
	require.NoError(t, err)
	require.EqualValues(t, 1000, w.Balance)
	require.EqualValues(t, 9, w.AmountOf(id))
}

func TestMoveCoinsInsufficientLeavesBothUnchanged(t *testing.T) {
	from := New(5, nil)
	to := New(0, nil)

	err := MoveCoins(from, to, 6)
	require.ErrorIs(t, err, currency.ErrInsufficientFunds)
	require.EqualValues(t, 5, from.Balance)
	require.Zero(t, to.Balance)

	require.NoError(t, MoveCoins(from, to, 5))
	require.Zero(t, from.Balance)
	require.EqualValues(t, 5, to.Balance)
}

func TestMoveAssetsAllOrNothing(t *testing.T) {
	key := newKey(t)
	idA := assets.NewAssetID("a", key)
	idB := assets.NewAssetID("b", key)

	from := New(0, []assets.AssetBundle{
		assets.NewAssetBundle(idA, 10),
		assets.NewAssetBundle(idB, 1),
	})
	to := New(0, nil)

	// Second bundle is short: nothing moves at all.
	err := MoveAssets(from, to, []assets.AssetBundle{
		assets.NewAssetBundle(idA, 5),
		assets.NewAssetBundle(idB, 2),
	})
	require.ErrorIs(t, err, currency.ErrInsufficientAssetAmount)
	require.EqualValues(t, 10, from.AmountOf(idA))
	require.EqualValues(t, 1, from.AmountOf(idB))
	require.Zero(t, to.AmountOf(idA))

	require.NoError(t, MoveAssets(from, to, []assets.AssetBundle{
		assets.NewAssetBundle(idA, 5),
		assets.NewAssetBundle(idB, 1),
	}))
	require.EqualValues(t, 5, from.AmountOf(idA))
	require.Zero(t, from.AmountOf(idB))
	require.EqualValues(t, 5, to.AmountOf(idA))
	require.EqualValues(t, 1, to.AmountOf(idB))
}

func TestRemoveAssetsDropsEmptyHoldings(t *testing.T) {
	key := newKey(t)
	id := assets.NewAssetID("a", key)
	w := New(0, []assets.AssetBundle{assets.NewAssetBundle(id, 3)})

	require.NoError(t, w.RemoveAssets([]assets.AssetBundle{assets.NewAssetBundle(id, 3)}))
	require.Empty(t, w.Assets)
}

func TestAddAssetsMergesPerID(t *testing.T) {
	key := newKey(t)
	id := assets.NewAssetID("a", key)
	w := New(0, nil)

	require.NoError(t, w.AddAssets([]assets.AssetBundle{assets.NewAssetBundle(id, 2)}))
	require.NoError(t, w.AddAssets([]assets.AssetBundle{assets.NewAssetBundle(id, 3)}))
	require.Len(t, w.Assets, 1)
	require.EqualValues(t, 5, w.AmountOf(id))
}

func TestAddCoinsOverflowLeavesBalance(t *testing.T) {
	w := New(math.MaxUint64-1, nil)

	require.ErrorIs(t, w.AddCoins(2), currency.ErrInvalidTransaction)
	require.EqualValues(t, uint64(math.MaxUint64-1), w.Balance)

	require.NoError(t, w.AddCoins(1))
	require.EqualValues(t, uint64(math.MaxUint64), w.Balance)
}

func TestAddAssetsOverflowIsAllOrNothing(t *testing.T) {
	key := newKey(t)
	idA := assets.NewAssetID("a", key)
	idB := assets.NewAssetID("b", key)
	w := New(0, []assets.AssetBundle{assets.NewAssetBundle(idB, math.MaxUint64)})

	// Second bundle wraps: the first must not be applied either.
	err := w.AddAssets([]assets.AssetBundle{
		assets.NewAssetBundle(idA, 1),
		assets.NewAssetBundle(idB, 1),
	})
	require.ErrorIs(t, err, currency.ErrInvalidTransaction)
	require.Zero(t, w.AmountOf(idA))
	require.EqualValues(t, uint64(math.MaxUint64), w.AmountOf(idB))

	// Duplicate ids within one call are summed before the check.
	err = w.AddAssets([]assets.AssetBundle{
		assets.NewAssetBundle(idA, math.MaxUint64),
		assets.NewAssetBundle(idA, 1),
	})
	require.ErrorIs(t, err, currency.ErrInvalidTransaction)
	require.Zero(t, w.AmountOf(idA))
}

func TestMoveCoinsOverflowLeavesBothUnchanged(t *testing.T) {
	from := New(2, nil)
	to := New(math.MaxUint64, nil)

	require.ErrorIs(t, MoveCoins(from, to, 1), currency.ErrInvalidTransaction)
	require.EqualValues(t, 2, from.Balance)
	require.EqualValues(t, uint64(math.MaxUint64), to.Balance)
}

func TestMoveAssetsOverflowLeavesBothUnchanged(t *testing.T) {
	key := newKey(t)
	id := assets.NewAssetID("a", key)
	from := New(0, []assets.AssetBundle{assets.NewAssetBundle(id, 2)})
	to := New(0, []assets.AssetBundle{assets.NewAssetBundle(id, math.MaxUint64)})

	err := MoveAssets(from, to, []assets.AssetBundle{assets.NewAssetBundle(id, 1)})
	require.ErrorIs(t, err, currency.ErrInvalidTransaction)
	require.EqualValues(t, 2, from.AmountOf(id))
	require.EqualValues(t, uint64(math.MaxUint64), to.AmountOf(id))
}
