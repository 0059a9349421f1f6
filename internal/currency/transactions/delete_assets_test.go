package transactions_test

import (
	"math"
	"testing"

	"github.com/assetchain/assetchain/internal/currency"
	"github.com/assetchain/assetchain/internal/currency/assets"
	"github.com/assetchain/assetchain/internal/currency/status"
	"github.com/assetchain/assetchain/internal/currency/transactions/builders"
	"github.com/stretchr/testify/require"
)

func TestAddAssetsRegistersAndCredits(t *testing.T) {
	l := newTestLedger(t)
	creator := newAccount(t)
	receiver := newAccount(t)
	l.fund(creator.pub, 100)

	msg := builders.NewAddAssets(creator.pub).
		AddAsset(receiver.pub, "foobar", 9, assets.Fees{}).
		Seed(1).
		Build(creator.sec)
	l.apply(msg)

	require.Equal(t, status.Success, l.statusOf(msg))

	id := assets.NewAssetID("foobar", creator.pub)
	info, found, err := assets.Fetch(l.fork, id)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, creator.pub, info.Creator)
	require.EqualValues(t, 9, info.Amount)
	require.EqualValues(t, 9, l.wallet(receiver.pub).AmountOf(id))
	require.EqualValues(t, 100-flatFee, l.wallet(creator.pub).Balance)
}

func TestAddAssetsExtendsExistingSupply(t *testing.T) {
	l := newTestLedger(t)
	creator := newAccount(t)
	l.fund(creator.pub, 100)
	id := l.registerAsset(creator.pub, "foobar", 5, assets.Fees{})

	msg := builders.NewAddAssets(creator.pub).
		AddAsset(creator.pub, "foobar", 4, assets.Fees{}).
		Build(creator.sec)
	l.apply(msg)

	require.Equal(t, status.Success, l.statusOf(msg))
	info, _, err := assets.Fetch(l.fork, id)
	require.NoError(t, err)
	require.EqualValues(t, 9, info.Amount)
}

func TestAddAssetsRejectsForeignAssetID(t *testing.T) {
	l := newTestLedger(t)
	creator := newAccount(t)
	other := newAccount(t)
	l.fund(creator.pub, 100)

	// Same id as if created by creator, but registered to someone else.
	id := assets.NewAssetID("foobar", creator.pub)
	require.NoError(t, assets.Store(l.fork, id, assets.NewAssetInfo(other.pub, 5, assets.Fees{})))

	msg := builders.NewAddAssets(creator.pub).
		AddAsset(creator.pub, "foobar", 4, assets.Fees{}).
		Build(creator.sec)
	l.apply(msg)

	require.Equal(t, uint8(currency.ErrInvalidAssetInfo), l.statusOf(msg))
	info, _, err := assets.Fetch(l.fork, id)
	require.NoError(t, err)
	require.EqualValues(t, 5, info.Amount)
}

func TestDeleteAssetsToZeroKeepsRegistryEntry(t *testing.T) {
	l := newTestLedger(t)
	owner := newAccount(t)
	id := l.registerAsset(owner.pub, "foobar", 9, assets.Fees{})
	l.fund(owner.pub, 100, assets.NewAssetBundle(id, 9))

	msg := builders.NewDeleteAssets(owner.pub).
		AddAsset("foobar", 9).
		Build(owner.sec)
	l.apply(msg)

	require.Equal(t, status.Success, l.statusOf(msg))
	info, found, err := assets.Fetch(l.fork, id)
	require.NoError(t, err)
	require.True(t, found, "zero-supply asset must stay registered")
	require.Zero(t, info.Amount)
	require.Zero(t, l.wallet(owner.pub).AmountOf(id))
}

func TestDeleteAssetsOverSupplyFails(t *testing.T) {
	l := newTestLedger(t)
	owner := newAccount(t)
	id := l.registerAsset(owner.pub, "foobar", 9, assets.Fees{})
	l.fund(owner.pub, 100, assets.NewAssetBundle(id, 9))

	msg := builders.NewDeleteAssets(owner.pub).
		AddAsset("foobar", 10).
		Build(owner.sec)
	l.apply(msg)

	require.Equal(t, uint8(currency.ErrInsufficientAssetAmount), l.statusOf(msg))
	info, _, err := assets.Fetch(l.fork, id)
	require.NoError(t, err)
	require.EqualValues(t, 9, info.Amount)
	require.EqualValues(t, 9, l.wallet(owner.pub).AmountOf(id))
}

func TestDeleteAssetsUnknownAssetFails(t *testing.T) {
	l := newTestLedger(t)
	owner := newAccount(t)
	l.fund(owner.pub, 100)

	msg := builders.NewDeleteAssets(owner.pub).
		AddAsset("ghost", 1).
		Build(owner.sec)
	l.apply(msg)

	require.Equal(t, uint8(currency.ErrAssetNotFound), l.statusOf(msg))
}

func TestAddAssetsRejectsSupplyOverflow(t *testing.T) {
	l := newTestLedger(t)
	creator := newAccount(t)
	l.fund(creator.pub, 100)
	id := l.registerAsset(creator.pub, "foobar", math.MaxUint64, assets.Fees{})

	msg := builders.NewAddAssets(creator.pub).
		AddAsset(creator.pub, "foobar", 1, assets.Fees{}).
		Build(creator.sec)
	l.apply(msg)

	require.Equal(t, uint8(currency.ErrInvalidTransaction), l.statusOf(msg))
	info, _, err := assets.Fetch(l.fork, id)
	require.NoError(t, err)
	require.EqualValues(t, uint64(math.MaxUint64), info.Amount)
	require.Zero(t, l.wallet(creator.pub).AmountOf(id))
}
