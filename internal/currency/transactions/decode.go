package transactions

import (
	"bytes"

	"github.com/assetchain/assetchain/internal/currency/assets"
	"github.com/assetchain/assetchain/internal/encoding"
	"github.com/assetchain/assetchain/internal/view"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func bundleSlice(r *encoding.Record, i int) []assets.AssetBundle {
	n := r.SliceLen(i)
	out := make([]assets.AssetBundle, n)
	for j := 0; j < n; j++ {
		out[j] = assets.AssetBundleFromRecord(r.StructAt(i, j))
	}
	return out
}

func tradeAssetSlice(r *encoding.Record, i int) []assets.TradeAsset {
	n := r.SliceLen(i)
	out := make([]assets.TradeAsset, n)
	for j := 0; j < n; j++ {
		out[j] = assets.TradeAssetFromRecord(r.StructAt(i, j))
	}
	return out
}

func metaAssetSlice(r *encoding.Record, i int) []assets.MetaAsset {
	n := r.SliceLen(i)
	out := make([]assets.MetaAsset, n)
	for j := 0; j < n; j++ {
		out[j] = assets.MetaAssetFromRecord(r.StructAt(i, j))
	}
	return out
}

// storeAssetInfos persists accumulated registry records in deterministic
// id order.
func storeAssetInfos(fork *view.Fork, infos map[assets.AssetID]assets.AssetInfo) error {
	ids := maps.Keys(infos)
	slices.SortFunc(ids, func(a, b assets.AssetID) bool {
		return bytes.Compare(a[:], b[:]) < 0
	})
	for _, id := range ids {
		if err := assets.Store(fork, id, infos[id]); err != nil {
			return err
		}
	}
	return nil
}
