package transactions

import (
	"github.com/assetchain/assetchain/internal/crypto"
	"github.com/assetchain/assetchain/internal/currency"
	"github.com/assetchain/assetchain/internal/currency/assets"
	"github.com/assetchain/assetchain/internal/currency/wallet"
	"github.com/assetchain/assetchain/internal/encoding"
	"github.com/assetchain/assetchain/internal/messages"
	"github.com/assetchain/assetchain/internal/view"
)

// AddAssetsSchema is the body layout of an add-assets transaction.
var AddAssetsSchema = encoding.NewSchema(
	encoding.FieldSpec{Name: "creator", Type: encoding.PublicKey},
	encoding.FieldSpec{Name: "assets", Type: encoding.Slice, Elem: assets.MetaAssetSchema},
	encoding.FieldSpec{Name: "seed", Type: encoding.Uint64},
)

// AddAssets commits new asset units into the network: each meta entry
// registers (or extends) a registry record whose id derives from the
// creator's key and the metadata string, and credits the entry's receiver
// wallet with the units.
type AddAssets struct {
	raw          messages.RawMessage
	Creator      crypto.PublicKey
	Assets       []assets.MetaAsset
	Seed         uint64
	skipSigCheck bool
}

func decodeAddAssets(raw messages.RawMessage) (*AddAssets, error) {
	r, err := raw.Decode(AddAssetsSchema)
	if err != nil {
		return nil, err
	}
	return &AddAssets{
		raw:     raw,
		Creator: r.PublicKey(0),
		Assets:  metaAssetSlice(r, 1),
		Seed:    r.Uint64(2),
	}, nil
}

func (t *AddAssets) MessageType() uint16 { return AddAssetsID }
func (t *AddAssets) Name() string        { return "add_assets" }
func (t *AddAssets) Hash() crypto.Hash   { return t.raw.Hash() }

func (t *AddAssets) Verify() bool {
	if t.skipSigCheck {
		return true
	}
	return t.raw.VerifySignature(t.Creator)
}

func (t *AddAssets) Execute(fork *view.Fork) error {
	cfg, err := currency.ExtractConfiguration(fork)
	if err != nil {
		return err
	}
	if err := collectFlatFee(fork, cfg, t.Creator, cfg.Fees.AddAssets); err != nil {
		return err
	}

	infos := map[assets.AssetID]assets.AssetInfo{}
	wallets := map[crypto.PublicKey]*wallet.Wallet{}
	for _, meta := range t.Assets {
		if meta.Amount == 0 {
			return currency.ErrInvalidTransaction
		}
		id := meta.ID(t.Creator)
		info, seen := infos[id]
		if !seen {
			stored, found, err := assets.Fetch(fork, id)
			if err != nil {
				return err
			}
			if found {
				info, seen = stored, true
			}
		}
		if seen {
			if info.Creator != t.Creator {
				return currency.ErrInvalidAssetInfo
			}
			increased, err := info.Increase(meta.Amount)
			if err != nil {
				return err
			}
			infos[id] = increased
		} else {
			infos[id] = assets.NewAssetInfo(t.Creator, meta.Amount, meta.Fees)
		}

		receiver, err := fetchInto(wallets, fork, meta.Receiver)
		if err != nil {
			return err
		}
		if err := receiver.AddAssets([]assets.AssetBundle{assets.NewAssetBundle(id, meta.Amount)}); err != nil {
			return err
		}
	}

	if err := storeAssetInfos(fork, infos); err != nil {
		return err
	}
	return storeWallets(fork, wallets)
}

func (t *AddAssets) CalculateFees(r view.Reader) (map[crypto.PublicKey]uint64, error) {
	cfg, err := currency.ExtractConfiguration(r)
	if err != nil {
		return nil, err
	}
	table := map[crypto.PublicKey]uint64{}
	if t.Creator != cfg.Treasury {
		table[t.Creator] = cfg.Fees.AddAssets
	}
	return table, nil
}
