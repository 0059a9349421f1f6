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

// DeleteAssetsSchema is the body layout of a delete-assets transaction.
var DeleteAssetsSchema = encoding.NewSchema(
	encoding.FieldSpec{Name: "owner", Type: encoding.PublicKey},
	encoding.FieldSpec{Name: "assets", Type: encoding.Slice, Elem: assets.AssetBundleSchema},
	encoding.FieldSpec{Name: "seed", Type: encoding.Uint64},
)

// DeleteAssets destroys asset units held by the signer: outstanding supply
// in the registry is decreased and the bundles are removed from the
// owner's wallet. Supply may reach zero; the registry record remains.
type DeleteAssets struct {
	raw          messages.RawMessage
	Owner        crypto.PublicKey
	Assets       []assets.AssetBundle
	Seed         uint64
	skipSigCheck bool
}

func decodeDeleteAssets(raw messages.RawMessage) (*DeleteAssets, error) {
	r, err := raw.Decode(DeleteAssetsSchema)
	if err != nil {
		return nil, err
	}
	return &DeleteAssets{
		raw:    raw,
		Owner:  r.PublicKey(0),
		Assets: bundleSlice(r, 1),
		Seed:   r.Uint64(2),
	}, nil
}

func (t *DeleteAssets) MessageType() uint16 { return DeleteAssetsID }
func (t *DeleteAssets) Name() string        { return "delete_assets" }
func (t *DeleteAssets) Hash() crypto.Hash   { return t.raw.Hash() }

func (t *DeleteAssets) Verify() bool {
	if t.skipSigCheck {
		return true
	}
	return t.raw.VerifySignature(t.Owner)
}

func (t *DeleteAssets) Execute(fork *view.Fork) error {
	cfg, err := currency.ExtractConfiguration(fork)
	if err != nil {
		return err
	}
	if err := collectFlatFee(fork, cfg, t.Owner, cfg.Fees.DeleteAssets); err != nil {
		return err
	}

	// Accumulate the supply decreases first so repeated ids compose, and
	// nothing is written until the whole batch is known to fit.
	infos := map[assets.AssetID]assets.AssetInfo{}
	for _, b := range t.Assets {
		info, seen := infos[b.ID]
		if !seen {
			stored, found, err := assets.Fetch(fork, b.ID)
			if err != nil {
				return err
			}
			if !found {
				return currency.ErrAssetNotFound
			}
			info = stored
		}
		info, err := info.Decrease(b.Amount)
		if err != nil {
			return err
		}
		infos[b.ID] = info
	}

	owner, err := wallet.Fetch(fork, t.Owner)
	if err != nil {
		return err
	}
	if err := owner.RemoveAssets(t.Assets); err != nil {
		return err
	}

	if err := wallet.Store(fork, t.Owner, owner); err != nil {
		return err
	}
	return storeAssetInfos(fork, infos)
}

func (t *DeleteAssets) CalculateFees(r view.Reader) (map[crypto.PublicKey]uint64, error) {
	cfg, err := currency.ExtractConfiguration(r)
	if err != nil {
		return nil, err
	}
	table := map[crypto.PublicKey]uint64{}
	if t.Owner != cfg.Treasury {
		table[t.Owner] = cfg.Fees.DeleteAssets
	}
	return table, nil
}
