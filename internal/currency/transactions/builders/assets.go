package builders

import (
	"github.com/assetchain/assetchain/internal/crypto"
	"github.com/assetchain/assetchain/internal/currency/assets"
	"github.com/assetchain/assetchain/internal/currency/transactions"
	"github.com/assetchain/assetchain/internal/messages"
)

// AddAssetsBuilder builds add-assets transactions.
type AddAssetsBuilder struct {
	creator crypto.PublicKey
	assets  []assets.MetaAsset
	seed    uint64
}

// NewAddAssets starts an add-assets transaction for the given creator.
func NewAddAssets(creator crypto.PublicKey) *AddAssetsBuilder {
	return &AddAssetsBuilder{creator: creator}
}

// AddAsset commits amount units of an asset described by meta to the
// receiver, with the given creator fee schedule.
func (b *AddAssetsBuilder) AddAsset(receiver crypto.PublicKey, meta string, amount uint64, fees assets.Fees) *AddAssetsBuilder {
	b.assets = append(b.assets, assets.NewMetaAsset(receiver, meta, amount, fees))
	return b
}

// Seed sets the replay nonce.
func (b *AddAssetsBuilder) Seed(seed uint64) *AddAssetsBuilder {
	b.seed = seed
	return b
}

// Build encodes and signs the transaction with the creator's key.
func (b *AddAssetsBuilder) Build(creatorKey crypto.SecretKey) messages.RawMessage {
	unsigned := encodeTx(transactions.AddAssetsID, transactions.AddAssetsSchema, []any{
		b.creator,
		encodeMetaAssets(b.assets),
		b.seed,
	})
	return unsigned.Sign(creatorKey)
}

// DeleteAssetsBuilder builds delete-assets transactions.
type DeleteAssetsBuilder struct {
	owner  crypto.PublicKey
	assets []assets.AssetBundle
	seed   uint64
}

// NewDeleteAssets starts a delete-assets transaction for the given owner.
func NewDeleteAssets(owner crypto.PublicKey) *DeleteAssetsBuilder {
	return &DeleteAssetsBuilder{owner: owner}
}

// AddAsset destroys amount units of the asset derived from meta and the
// owner's key.
func (b *DeleteAssetsBuilder) AddAsset(meta string, amount uint64) *DeleteAssetsBuilder {
	return b.AddBundle(assets.BundleFromData(meta, amount, b.owner))
}

// AddBundle destroys an explicit bundle.
func (b *DeleteAssetsBuilder) AddBundle(bundle assets.AssetBundle) *DeleteAssetsBuilder {
	b.assets = append(b.assets, bundle)
	return b
}

// Seed sets the replay nonce.
func (b *DeleteAssetsBuilder) Seed(seed uint64) *DeleteAssetsBuilder {
	b.seed = seed
	return b
}

// Build encodes and signs the transaction with the owner's key.
func (b *DeleteAssetsBuilder) Build(ownerKey crypto.SecretKey) messages.RawMessage {
	unsigned := encodeTx(transactions.DeleteAssetsID, transactions.DeleteAssetsSchema, []any{
		b.owner,
		encodeBundles(b.assets),
		b.seed,
	})
	return unsigned.Sign(ownerKey)
}
