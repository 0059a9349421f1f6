// Package assets defines asset identifiers, the asset bundles wallets hold
// and trade, and the registry of per-asset metadata.
package assets

import (
	"math"

	"github.com/assetchain/assetchain/internal/crypto"
	"github.com/assetchain/assetchain/internal/currency"
	"github.com/assetchain/assetchain/internal/encoding"
)

// AssetID identifies an asset. It is content-derived: the digest of the
// creator's public key followed by the asset's metadata string, so the pair
// (creator, meta) always maps to the same id.
type AssetID crypto.Hash

// NewAssetID derives the asset id for metadata created by the given key.
func NewAssetID(meta string, creator crypto.PublicKey) AssetID {
	data := make([]byte, 0, len(creator)+len(meta))
	data = append(data, creator.Bytes()...)
	data = append(data, meta...)
	return AssetID(crypto.Sum(data))
}

func (id AssetID) Bytes() []byte     { return id[:] }
func (id AssetID) Hash() crypto.Hash { return crypto.Hash(id) }
func (id AssetID) String() string    { return crypto.Hash(id).String() }

// AssetBundle is a quantity of one asset, as held by a wallet or moved by a
// transaction.
type AssetBundle struct {
	_      struct{} `cbor:",toarray"`
	ID     AssetID
	Amount uint64
}

// NewAssetBundle creates a bundle of an existing asset id.
func NewAssetBundle(id AssetID, amount uint64) AssetBundle {
	return AssetBundle{ID: id, Amount: amount}
}

// BundleFromData creates a bundle deriving the asset id from its metadata
// and creator.
func BundleFromData(meta string, amount uint64, creator crypto.PublicKey) AssetBundle {
	return AssetBundle{ID: NewAssetID(meta, creator), Amount: amount}
}

// TradeAsset is an asset bundle with an agreed per-unit price.
type TradeAsset struct {
	_      struct{} `cbor:",toarray"`
	ID     AssetID
	Amount uint64
	Price  uint64
}

// NewTradeAsset creates a priced asset lot.
func NewTradeAsset(id AssetID, amount, price uint64) TradeAsset {
	return TradeAsset{ID: id, Amount: amount, Price: price}
}

// TradeAssetFromBundle prices an existing bundle.
func TradeAssetFromBundle(b AssetBundle, price uint64) TradeAsset {
	return TradeAsset{ID: b.ID, Amount: b.Amount, Price: price}
}

// ToBundle drops the price.
func (t TradeAsset) ToBundle() AssetBundle {
	return AssetBundle{ID: t.ID, Amount: t.Amount}
}

// Total is the coin value of the lot: amount times per-unit price. The
// caller must have established the product fits uint64; CheckedTotal is
// the guarded form.
func (t TradeAsset) Total() uint64 {
	return t.Amount * t.Price
}

// CheckedTotal is Total failing on uint64 overflow instead of wrapping.
func (t TradeAsset) CheckedTotal() (uint64, error) {
	if t.Price != 0 && t.Amount > math.MaxUint64/t.Price {
		return 0, currency.ErrInvalidTransaction
	}
	return t.Amount * t.Price, nil
}

// MetaAsset describes an asset to be committed into the network by an
// add-assets transaction: who receives the units, the metadata the id is
// derived from, the amount and the creator fee schedule.
type MetaAsset struct {
	_        struct{} `cbor:",toarray"`
	Receiver crypto.PublicKey
	Data     string
	Amount   uint64
	Fees     Fees
}

// NewMetaAsset creates a meta asset record.
func NewMetaAsset(receiver crypto.PublicKey, data string, amount uint64, fees Fees) MetaAsset {
	return MetaAsset{Receiver: receiver, Data: data, Amount: amount, Fees: fees}
}

// ID derives the committed asset's id for the given creator.
func (m MetaAsset) ID(creator crypto.PublicKey) AssetID {
	return NewAssetID(m.Data, creator)
}

// Wire layouts.
var (
	AssetBundleSchema = encoding.NewSchema(
		encoding.FieldSpec{Name: "id", Type: encoding.Hash},
		encoding.FieldSpec{Name: "amount", Type: encoding.Uint64},
	)

	TradeAssetSchema = encoding.NewSchema(
		encoding.FieldSpec{Name: "id", Type: encoding.Hash},
		encoding.FieldSpec{Name: "amount", Type: encoding.Uint64},
		encoding.FieldSpec{Name: "price", Type: encoding.Uint64},
	)

	MetaAssetSchema = encoding.NewSchema(
		encoding.FieldSpec{Name: "receiver", Type: encoding.PublicKey},
		encoding.FieldSpec{Name: "data", Type: encoding.String},
		encoding.FieldSpec{Name: "amount", Type: encoding.Uint64},
		encoding.FieldSpec{Name: "fees", Type: encoding.Struct, Elem: FeesSchema},
	)
)

func (b AssetBundle) Encode() []byte {
	return AssetBundleSchema.Encode(0, []any{b.ID.Hash(), b.Amount})
}

func (t TradeAsset) Encode() []byte {
	return TradeAssetSchema.Encode(0, []any{t.ID.Hash(), t.Amount, t.Price})
}

func (m MetaAsset) Encode() []byte {
	return MetaAssetSchema.Encode(0, []any{m.Receiver, m.Data, m.Amount, m.Fees.Encode()})
}

func AssetBundleFromRecord(r *encoding.Record) AssetBundle {
	return AssetBundle{ID: AssetID(r.Hash(0)), Amount: r.Uint64(1)}
}

func TradeAssetFromRecord(r *encoding.Record) TradeAsset {
	return TradeAsset{ID: AssetID(r.Hash(0)), Amount: r.Uint64(1), Price: r.Uint64(2)}
}

func MetaAssetFromRecord(r *encoding.Record) MetaAsset {
	return MetaAsset{
		Receiver: r.PublicKey(0),
		Data:     r.String(1),
		Amount:   r.Uint64(2),
		Fees:     FeesFromRecord(r.Struct(3)),
	}
}
