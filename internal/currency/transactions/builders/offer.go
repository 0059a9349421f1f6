package builders

import (
	"github.com/assetchain/assetchain/internal/crypto"
	"github.com/assetchain/assetchain/internal/currency/assets"
	"github.com/assetchain/assetchain/internal/currency/transactions"
	"github.com/assetchain/assetchain/internal/messages"
)

// AskOfferBuilder builds ask-offer (sell intent) transactions.
type AskOfferBuilder struct {
	pubKey crypto.PublicKey
	asset  assets.TradeAsset
	seed   uint64
	memo   string
}

// NewAskOffer starts an ask offer: pubKey intends to sell the priced lot.
func NewAskOffer(pubKey crypto.PublicKey, asset assets.TradeAsset) *AskOfferBuilder {
	return &AskOfferBuilder{pubKey: pubKey, asset: asset}
}

// Seed sets the replay nonce.
func (b *AskOfferBuilder) Seed(seed uint64) *AskOfferBuilder {
	b.seed = seed
	return b
}

// Memo attaches a free-text note.
func (b *AskOfferBuilder) Memo(memo string) *AskOfferBuilder {
	b.memo = memo
	return b
}

// Build encodes and signs the transaction.
func (b *AskOfferBuilder) Build(key crypto.SecretKey) messages.RawMessage {
	unsigned := encodeTx(transactions.AskOfferID, transactions.AskOfferSchema, []any{
		b.pubKey,
		b.asset.Encode(),
		b.seed,
		b.memo,
	})
	return unsigned.Sign(key)
}

// BidOfferBuilder builds bid-offer (buy intent) transactions.
type BidOfferBuilder struct {
	pubKey crypto.PublicKey
	asset  assets.TradeAsset
	seed   uint64
	memo   string
}

// NewBidOffer starts a bid offer: pubKey intends to buy the priced lot.
func NewBidOffer(pubKey crypto.PublicKey, asset assets.TradeAsset) *BidOfferBuilder {
	return &BidOfferBuilder{pubKey: pubKey, asset: asset}
}

// Seed sets the replay nonce.
func (b *BidOfferBuilder) Seed(seed uint64) *BidOfferBuilder {
	b.seed = seed
	return b
}

// Memo attaches a free-text note.
func (b *BidOfferBuilder) Memo(memo string) *BidOfferBuilder {
	b.memo = memo
	return b
}

// Build encodes and signs the transaction.
func (b *BidOfferBuilder) Build(key crypto.SecretKey) messages.RawMessage {
	unsigned := encodeTx(transactions.BidOfferID, transactions.BidOfferSchema, []any{
		b.pubKey,
		b.asset.Encode(),
		b.seed,
		b.memo,
	})
	return unsigned.Sign(key)
}
