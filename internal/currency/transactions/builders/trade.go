package builders

import (
	"github.com/assetchain/assetchain/internal/crypto"
	"github.com/assetchain/assetchain/internal/currency/assets"
	"github.com/assetchain/assetchain/internal/currency/transactions"
	"github.com/assetchain/assetchain/internal/messages"
)

// TradeBuilder builds trade transactions.
type TradeBuilder struct {
	buyer       crypto.PublicKey
	seller      crypto.PublicKey
	assets      []assets.TradeAsset
	feeStrategy transactions.FeeStrategy
	seed        uint64
	memo        string
}

// NewTrade starts a trade between buyer and seller. The fee strategy
// defaults to the recipient (buyer) paying.
func NewTrade(buyer, seller crypto.PublicKey) *TradeBuilder {
	return &TradeBuilder{
		buyer:       buyer,
		seller:      seller,
		feeStrategy: transactions.FeeStrategyRecipient,
	}
}

// AddAsset includes a priced lot sold by the seller.
func (b *TradeBuilder) AddAsset(meta string, amount, price uint64) *TradeBuilder {
	return b.AddLot(assets.NewTradeAsset(assets.NewAssetID(meta, b.seller), amount, price))
}

// AddLot includes an explicit priced lot.
func (b *TradeBuilder) AddLot(lot assets.TradeAsset) *TradeBuilder {
	b.assets = append(b.assets, lot)
	return b
}

// FeeStrategy selects who pays the flat fee.
func (b *TradeBuilder) FeeStrategy(s transactions.FeeStrategy) *TradeBuilder {
	b.feeStrategy = s
	return b
}

// Seed sets the replay nonce.
func (b *TradeBuilder) Seed(seed uint64) *TradeBuilder {
	b.seed = seed
	return b
}

// Memo attaches a free-text note.
func (b *TradeBuilder) Memo(memo string) *TradeBuilder {
	b.memo = memo
	return b
}

// OfferBytes returns the standalone offer encoding the seller signs.
func (b *TradeBuilder) OfferBytes() []byte {
	return transactions.TradeOfferSchema.Encode(0, []any{
		b.buyer,
		b.seller,
		encodeTradeAssets(b.assets),
		uint8(b.feeStrategy),
		b.seed,
		b.memo,
	})
}

// Build encloses the offer and the seller's signature over it, then signs
// the message with the buyer's key.
func (b *TradeBuilder) Build(sellerSignature crypto.Signature, buyerKey crypto.SecretKey) messages.RawMessage {
	unsigned := encodeTx(transactions.TradeID, transactions.TradeSchema, []any{
		b.OfferBytes(),
		sellerSignature,
	})
	return unsigned.Sign(buyerKey)
}

// TradeIntermediaryBuilder builds intermediated trade transactions.
type TradeIntermediaryBuilder struct {
	intermediary transactions.Intermediary
	buyer        crypto.PublicKey
	seller       crypto.PublicKey
	assets       []assets.TradeAsset
	feeStrategy  transactions.FeeStrategy
	seed         uint64
	memo         string
}

// NewTradeIntermediary starts a trade with a commissioned third party.
func NewTradeIntermediary(buyer, seller, intermediary crypto.PublicKey, commission uint64) *TradeIntermediaryBuilder {
	return &TradeIntermediaryBuilder{
		intermediary: transactions.Intermediary{Wallet: intermediary, Commission: commission},
		buyer:        buyer,
		seller:       seller,
		feeStrategy:  transactions.FeeStrategyRecipient,
	}
}

// AddAsset includes a priced lot sold by the seller.
func (b *TradeIntermediaryBuilder) AddAsset(meta string, amount, price uint64) *TradeIntermediaryBuilder {
	return b.AddLot(assets.NewTradeAsset(assets.NewAssetID(meta, b.seller), amount, price))
}

// AddLot includes an explicit priced lot.
func (b *TradeIntermediaryBuilder) AddLot(lot assets.TradeAsset) *TradeIntermediaryBuilder {
	b.assets = append(b.assets, lot)
	return b
}

// FeeStrategy selects who pays the flat fee.
func (b *TradeIntermediaryBuilder) FeeStrategy(s transactions.FeeStrategy) *TradeIntermediaryBuilder {
	b.feeStrategy = s
	return b
}

// Seed sets the replay nonce.
func (b *TradeIntermediaryBuilder) Seed(seed uint64) *TradeIntermediaryBuilder {
	b.seed = seed
	return b
}

// Memo attaches a free-text note.
func (b *TradeIntermediaryBuilder) Memo(memo string) *TradeIntermediaryBuilder {
	b.memo = memo
	return b
}

// OfferBytes returns the standalone offer encoding that both the seller
// and the intermediary sign.
func (b *TradeIntermediaryBuilder) OfferBytes() []byte {
	return transactions.TradeOfferIntermediarySchema.Encode(0, []any{
		b.intermediary.Encode(),
		b.buyer,
		b.seller,
		encodeTradeAssets(b.assets),
		uint8(b.feeStrategy),
		b.seed,
		b.memo,
	})
}

// Build encloses the offer with both counterparty signatures, then signs
// the message with the buyer's key.
func (b *TradeIntermediaryBuilder) Build(sellerSignature, intermediarySignature crypto.Signature, buyerKey crypto.SecretKey) messages.RawMessage {
	unsigned := encodeTx(transactions.TradeIntermediaryID, transactions.TradeIntermediarySchema, []any{
		b.OfferBytes(),
		sellerSignature,
		intermediarySignature,
	})
	return unsigned.Sign(buyerKey)
}
