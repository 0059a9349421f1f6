package builders

import (
	"github.com/assetchain/assetchain/internal/crypto"
	"github.com/assetchain/assetchain/internal/currency/assets"
	"github.com/assetchain/assetchain/internal/currency/transactions"
	"github.com/assetchain/assetchain/internal/messages"
)

// ExchangeBuilder builds exchange transactions.
type ExchangeBuilder struct {
	sender          crypto.PublicKey
	senderAssets    []assets.AssetBundle
	senderValue     uint64
	recipient       crypto.PublicKey
	recipientAssets []assets.AssetBundle
	feeStrategy     transactions.FeeStrategy
	seed            uint64
	memo            string
}

// NewExchange starts an exchange between sender and recipient, with the
// sender paying senderValue coins on top of its assets.
func NewExchange(sender, recipient crypto.PublicKey, senderValue uint64) *ExchangeBuilder {
	return &ExchangeBuilder{
		sender:      sender,
		recipient:   recipient,
		senderValue: senderValue,
		feeStrategy: transactions.FeeStrategyRecipient,
	}
}

// AddSenderAsset includes a bundle the sender gives.
func (b *ExchangeBuilder) AddSenderAsset(bundle assets.AssetBundle) *ExchangeBuilder {
	b.senderAssets = append(b.senderAssets, bundle)
	return b
}

// AddRecipientAsset includes a bundle the recipient gives back.
func (b *ExchangeBuilder) AddRecipientAsset(bundle assets.AssetBundle) *ExchangeBuilder {
	b.recipientAssets = append(b.recipientAssets, bundle)
	return b
}

// FeeStrategy selects who pays the flat fee.
func (b *ExchangeBuilder) FeeStrategy(s transactions.FeeStrategy) *ExchangeBuilder {
	b.feeStrategy = s
	return b
}

// Seed sets the replay nonce.
func (b *ExchangeBuilder) Seed(seed uint64) *ExchangeBuilder {
	b.seed = seed
	return b
}

// Memo attaches a free-text note.
func (b *ExchangeBuilder) Memo(memo string) *ExchangeBuilder {
	b.memo = memo
	return b
}

// OfferBytes returns the standalone offer encoding the sender signs.
func (b *ExchangeBuilder) OfferBytes() []byte {
	return transactions.ExchangeOfferSchema.Encode(0, []any{
		b.sender,
		encodeBundles(b.senderAssets),
		b.senderValue,
		b.recipient,
		encodeBundles(b.recipientAssets),
		uint8(b.feeStrategy),
		b.seed,
		b.memo,
	})
}

// Build encloses the offer and the sender's signature over it, then signs
// the message with the recipient's key.
func (b *ExchangeBuilder) Build(senderSignature crypto.Signature, recipientKey crypto.SecretKey) messages.RawMessage {
	unsigned := encodeTx(transactions.ExchangeID, transactions.ExchangeSchema, []any{
		b.OfferBytes(),
		senderSignature,
	})
	return unsigned.Sign(recipientKey)
}

// ExchangeIntermediaryBuilder builds intermediated exchange transactions.
type ExchangeIntermediaryBuilder struct {
	intermediary    transactions.Intermediary
	sender          crypto.PublicKey
	senderAssets    []assets.AssetBundle
	senderValue     uint64
	recipient       crypto.PublicKey
	recipientAssets []assets.AssetBundle
	feeStrategy     transactions.FeeStrategy
	seed            uint64
	memo            string
}

// NewExchangeIntermediary starts an exchange with a commissioned third
// party.
func NewExchangeIntermediary(sender, recipient, intermediary crypto.PublicKey, senderValue, commission uint64) *ExchangeIntermediaryBuilder {
	return &ExchangeIntermediaryBuilder{
		intermediary: transactions.Intermediary{Wallet: intermediary, Commission: commission},
		sender:       sender,
		recipient:    recipient,
		senderValue:  senderValue,
		feeStrategy:  transactions.FeeStrategyRecipient,
	}
}

// AddSenderAsset includes a bundle the sender gives.
func (b *ExchangeIntermediaryBuilder) AddSenderAsset(bundle assets.AssetBundle) *ExchangeIntermediaryBuilder {
	b.senderAssets = append(b.senderAssets, bundle)
	return b
}

// AddRecipientAsset includes a bundle the recipient gives back.
func (b *ExchangeIntermediaryBuilder) AddRecipientAsset(bundle assets.AssetBundle) *ExchangeIntermediaryBuilder {
	b.recipientAssets = append(b.recipientAssets, bundle)
	return b
}

// FeeStrategy selects who pays the flat fee.
func (b *ExchangeIntermediaryBuilder) FeeStrategy(s transactions.FeeStrategy) *ExchangeIntermediaryBuilder {
	b.feeStrategy = s
	return b
}

// Seed sets the replay nonce.
func (b *ExchangeIntermediaryBuilder) Seed(seed uint64) *ExchangeIntermediaryBuilder {
	b.seed = seed
	return b
}

// Memo attaches a free-text note.
func (b *ExchangeIntermediaryBuilder) Memo(memo string) *ExchangeIntermediaryBuilder {
	b.memo = memo
	return b
}

// OfferBytes returns the standalone offer encoding that both the sender
// and the intermediary sign.
func (b *ExchangeIntermediaryBuilder) OfferBytes() []byte {
	return transactions.ExchangeOfferIntermediarySchema.Encode(0, []any{
		b.intermediary.Encode(),
		b.sender,
		encodeBundles(b.senderAssets),
		b.senderValue,
		b.recipient,
		encodeBundles(b.recipientAssets),
		uint8(b.feeStrategy),
		b.seed,
		b.memo,
	})
}

// Build encloses the offer with both counterparty signatures, then signs
// the message with the recipient's key.
func (b *ExchangeIntermediaryBuilder) Build(senderSignature, intermediarySignature crypto.Signature, recipientKey crypto.SecretKey) messages.RawMessage {
	unsigned := encodeTx(transactions.ExchangeIntermediaryID, transactions.ExchangeIntermediarySchema, []any{
		b.OfferBytes(),
		senderSignature,
		intermediarySignature,
	})
	return unsigned.Sign(recipientKey)
}
