package builders

import (
	"github.com/assetchain/assetchain/internal/crypto"
	"github.com/assetchain/assetchain/internal/currency/assets"
	"github.com/assetchain/assetchain/internal/currency/transactions"
	"github.com/assetchain/assetchain/internal/messages"
)

// TransferBuilder builds transfer transactions.
type TransferBuilder struct {
	sender    crypto.PublicKey
	recipient crypto.PublicKey
	amount    uint64
	assets    []assets.AssetBundle
	seed      uint64
	memo      string
}

// NewTransfer starts a transfer of coins from sender to recipient.
func NewTransfer(sender, recipient crypto.PublicKey, amount uint64) *TransferBuilder {
	return &TransferBuilder{sender: sender, recipient: recipient, amount: amount}
}

// AddAsset includes an asset bundle in the transfer.
func (b *TransferBuilder) AddAsset(bundle assets.AssetBundle) *TransferBuilder {
	b.assets = append(b.assets, bundle)
	return b
}

// Seed sets the replay nonce.
func (b *TransferBuilder) Seed(seed uint64) *TransferBuilder {
	b.seed = seed
	return b
}

// Memo attaches a free-text note.
func (b *TransferBuilder) Memo(memo string) *TransferBuilder {
	b.memo = memo
	return b
}

// Build encodes and signs the transaction with the sender's key.
func (b *TransferBuilder) Build(senderKey crypto.SecretKey) messages.RawMessage {
	unsigned := encodeTx(transactions.TransferID, transactions.TransferSchema, []any{
		b.sender,
		b.recipient,
		b.amount,
		encodeBundles(b.assets),
		b.seed,
		b.memo,
	})
	return unsigned.Sign(senderKey)
}

// TransferWithFeesPayerBuilder builds transfers whose fees are charged to
// a distinct wallet.
type TransferWithFeesPayerBuilder struct {
	sender    crypto.PublicKey
	recipient crypto.PublicKey
	feesPayer crypto.PublicKey
	amount    uint64
	assets    []assets.AssetBundle
	seed      uint64
	memo      string
}

// NewTransferWithFeesPayer starts a fees-payer transfer.
func NewTransferWithFeesPayer(sender, recipient, feesPayer crypto.PublicKey, amount uint64) *TransferWithFeesPayerBuilder {
	return &TransferWithFeesPayerBuilder{
		sender:    sender,
		recipient: recipient,
		feesPayer: feesPayer,
		amount:    amount,
	}
}

// AddAsset includes an asset bundle in the transfer.
func (b *TransferWithFeesPayerBuilder) AddAsset(bundle assets.AssetBundle) *TransferWithFeesPayerBuilder {
	b.assets = append(b.assets, bundle)
	return b
}

// Seed sets the replay nonce.
func (b *TransferWithFeesPayerBuilder) Seed(seed uint64) *TransferWithFeesPayerBuilder {
	b.seed = seed
	return b
}

// Memo attaches a free-text note.
func (b *TransferWithFeesPayerBuilder) Memo(memo string) *TransferWithFeesPayerBuilder {
	b.memo = memo
	return b
}

// OfferBytes returns the standalone offer encoding the fees payer signs.
func (b *TransferWithFeesPayerBuilder) OfferBytes() []byte {
	return transactions.TransferOfferSchema.Encode(0, []any{
		b.sender,
		b.recipient,
		b.feesPayer,
		b.amount,
		encodeBundles(b.assets),
		b.seed,
		b.memo,
	})
}

// Build encloses the offer and the fees payer's signature over it, then
// signs the message with the sender's key.
func (b *TransferWithFeesPayerBuilder) Build(feesPayerSignature crypto.Signature, senderKey crypto.SecretKey) messages.RawMessage {
	unsigned := encodeTx(transactions.TransferWithFeesPayerID, transactions.TransferWithFeesPayerSchema, []any{
		b.OfferBytes(),
		feesPayerSignature,
	})
	return unsigned.Sign(senderKey)
}
