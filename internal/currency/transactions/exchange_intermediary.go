package transactions

import (
	"github.com/assetchain/assetchain/internal/crypto"
	"github.com/assetchain/assetchain/internal/currency/assets"
	"github.com/assetchain/assetchain/internal/encoding"
	"github.com/assetchain/assetchain/internal/messages"
	"github.com/assetchain/assetchain/internal/view"
)

// ExchangeOfferIntermediarySchema is the standalone layout of an
// intermediated exchange offer, signed by both sender and intermediary.
var ExchangeOfferIntermediarySchema = encoding.NewSchema(
	encoding.FieldSpec{Name: "intermediary", Type: encoding.Struct, Elem: IntermediarySchema},
	encoding.FieldSpec{Name: "sender", Type: encoding.PublicKey},
	encoding.FieldSpec{Name: "sender_assets", Type: encoding.Slice, Elem: assets.AssetBundleSchema},
	encoding.FieldSpec{Name: "sender_value", Type: encoding.Uint64},
	encoding.FieldSpec{Name: "recipient", Type: encoding.PublicKey},
	encoding.FieldSpec{Name: "recipient_assets", Type: encoding.Slice, Elem: assets.AssetBundleSchema},
	encoding.FieldSpec{Name: "fee_strategy", Type: encoding.Uint8},
	encoding.FieldSpec{Name: "seed", Type: encoding.Uint64},
	encoding.FieldSpec{Name: "memo", Type: encoding.String},
)

// ExchangeIntermediarySchema is the body layout of the enclosing
// transaction.
var ExchangeIntermediarySchema = encoding.NewSchema(
	encoding.FieldSpec{Name: "offer", Type: encoding.Struct, Elem: ExchangeOfferIntermediarySchema},
	encoding.FieldSpec{Name: "sender_signature", Type: encoding.Signature},
	encoding.FieldSpec{Name: "intermediary_signature", Type: encoding.Signature},
)

// ExchangeOfferIntermediary is the decoded offer of an intermediated
// exchange.
type ExchangeOfferIntermediary struct {
	Intermediary    Intermediary
	Sender          crypto.PublicKey
	SenderAssets    []assets.AssetBundle
	SenderValue     uint64
	Recipient       crypto.PublicKey
	RecipientAssets []assets.AssetBundle
	FeeStrategy     uint8
	Seed            uint64
	Memo            string
}

func exchangeOfferIntermediaryFromRecord(r *encoding.Record) ExchangeOfferIntermediary {
	return ExchangeOfferIntermediary{
		Intermediary:    IntermediaryFromRecord(r.Struct(0)),
		Sender:          r.PublicKey(1),
		SenderAssets:    bundleSlice(r, 2),
		SenderValue:     r.Uint64(3),
		Recipient:       r.PublicKey(4),
		RecipientAssets: bundleSlice(r, 5),
		FeeStrategy:     r.Uint8(6),
		Seed:            r.Uint64(7),
		Memo:            r.String(8),
	}
}

// ExchangeIntermediary is an exchange with a commissioned third party.
// The recipient signs the message; sender and intermediary each sign the
// embedded offer.
type ExchangeIntermediary struct {
	raw                   messages.RawMessage
	Offer                 ExchangeOfferIntermediary
	SenderSignature       crypto.Signature
	IntermediarySignature crypto.Signature
	offerBytes            []byte
	skipSigCheck          bool
}

func decodeExchangeIntermediary(raw messages.RawMessage) (*ExchangeIntermediary, error) {
	r, err := raw.Decode(ExchangeIntermediarySchema)
	if err != nil {
		return nil, err
	}
	return &ExchangeIntermediary{
		raw:                   raw,
		Offer:                 exchangeOfferIntermediaryFromRecord(r.Struct(0)),
		SenderSignature:       r.Signature(1),
		IntermediarySignature: r.Signature(2),
		offerBytes:            r.StructBytes(0),
	}, nil
}

func (t *ExchangeIntermediary) MessageType() uint16 { return ExchangeIntermediaryID }
func (t *ExchangeIntermediary) Name() string        { return "exchange_intermediary" }
func (t *ExchangeIntermediary) Hash() crypto.Hash   { return t.raw.Hash() }

func (t *ExchangeIntermediary) Verify() bool {
	o := t.Offer
	strategy, ok := FeeStrategyFromWire(o.FeeStrategy)
	if !ok || !strategy.ValidFor(true) {
		return false
	}
	if o.Sender == o.Recipient ||
		o.Intermediary.Wallet == o.Sender ||
		o.Intermediary.Wallet == o.Recipient {
		return false
	}
	if t.skipSigCheck {
		return true
	}
	return t.raw.VerifySignature(o.Recipient) &&
		crypto.Verify(t.SenderSignature, t.offerBytes, o.Sender) &&
		crypto.Verify(t.IntermediarySignature, t.offerBytes, o.Intermediary.Wallet)
}

func (t *ExchangeIntermediary) Execute(fork *view.Fork) error {
	o := t.Offer
	offer := ExchangeOffer{
		Sender:          o.Sender,
		SenderAssets:    o.SenderAssets,
		SenderValue:     o.SenderValue,
		Recipient:       o.Recipient,
		RecipientAssets: o.RecipientAssets,
		FeeStrategy:     o.FeeStrategy,
		Seed:            o.Seed,
		Memo:            o.Memo,
	}
	intermediary := o.Intermediary
	return executeExchange(fork, offer, &intermediary)
}

func (t *ExchangeIntermediary) CalculateFees(r view.Reader) (map[crypto.PublicKey]uint64, error) {
	return exchangeFeeTable(r, t.Offer.FeeStrategy, feeParties{
		sender:       t.Offer.Sender,
		recipient:    t.Offer.Recipient,
		intermediary: t.Offer.Intermediary.Wallet,
	})
}
