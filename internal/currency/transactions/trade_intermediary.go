package transactions

import (
	"github.com/assetchain/assetchain/internal/crypto"
	"github.com/assetchain/assetchain/internal/currency/assets"
	"github.com/assetchain/assetchain/internal/encoding"
	"github.com/assetchain/assetchain/internal/messages"
	"github.com/assetchain/assetchain/internal/view"
)

// TradeOfferIntermediarySchema is the standalone layout of an
// intermediated trade offer, signed by both seller and intermediary.
var TradeOfferIntermediarySchema = encoding.NewSchema(
	encoding.FieldSpec{Name: "intermediary", Type: encoding.Struct, Elem: IntermediarySchema},
	encoding.FieldSpec{Name: "buyer", Type: encoding.PublicKey},
	encoding.FieldSpec{Name: "seller", Type: encoding.PublicKey},
	encoding.FieldSpec{Name: "assets", Type: encoding.Slice, Elem: assets.TradeAssetSchema},
	encoding.FieldSpec{Name: "fee_strategy", Type: encoding.Uint8},
	encoding.FieldSpec{Name: "seed", Type: encoding.Uint64},
	encoding.FieldSpec{Name: "memo", Type: encoding.String},
)

// TradeIntermediarySchema is the body layout of the enclosing transaction.
var TradeIntermediarySchema = encoding.NewSchema(
	encoding.FieldSpec{Name: "offer", Type: encoding.Struct, Elem: TradeOfferIntermediarySchema},
	encoding.FieldSpec{Name: "seller_signature", Type: encoding.Signature},
	encoding.FieldSpec{Name: "intermediary_signature", Type: encoding.Signature},
)

// TradeOfferIntermediary is the decoded offer of an intermediated trade.
type TradeOfferIntermediary struct {
	Intermediary Intermediary
	Buyer        crypto.PublicKey
	Seller       crypto.PublicKey
	Assets       []assets.TradeAsset
	FeeStrategy  uint8
	Seed         uint64
	Memo         string
}

func tradeOfferIntermediaryFromRecord(r *encoding.Record) TradeOfferIntermediary {
	return TradeOfferIntermediary{
		Intermediary: IntermediaryFromRecord(r.Struct(0)),
		Buyer:        r.PublicKey(1),
		Seller:       r.PublicKey(2),
		Assets:       tradeAssetSlice(r, 3),
		FeeStrategy:  r.Uint8(4),
		Seed:         r.Uint64(5),
		Memo:         r.String(6),
	}
}

// TradeIntermediary is a trade with a commissioned third party. The buyer
// signs the message; seller and intermediary each sign the embedded offer.
type TradeIntermediary struct {
	raw                   messages.RawMessage
	Offer                 TradeOfferIntermediary
	SellerSignature       crypto.Signature
	IntermediarySignature crypto.Signature
	offerBytes            []byte
	skipSigCheck          bool
}

func decodeTradeIntermediary(raw messages.RawMessage) (*TradeIntermediary, error) {
	r, err := raw.Decode(TradeIntermediarySchema)
	if err != nil {
		return nil, err
	}
	return &TradeIntermediary{
		raw:                   raw,
		Offer:                 tradeOfferIntermediaryFromRecord(r.Struct(0)),
		SellerSignature:       r.Signature(1),
		IntermediarySignature: r.Signature(2),
		offerBytes:            r.StructBytes(0),
	}, nil
}

func (t *TradeIntermediary) MessageType() uint16 { return TradeIntermediaryID }
func (t *TradeIntermediary) Name() string        { return "trade_intermediary" }
func (t *TradeIntermediary) Hash() crypto.Hash   { return t.raw.Hash() }

func (t *TradeIntermediary) Verify() bool {
	o := t.Offer
	strategy, ok := FeeStrategyFromWire(o.FeeStrategy)
	if !ok || !strategy.ValidFor(true) {
		return false
	}
	if o.Seller == o.Buyer ||
		o.Intermediary.Wallet == o.Seller ||
		o.Intermediary.Wallet == o.Buyer {
		return false
	}
	if t.skipSigCheck {
		return true
	}
	return t.raw.VerifySignature(o.Buyer) &&
		crypto.Verify(t.SellerSignature, t.offerBytes, o.Seller) &&
		crypto.Verify(t.IntermediarySignature, t.offerBytes, o.Intermediary.Wallet)
}

func (t *TradeIntermediary) Execute(fork *view.Fork) error {
	o := t.Offer
	offer := TradeOffer{
		Buyer:       o.Buyer,
		Seller:      o.Seller,
		Assets:      o.Assets,
		FeeStrategy: o.FeeStrategy,
		Seed:        o.Seed,
		Memo:        o.Memo,
	}
	intermediary := o.Intermediary
	return executeTrade(fork, offer, &intermediary)
}

func (t *TradeIntermediary) CalculateFees(r view.Reader) (map[crypto.PublicKey]uint64, error) {
	return tradeFeeTable(r, t.Offer.FeeStrategy, feeParties{
		sender:       t.Offer.Seller,
		recipient:    t.Offer.Buyer,
		intermediary: t.Offer.Intermediary.Wallet,
	})
}
