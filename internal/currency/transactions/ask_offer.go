package transactions

import (
	"github.com/assetchain/assetchain/internal/crypto"
	"github.com/assetchain/assetchain/internal/currency"
	"github.com/assetchain/assetchain/internal/currency/assets"
	"github.com/assetchain/assetchain/internal/currency/offers"
	"github.com/assetchain/assetchain/internal/currency/wallet"
	"github.com/assetchain/assetchain/internal/encoding"
	"github.com/assetchain/assetchain/internal/messages"
	"github.com/assetchain/assetchain/internal/view"
)

// AskOfferSchema is the body layout of an ask-offer transaction. BidOffer
// shares the layout under its own message type.
var AskOfferSchema = encoding.NewSchema(
	encoding.FieldSpec{Name: "pub_key", Type: encoding.PublicKey},
	encoding.FieldSpec{Name: "asset", Type: encoding.Struct, Elem: assets.TradeAssetSchema},
	encoding.FieldSpec{Name: "seed", Type: encoding.Uint64},
	encoding.FieldSpec{Name: "memo", Type: encoding.String},
)

// AskOffer records a standing intent to sell an asset at a price. No
// funds move; the offer lands in the per-asset book for a future matcher.
type AskOffer struct {
	raw          messages.RawMessage
	PubKey       crypto.PublicKey
	Asset        assets.TradeAsset
	Seed         uint64
	Memo         string
	skipSigCheck bool
}

func decodeAskOffer(raw messages.RawMessage) (*AskOffer, error) {
	r, err := raw.Decode(AskOfferSchema)
	if err != nil {
		return nil, err
	}
	return &AskOffer{
		raw:    raw,
		PubKey: r.PublicKey(0),
		Asset:  assets.TradeAssetFromRecord(r.Struct(1)),
		Seed:   r.Uint64(2),
		Memo:   r.String(3),
	}, nil
}

func (t *AskOffer) MessageType() uint16 { return AskOfferID }
func (t *AskOffer) Name() string        { return "ask_offer" }
func (t *AskOffer) Hash() crypto.Hash   { return t.raw.Hash() }

func (t *AskOffer) Verify() bool {
	if t.Asset.Amount == 0 || t.Asset.Price == 0 {
		return false
	}
	if t.skipSigCheck {
		return true
	}
	return t.raw.VerifySignature(t.PubKey)
}

func (t *AskOffer) Execute(fork *view.Fork) error {
	if _, found, err := assets.Fetch(fork, t.Asset.ID); err != nil {
		return err
	} else if !found {
		return currency.ErrAssetNotFound
	}

	// The seller must actually hold what it offers, and the lot's value
	// must not wrap uint64.
	if _, err := t.Asset.CheckedTotal(); err != nil {
		return err
	}
	seller, err := wallet.Fetch(fork, t.PubKey)
	if err != nil {
		return err
	}
	if seller.AmountOf(t.Asset.ID) < t.Asset.Amount {
		return currency.ErrInsufficientAssetAmount
	}

	book, err := offers.Fetch(fork, t.Asset.ID)
	if err != nil {
		return err
	}
	book.AddAsk(t.Asset.Price, offers.NewOffer(t.PubKey, t.Asset.Amount, t.Hash()))
	return offers.Store(fork, t.Asset.ID, book)
}
