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

// BidOfferSchema is the body layout of a bid-offer transaction.
var BidOfferSchema = encoding.NewSchema(
	encoding.FieldSpec{Name: "pub_key", Type: encoding.PublicKey},
	encoding.FieldSpec{Name: "asset", Type: encoding.Struct, Elem: assets.TradeAssetSchema},
	encoding.FieldSpec{Name: "seed", Type: encoding.Uint64},
	encoding.FieldSpec{Name: "memo", Type: encoding.String},
)

// BidOffer records a standing intent to buy an asset at a price.
type BidOffer struct {
	raw          messages.RawMessage
	PubKey       crypto.PublicKey
	Asset        assets.TradeAsset
	Seed         uint64
	Memo         string
	skipSigCheck bool
}

func decodeBidOffer(raw messages.RawMessage) (*BidOffer, error) {
	r, err := raw.Decode(BidOfferSchema)
	if err != nil {
		return nil, err
	}
	return &BidOffer{
		raw:    raw,
		PubKey: r.PublicKey(0),
		Asset:  assets.TradeAssetFromRecord(r.Struct(1)),
		Seed:   r.Uint64(2),
		Memo:   r.String(3),
	}, nil
}

func (t *BidOffer) MessageType() uint16 { return BidOfferID }
func (t *BidOffer) Name() string        { return "bid_offer" }
func (t *BidOffer) Hash() crypto.Hash   { return t.raw.Hash() }

func (t *BidOffer) Verify() bool {
	if t.Asset.Amount == 0 || t.Asset.Price == 0 {
		return false
	}
	if t.skipSigCheck {
		return true
	}
	return t.raw.VerifySignature(t.PubKey)
}

func (t *BidOffer) Execute(fork *view.Fork) error {
	if _, found, err := assets.Fetch(fork, t.Asset.ID); err != nil {
		return err
	} else if !found {
		return currency.ErrAssetNotFound
	}

	// The buyer must be able to pay the full lot at its declared price.
	// A lot whose value wraps uint64 never reaches the book.
	total, err := t.Asset.CheckedTotal()
	if err != nil {
		return err
	}
	buyer, err := wallet.Fetch(fork, t.PubKey)
	if err != nil {
		return err
	}
	if buyer.Balance < total {
		return currency.ErrInsufficientFunds
	}

	book, err := offers.Fetch(fork, t.Asset.ID)
	if err != nil {
		return err
	}
	book.AddBid(t.Asset.Price, offers.NewOffer(t.PubKey, t.Asset.Amount, t.Hash()))
	return offers.Store(fork, t.Asset.ID, book)
}
