package transactions

import (
	"github.com/assetchain/assetchain/internal/crypto"
	"github.com/assetchain/assetchain/internal/currency"
	"github.com/assetchain/assetchain/internal/currency/assets"
	"github.com/assetchain/assetchain/internal/currency/wallet"
	"github.com/assetchain/assetchain/internal/encoding"
	"github.com/assetchain/assetchain/internal/messages"
	"github.com/assetchain/assetchain/internal/util"
	"github.com/assetchain/assetchain/internal/view"
)

// TradeOfferSchema is the standalone layout of a trade offer. The seller
// signs exactly these bytes.
var TradeOfferSchema = encoding.NewSchema(
	encoding.FieldSpec{Name: "buyer", Type: encoding.PublicKey},
	encoding.FieldSpec{Name: "seller", Type: encoding.PublicKey},
	encoding.FieldSpec{Name: "assets", Type: encoding.Slice, Elem: assets.TradeAssetSchema},
	encoding.FieldSpec{Name: "fee_strategy", Type: encoding.Uint8},
	encoding.FieldSpec{Name: "seed", Type: encoding.Uint64},
	encoding.FieldSpec{Name: "memo", Type: encoding.String},
)

// TradeSchema is the body layout of the enclosing trade transaction.
var TradeSchema = encoding.NewSchema(
	encoding.FieldSpec{Name: "offer", Type: encoding.Struct, Elem: TradeOfferSchema},
	encoding.FieldSpec{Name: "seller_signature", Type: encoding.Signature},
)

// TradeOffer is the decoded offer of a trade.
type TradeOffer struct {
	Buyer       crypto.PublicKey
	Seller      crypto.PublicKey
	Assets      []assets.TradeAsset
	FeeStrategy uint8
	Seed        uint64
	Memo        string
}

func tradeOfferFromRecord(r *encoding.Record) TradeOffer {
	return TradeOffer{
		Buyer:       r.PublicKey(0),
		Seller:      r.PublicKey(1),
		Assets:      tradeAssetSlice(r, 2),
		FeeStrategy: r.Uint8(3),
		Seed:        r.Uint64(4),
		Memo:        r.String(5),
	}
}

// Total is the coin value of the offer: the sum of amount times price over
// all lots. Overflow in an adversarial offer is an invalid transaction,
// never a wrapped total.
func (o TradeOffer) Total() (uint64, error) {
	totals := make([]uint64, len(o.Assets))
	for i, lot := range o.Assets {
		total, err := lot.CheckedTotal()
		if err != nil {
			return 0, err
		}
		totals[i] = total
	}
	sum, overflow, _ := util.AddUint64(totals...)
	if overflow {
		return 0, currency.ErrInvalidTransaction
	}
	return sum, nil
}

// Trade settles a priced asset sale between buyer and seller. The buyer
// signs the message, the seller signs the embedded offer.
type Trade struct {
	raw             messages.RawMessage
	Offer           TradeOffer
	SellerSignature crypto.Signature
	offerBytes      []byte
	skipSigCheck    bool
}

func decodeTrade(raw messages.RawMessage) (*Trade, error) {
	r, err := raw.Decode(TradeSchema)
	if err != nil {
		return nil, err
	}
	return &Trade{
		raw:             raw,
		Offer:           tradeOfferFromRecord(r.Struct(0)),
		SellerSignature: r.Signature(1),
		offerBytes:      r.StructBytes(0),
	}, nil
}

func (t *Trade) MessageType() uint16 { return TradeID }
func (t *Trade) Name() string        { return "trade" }
func (t *Trade) Hash() crypto.Hash   { return t.raw.Hash() }

func (t *Trade) Verify() bool {
	o := t.Offer
	strategy, ok := FeeStrategyFromWire(o.FeeStrategy)
	if !ok || !strategy.ValidFor(false) {
		return false
	}
	if o.Buyer == o.Seller {
		return false
	}
	if t.skipSigCheck {
		return true
	}
	return t.raw.VerifySignature(o.Buyer) &&
		crypto.Verify(t.SellerSignature, t.offerBytes, o.Seller)
}

func (t *Trade) Execute(fork *view.Fork) error {
	return executeTrade(fork, t.Offer, nil)
}

// executeTrade settles a trade offer, optionally with an intermediary
// whose commission joins the third-party fee set. The flat fee is
// committed first and survives a later settlement failure.
func executeTrade(fork *view.Fork, o TradeOffer, intermediary *Intermediary) error {
	cfg, err := currency.ExtractConfiguration(fork)
	if err != nil {
		return err
	}
	strategy, ok := FeeStrategyFromWire(o.FeeStrategy)
	if !ok {
		return currency.ErrInvalidTransaction
	}
	parties := feeParties{sender: o.Seller, recipient: o.Buyer}
	if intermediary != nil {
		parties.intermediary = intermediary.Wallet
	}
	if err := collectStrategyFee(fork, cfg, strategy, parties, cfg.Fees.Trade); err != nil {
		return err
	}

	fees, err := NewTradeFees(fork, o.Assets)
	if err != nil {
		return err
	}
	if intermediary != nil {
		fees.AddFee(intermediary.Wallet, intermediary.Commission)
	}

	// The principal payment, the creator fees and the asset move all
	// mutate one working wallet set and persist together at the end.
	// Only the flat fee above survives a settlement failure.
	wallets := map[crypto.PublicKey]*wallet.Wallet{}
	buyer, err := fetchInto(wallets, fork, o.Buyer)
	if err != nil {
		return err
	}
	seller, err := fetchInto(wallets, fork, o.Seller)
	if err != nil {
		return err
	}
	total, err := o.Total()
	if err != nil {
		return err
	}
	if err := wallet.MoveCoins(buyer, seller, total); err != nil {
		return err
	}

	switch strategy {
	case FeeStrategyRecipient:
		err = fees.Collect(wallets, fork, o.Buyer)
	case FeeStrategySender:
		err = fees.Collect(wallets, fork, o.Seller)
	case FeeStrategyRecipientAndSender:
		err = fees.Collect2(wallets, fork, o.Seller, o.Buyer)
	case FeeStrategyIntermediary:
		err = fees.Collect(wallets, fork, intermediary.Wallet)
	}
	if err != nil {
		return err
	}

	bundles := make([]assets.AssetBundle, len(o.Assets))
	for i, lot := range o.Assets {
		bundles[i] = lot.ToBundle()
	}
	if err := wallet.MoveAssets(seller, buyer, bundles); err != nil {
		return err
	}
	return storeWallets(fork, wallets)
}

// tradeFeeTable quotes the flat trade fee per paying party for a strategy.
func tradeFeeTable(r view.Reader, strategyWire uint8, parties feeParties) (map[crypto.PublicKey]uint64, error) {
	cfg, err := currency.ExtractConfiguration(r)
	if err != nil {
		return nil, err
	}
	strategy, ok := FeeStrategyFromWire(strategyWire)
	if !ok {
		return nil, currency.ErrInvalidTransaction
	}
	fee := cfg.Fees.Trade
	table := map[crypto.PublicKey]uint64{}
	add := func(key crypto.PublicKey, amount uint64) {
		if key != cfg.Treasury {
			table[key] += amount
		}
	}
	switch strategy {
	case FeeStrategyRecipient:
		add(parties.recipient, fee)
	case FeeStrategySender:
		add(parties.sender, fee)
	case FeeStrategyRecipientAndSender:
		senderPart, recipientPart := SplitFee(fee)
		add(parties.sender, senderPart)
		add(parties.recipient, recipientPart)
	case FeeStrategyIntermediary:
		add(parties.intermediary, fee)
	}
	return table, nil
}

func (t *Trade) CalculateFees(r view.Reader) (map[crypto.PublicKey]uint64, error) {
	return tradeFeeTable(r, t.Offer.FeeStrategy, feeParties{
		sender:    t.Offer.Seller,
		recipient: t.Offer.Buyer,
	})
}
