package transactions

import (
	"github.com/assetchain/assetchain/internal/crypto"
	"github.com/assetchain/assetchain/internal/currency"
	"github.com/assetchain/assetchain/internal/currency/assets"
	"github.com/assetchain/assetchain/internal/currency/wallet"
	"github.com/assetchain/assetchain/internal/encoding"
	"github.com/assetchain/assetchain/internal/messages"
	"github.com/assetchain/assetchain/internal/view"
)

// ExchangeOfferSchema is the standalone layout of an exchange offer. The
// sender signs exactly these bytes.
var ExchangeOfferSchema = encoding.NewSchema(
	encoding.FieldSpec{Name: "sender", Type: encoding.PublicKey},
	encoding.FieldSpec{Name: "sender_assets", Type: encoding.Slice, Elem: assets.AssetBundleSchema},
	encoding.FieldSpec{Name: "sender_value", Type: encoding.Uint64},
	encoding.FieldSpec{Name: "recipient", Type: encoding.PublicKey},
	encoding.FieldSpec{Name: "recipient_assets", Type: encoding.Slice, Elem: assets.AssetBundleSchema},
	encoding.FieldSpec{Name: "fee_strategy", Type: encoding.Uint8},
	encoding.FieldSpec{Name: "seed", Type: encoding.Uint64},
	encoding.FieldSpec{Name: "memo", Type: encoding.String},
)

// ExchangeSchema is the body layout of the enclosing exchange transaction.
var ExchangeSchema = encoding.NewSchema(
	encoding.FieldSpec{Name: "offer", Type: encoding.Struct, Elem: ExchangeOfferSchema},
	encoding.FieldSpec{Name: "sender_signature", Type: encoding.Signature},
)

// ExchangeOffer is the decoded offer of an exchange: the sender gives
// coins and assets, the recipient gives assets back.
type ExchangeOffer struct {
	Sender          crypto.PublicKey
	SenderAssets    []assets.AssetBundle
	SenderValue     uint64
	Recipient       crypto.PublicKey
	RecipientAssets []assets.AssetBundle
	FeeStrategy     uint8
	Seed            uint64
	Memo            string
}

func exchangeOfferFromRecord(r *encoding.Record) ExchangeOffer {
	return ExchangeOffer{
		Sender:          r.PublicKey(0),
		SenderAssets:    bundleSlice(r, 1),
		SenderValue:     r.Uint64(2),
		Recipient:       r.PublicKey(3),
		RecipientAssets: bundleSlice(r, 4),
		FeeStrategy:     r.Uint8(5),
		Seed:            r.Uint64(6),
		Memo:            r.String(7),
	}
}

// Exchange settles a two-way asset swap with an optional coin payment
// from the sender. The recipient signs the message, the sender signs the
// embedded offer.
type Exchange struct {
	raw             messages.RawMessage
	Offer           ExchangeOffer
	SenderSignature crypto.Signature
	offerBytes      []byte
	skipSigCheck    bool
}

func decodeExchange(raw messages.RawMessage) (*Exchange, error) {
	r, err := raw.Decode(ExchangeSchema)
	if err != nil {
		return nil, err
	}
	return &Exchange{
		raw:             raw,
		Offer:           exchangeOfferFromRecord(r.Struct(0)),
		SenderSignature: r.Signature(1),
		offerBytes:      r.StructBytes(0),
	}, nil
}

func (t *Exchange) MessageType() uint16 { return ExchangeID }
func (t *Exchange) Name() string        { return "exchange" }
func (t *Exchange) Hash() crypto.Hash   { return t.raw.Hash() }

func (t *Exchange) Verify() bool {
	o := t.Offer
	strategy, ok := FeeStrategyFromWire(o.FeeStrategy)
	if !ok || !strategy.ValidFor(false) {
		return false
	}
	if o.Sender == o.Recipient {
		return false
	}
	if t.skipSigCheck {
		return true
	}
	return t.raw.VerifySignature(o.Recipient) &&
		crypto.Verify(t.SenderSignature, t.offerBytes, o.Sender)
}

func (t *Exchange) Execute(fork *view.Fork) error {
	return executeExchange(fork, t.Offer, nil)
}

func executeExchange(fork *view.Fork, o ExchangeOffer, intermediary *Intermediary) error {
	cfg, err := currency.ExtractConfiguration(fork)
	if err != nil {
		return err
	}
	strategy, ok := FeeStrategyFromWire(o.FeeStrategy)
	if !ok {
		return currency.ErrInvalidTransaction
	}
	parties := feeParties{sender: o.Sender, recipient: o.Recipient}
	if intermediary != nil {
		parties.intermediary = intermediary.Wallet
	}
	if err := collectStrategyFee(fork, cfg, strategy, parties, cfg.Fees.Exchange); err != nil {
		return err
	}

	fees, err := NewExchangeFees(fork, o.SenderAssets, o.RecipientAssets)
	if err != nil {
		return err
	}
	if intermediary != nil {
		fees.AddFee(intermediary.Wallet, intermediary.Commission)
	}

	// The coin payment, the creator fees and both asset moves mutate one
	// working wallet set and persist together at the end. Only the flat
	// fee above survives a settlement failure.
	wallets := map[crypto.PublicKey]*wallet.Wallet{}
	sender, err := fetchInto(wallets, fork, o.Sender)
	if err != nil {
		return err
	}
	recipient, err := fetchInto(wallets, fork, o.Recipient)
	if err != nil {
		return err
	}
	if err := wallet.MoveCoins(sender, recipient, o.SenderValue); err != nil {
		return err
	}

	switch strategy {
	case FeeStrategyRecipient:
		err = fees.Collect(wallets, fork, o.Recipient)
	case FeeStrategySender:
		err = fees.Collect(wallets, fork, o.Sender)
	case FeeStrategyRecipientAndSender:
		err = fees.Collect2(wallets, fork, o.Sender, o.Recipient)
	case FeeStrategyIntermediary:
		err = fees.Collect(wallets, fork, intermediary.Wallet)
	}
	if err != nil {
		return err
	}

	if err := wallet.MoveAssets(sender, recipient, o.SenderAssets); err != nil {
		return err
	}
	if err := wallet.MoveAssets(recipient, sender, o.RecipientAssets); err != nil {
		return err
	}
	return storeWallets(fork, wallets)
}

// exchangeFeeTable quotes the flat exchange fee per paying party.
func exchangeFeeTable(r view.Reader, strategyWire uint8, parties feeParties) (map[crypto.PublicKey]uint64, error) {
	cfg, err := currency.ExtractConfiguration(r)
	if err != nil {
		return nil, err
	}
	strategy, ok := FeeStrategyFromWire(strategyWire)
	if !ok {
		return nil, currency.ErrInvalidTransaction
	}
	fee := cfg.Fees.Exchange
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

func (t *Exchange) CalculateFees(r view.Reader) (map[crypto.PublicKey]uint64, error) {
	return exchangeFeeTable(r, t.Offer.FeeStrategy, feeParties{
		sender:    t.Offer.Sender,
		recipient: t.Offer.Recipient,
	})
}
