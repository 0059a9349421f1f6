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

// TransferOfferSchema is the standalone layout of a fees-payer transfer
// offer. The fees payer signs exactly these bytes.
var TransferOfferSchema = encoding.NewSchema(
	encoding.FieldSpec{Name: "sender", Type: encoding.PublicKey},
	encoding.FieldSpec{Name: "recipient", Type: encoding.PublicKey},
	encoding.FieldSpec{Name: "fees_payer", Type: encoding.PublicKey},
	encoding.FieldSpec{Name: "amount", Type: encoding.Uint64},
	encoding.FieldSpec{Name: "assets", Type: encoding.Slice, Elem: assets.AssetBundleSchema},
	encoding.FieldSpec{Name: "seed", Type: encoding.Uint64},
	encoding.FieldSpec{Name: "memo", Type: encoding.String},
)

// TransferWithFeesPayerSchema is the body layout of the enclosing
// transaction: the offer plus the fees payer's signature over it.
var TransferWithFeesPayerSchema = encoding.NewSchema(
	encoding.FieldSpec{Name: "offer", Type: encoding.Struct, Elem: TransferOfferSchema},
	encoding.FieldSpec{Name: "fees_payer_signature", Type: encoding.Signature},
)

// TransferOffer is the decoded offer of a fees-payer transfer.
type TransferOffer struct {
	Sender    crypto.PublicKey
	Recipient crypto.PublicKey
	FeesPayer crypto.PublicKey
	Amount    uint64
	Assets    []assets.AssetBundle
	Seed      uint64
	Memo      string
}

func transferOfferFromRecord(r *encoding.Record) TransferOffer {
	return TransferOffer{
		Sender:    r.PublicKey(0),
		Recipient: r.PublicKey(1),
		FeesPayer: r.PublicKey(2),
		Amount:    r.Uint64(3),
		Assets:    bundleSlice(r, 4),
		Seed:      r.Uint64(5),
		Memo:      r.String(6),
	}
}

// TransferWithFeesPayer is a transfer whose flat fee and creator fees are
// charged to a distinct fees-payer wallet. The sender signs the message,
// the fees payer signs the embedded offer.
type TransferWithFeesPayer struct {
	raw                messages.RawMessage
	Offer              TransferOffer
	FeesPayerSignature crypto.Signature
	offerBytes         []byte
	skipSigCheck       bool
}

func decodeTransferWithFeesPayer(raw messages.RawMessage) (*TransferWithFeesPayer, error) {
	r, err := raw.Decode(TransferWithFeesPayerSchema)
	if err != nil {
		return nil, err
	}
	return &TransferWithFeesPayer{
		raw:                raw,
		Offer:              transferOfferFromRecord(r.Struct(0)),
		FeesPayerSignature: r.Signature(1),
		offerBytes:         r.StructBytes(0),
	}, nil
}

func (t *TransferWithFeesPayer) MessageType() uint16 { return TransferWithFeesPayerID }
func (t *TransferWithFeesPayer) Name() string        { return "transfer_with_fees_payer" }
func (t *TransferWithFeesPayer) Hash() crypto.Hash   { return t.raw.Hash() }

func (t *TransferWithFeesPayer) Verify() bool {
	o := t.Offer
	if o.Sender == o.Recipient {
		return false
	}
	if t.skipSigCheck {
		return true
	}
	return t.raw.VerifySignature(o.Sender) &&
		crypto.Verify(t.FeesPayerSignature, t.offerBytes, o.FeesPayer)
}

func (t *TransferWithFeesPayer) Execute(fork *view.Fork) error {
	cfg, err := currency.ExtractConfiguration(fork)
	if err != nil {
		return err
	}
	o := t.Offer
	if err := collectFlatFee(fork, cfg, o.FeesPayer, cfg.Fees.Transfer); err != nil {
		return err
	}

	fees, err := NewTransferFees(fork, o.Assets)
	if err != nil {
		return err
	}
	wallets := map[crypto.PublicKey]*wallet.Wallet{}
	if err := fees.Collect(wallets, fork, o.FeesPayer); err != nil {
		return err
	}
	sender, err := fetchInto(wallets, fork, o.Sender)
	if err != nil {
		return err
	}
	recipient, err := fetchInto(wallets, fork, o.Recipient)
	if err != nil {
		return err
	}
	if err := wallet.MoveCoins(sender, recipient, o.Amount); err != nil {
		return err
	}
	if err := wallet.MoveAssets(sender, recipient, o.Assets); err != nil {
		return err
	}
	return storeWallets(fork, wallets)
}

func (t *TransferWithFeesPayer) CalculateFees(r view.Reader) (map[crypto.PublicKey]uint64, error) {
	cfg, err := currency.ExtractConfiguration(r)
	if err != nil {
		return nil, err
	}
	table := map[crypto.PublicKey]uint64{}
	if t.Offer.FeesPayer != cfg.Treasury {
		table[t.Offer.FeesPayer] = cfg.Fees.Transfer
	}
	return table, nil
}
