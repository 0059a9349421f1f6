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

// TransferSchema is the body layout of a transfer transaction.
var TransferSchema = encoding.NewSchema(
	encoding.FieldSpec{Name: "sender", Type: encoding.PublicKey},
	encoding.FieldSpec{Name: "recipient", Type: encoding.PublicKey},
	encoding.FieldSpec{Name: "amount", Type: encoding.Uint64},
	encoding.FieldSpec{Name: "assets", Type: encoding.Slice, Elem: assets.AssetBundleSchema},
	encoding.FieldSpec{Name: "seed", Type: encoding.Uint64},
	encoding.FieldSpec{Name: "memo", Type: encoding.String},
)

// Transfer moves coins and asset bundles from sender to recipient. The
// sender signs the message and pays the flat fee and the creator fees.
type Transfer struct {
	raw          messages.RawMessage
	Sender       crypto.PublicKey
	Recipient    crypto.PublicKey
	Amount       uint64
	Assets       []assets.AssetBundle
	Seed         uint64
	Memo         string
	skipSigCheck bool
}

func decodeTransfer(raw messages.RawMessage) (*Transfer, error) {
	r, err := raw.Decode(TransferSchema)
	if err != nil {
		return nil, err
	}
	return &Transfer{
		raw:       raw,
		Sender:    r.PublicKey(0),
		Recipient: r.PublicKey(1),
		Amount:    r.Uint64(2),
		Assets:    bundleSlice(r, 3),
		Seed:      r.Uint64(4),
		Memo:      r.String(5),
	}, nil
}

func (t *Transfer) MessageType() uint16 { return TransferID }
func (t *Transfer) Name() string        { return "transfer" }
func (t *Transfer) Hash() crypto.Hash   { return t.raw.Hash() }

func (t *Transfer) Verify() bool {
	if t.Sender == t.Recipient {
		return false
	}
	if t.skipSigCheck {
		return true
	}
	return t.raw.VerifySignature(t.Sender)
}

func (t *Transfer) Execute(fork *view.Fork) error {
	cfg, err := currency.ExtractConfiguration(fork)
	if err != nil {
		return err
	}
	if err := collectFlatFee(fork, cfg, t.Sender, cfg.Fees.Transfer); err != nil {
		return err
	}

	fees, err := NewTransferFees(fork, t.Assets)
	if err != nil {
		return err
	}
	wallets := map[crypto.PublicKey]*wallet.Wallet{}
	if err := fees.Collect(wallets, fork, t.Sender); err != nil {
		return err
	}
	sender := wallets[t.Sender]
	recipient, err := fetchInto(wallets, fork, t.Recipient)
	if err != nil {
		return err
	}
	if err := wallet.MoveCoins(sender, recipient, t.Amount); err != nil {
		return err
	}
	if err := wallet.MoveAssets(sender, recipient, t.Assets); err != nil {
		return err
	}
	return storeWallets(fork, wallets)
}

func (t *Transfer) CalculateFees(r view.Reader) (map[crypto.PublicKey]uint64, error) {
	cfg, err := currency.ExtractConfiguration(r)
	if err != nil {
		return nil, err
	}
	table := map[crypto.PublicKey]uint64{}
	if t.Sender != cfg.Treasury {
		table[t.Sender] = cfg.Fees.Transfer
	}
	return table, nil
}
