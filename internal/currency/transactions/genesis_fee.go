package transactions

import (
	"github.com/assetchain/assetchain/internal/crypto"
	"github.com/assetchain/assetchain/internal/currency"
	"github.com/assetchain/assetchain/internal/currency/wallet"
	"github.com/assetchain/assetchain/internal/view"
)

// collectFlatFee debits the flat protocol fee from payer and credits the
// treasury, persisting both wallets immediately. Once this returns nil
// the fee is committed: a later settlement failure does not roll it back.
// A payer that is the treasury itself pays nothing.
func collectFlatFee(fork *view.Fork, cfg currency.Configuration, payer crypto.PublicKey, fee uint64) error {
	if payer == cfg.Treasury {
		return nil
	}
	payerWallet, err := wallet.Fetch(fork, payer)
	if err != nil {
		return err
	}
	treasury, err := wallet.Fetch(fork, cfg.Treasury)
	if err != nil {
		return err
	}
	if err := wallet.MoveCoins(payerWallet, treasury, fee); err != nil {
		return err
	}
	if err := wallet.Store(fork, payer, payerWallet); err != nil {
		return err
	}
	return wallet.Store(fork, cfg.Treasury, treasury)
}

// feeParties names the wallets a fee strategy can designate.
type feeParties struct {
	sender       crypto.PublicKey
	recipient    crypto.PublicKey
	intermediary crypto.PublicKey
}

// collectStrategyFee collects the flat fee from the party (or split pair)
// the strategy designates. Split fees always sum to fee exactly, with the
// odd unit on the sender side. Both halves of a split are moved in memory
// before either wallet is stored, so a payer that cannot cover its part
// leaves the other untouched.
func collectStrategyFee(fork *view.Fork, cfg currency.Configuration, strategy FeeStrategy, parties feeParties, fee uint64) error {
	switch strategy {
	case FeeStrategyRecipient:
		return collectFlatFee(fork, cfg, parties.recipient, fee)
	case FeeStrategySender:
		return collectFlatFee(fork, cfg, parties.sender, fee)
	case FeeStrategyRecipientAndSender:
		senderPart, recipientPart := SplitFee(fee)
		wallets := map[crypto.PublicKey]*wallet.Wallet{}
		treasury, err := fetchInto(wallets, fork, cfg.Treasury)
		if err != nil {
			return err
		}
		parts := []struct {
			payer crypto.PublicKey
			part  uint64
		}{
			{parties.sender, senderPart},
			{parties.recipient, recipientPart},
		}
		for _, p := range parts {
			if p.payer == cfg.Treasury {
				continue
			}
			payer, err := fetchInto(wallets, fork, p.payer)
			if err != nil {
				return err
			}
			if err := wallet.MoveCoins(payer, treasury, p.part); err != nil {
				return err
			}
		}
		return storeWallets(fork, wallets)
	case FeeStrategyIntermediary:
		return collectFlatFee(fork, cfg, parties.intermediary, fee)
	default:
		return currency.ErrInvalidTransaction
	}
}
