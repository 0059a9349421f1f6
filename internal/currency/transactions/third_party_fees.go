package transactions

import (
	"bytes"

	"github.com/assetchain/assetchain/internal/crypto"
	"github.com/assetchain/assetchain/internal/currency"
	"github.com/assetchain/assetchain/internal/currency/assets"
	"github.com/assetchain/assetchain/internal/currency/wallet"
	"github.com/assetchain/assetchain/internal/view"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ThirdPartyFees accumulates the creator royalties (plus any intermediary
// commission) owed by a transaction, keyed by the receiving wallet.
type ThirdPartyFees map[crypto.PublicKey]uint64

// NewTradeFees computes the creator fees for a list of traded lots: per
// lot, the creator's trade fee over amount times price.
func NewTradeFees(r view.Reader, lots []assets.TradeAsset) (ThirdPartyFees, error) {
	fees := ThirdPartyFees{}
	for _, lot := range lots {
		info, found, err := assets.Fetch(r, lot.ID)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, currency.ErrAssetNotFound
		}
		total, err := lot.CheckedTotal()
		if err != nil {
			return nil, err
		}
		fees.AddFee(info.Creator, info.Fees.Trade.ForValue(total))
	}
	return fees, nil
}

// NewExchangeFees computes the creator fees for the asset lists of an
// exchange: per bundle, the creator's exchange fee over the amount moved.
func NewExchangeFees(r view.Reader, bundleLists ...[]assets.AssetBundle) (ThirdPartyFees, error) {
	return bundleFees(r, bundleLists, func(f assets.Fees) assets.Fee { return f.Exchange })
}

// NewTransferFees computes the creator fees for a transfer's bundles.
func NewTransferFees(r view.Reader, bundles []assets.AssetBundle) (ThirdPartyFees, error) {
	return bundleFees(r, [][]assets.AssetBundle{bundles}, func(f assets.Fees) assets.Fee { return f.Transfer })
}

func bundleFees(r view.Reader, bundleLists [][]assets.AssetBundle, pick func(assets.Fees) assets.Fee) (ThirdPartyFees, error) {
	fees := ThirdPartyFees{}
	for _, bundles := range bundleLists {
		for _, b := range bundles {
			info, found, err := assets.Fetch(r, b.ID)
			if err != nil {
				return nil, err
			}
			if !found {
				return nil, currency.ErrAssetNotFound
			}
			fees.AddFee(info.Creator, pick(info.Fees).ForValue(b.Amount))
		}
	}
	return fees, nil
}

// AddFee adds an amount owed to a receiver on top of whatever is already
// accumulated for it.
func (f ThirdPartyFees) AddFee(receiver crypto.PublicKey, amount uint64) {
	f[receiver] += amount
}

// receivers returns the fee receivers in a deterministic order. Map
// iteration order must never leak into settlement.
func (f ThirdPartyFees) receivers() []crypto.PublicKey {
	keys := maps.Keys(f)
	slices.SortFunc(keys, func(a, b crypto.PublicKey) bool {
		return bytes.Compare(a[:], b[:]) < 0
	})
	return keys
}

// Collect debits every accumulated fee from the payer and credits the
// receivers, all within the caller's working wallet set. Nothing is
// persisted: the caller merges further mutations and stores the set in
// one place. A fee owed to the payer itself is a no-op.
func (f ThirdPartyFees) Collect(wallets map[crypto.PublicKey]*wallet.Wallet, r view.Reader, payer crypto.PublicKey) error {
	payerWallet, err := fetchInto(wallets, r, payer)
	if err != nil {
		return err
	}
	for _, receiver := range f.receivers() {
		if receiver == payer {
			continue
		}
		receiverWallet, err := fetchInto(wallets, r, receiver)
		if err != nil {
			return err
		}
		if err := wallet.MoveCoins(payerWallet, receiverWallet, f[receiver]); err != nil {
			return err
		}
	}
	return nil
}

// Collect2 splits every accumulated fee between two payers, the split
// summing exactly with the remainder on the first payer.
func (f ThirdPartyFees) Collect2(wallets map[crypto.PublicKey]*wallet.Wallet, r view.Reader, payer1, payer2 crypto.PublicKey) error {
	w1, err := fetchInto(wallets, r, payer1)
	if err != nil {
		return err
	}
	w2, err := fetchInto(wallets, r, payer2)
	if err != nil {
		return err
	}
	for _, receiver := range f.receivers() {
		receiverWallet, err := fetchInto(wallets, r, receiver)
		if err != nil {
			return err
		}
		part1, part2 := SplitFee(f[receiver])
		if receiver != payer1 {
			if err := wallet.MoveCoins(w1, receiverWallet, part1); err != nil {
				return err
			}
		}
		if receiver != payer2 {
			if err := wallet.MoveCoins(w2, receiverWallet, part2); err != nil {
				return err
			}
		}
	}
	return nil
}

func fetchInto(wallets map[crypto.PublicKey]*wallet.Wallet, r view.Reader, key crypto.PublicKey) (*wallet.Wallet, error) {
	if w, ok := wallets[key]; ok {
		return w, nil
	}
	w, err := wallet.Fetch(r, key)
	if err != nil {
		return nil, err
	}
	wallets[key] = w
	return w, nil
}

// storeWallets persists a working wallet set in deterministic key order.
func storeWallets(fork *view.Fork, wallets map[crypto.PublicKey]*wallet.Wallet) error {
	keys := maps.Keys(wallets)
	slices.SortFunc(keys, func(a, b crypto.PublicKey) bool {
		return bytes.Compare(a[:], b[:]) < 0
	})
	for _, key := range keys {
		if err := wallet.Store(fork, key, wallets[key]); err != nil {
			return err
		}
	}
	return nil
}
