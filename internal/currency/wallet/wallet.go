// Package wallet holds per-key coin balances and asset holdings, and the
// move operations the settlement engine is built from.
package wallet

import (
	"fmt"

	"github.com/assetchain/assetchain/internal/crypto"
	"github.com/assetchain/assetchain/internal/currency"
	"github.com/assetchain/assetchain/internal/currency/assets"
	"github.com/assetchain/assetchain/internal/util"
	"github.com/assetchain/assetchain/internal/view"
)

const keyPrefix = "wallets/"

func storageKey(pub crypto.PublicKey) []byte {
	key := make([]byte, 0, len(keyPrefix)+len(pub))
	key = append(key, keyPrefix...)
	return append(key, pub[:]...)
}

// Wallet is the ledger record of one public key: its coin balance and the
// asset bundles it holds.
type Wallet struct {
	_       struct{} `cbor:",toarray"`
	Balance uint64
	Assets  []assets.AssetBundle
}

// New creates a wallet with the given balance and holdings.
func New(balance uint64, bundles []assets.AssetBundle) *Wallet {
	return &Wallet{Balance: balance, Assets: bundles}
}

// Fetch loads the wallet stored under pub. A key with no stored record
// resolves to an empty wallet: every key has a wallet, most are empty.
func Fetch(r view.Reader, pub crypto.PublicKey) (*Wallet, error) {
	var w Wallet
	found, err := r.Get(storageKey(pub), &w)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch wallet %s: %w", pub, err)
	}
	if !found {
		return &Wallet{}, nil
	}
	return &w, nil
}

// Store writes the wallet record under pub.
func Store(fork *view.Fork, pub crypto.PublicKey, w *Wallet) error {
	if err := fork.Put(storageKey(pub), w); err != nil {
		return fmt.Errorf("failed to store wallet %s: %w", pub, err)
	}
	return nil
}

// AmountOf returns how many units of the asset the wallet holds.
func (w *Wallet) AmountOf(id assets.AssetID) uint64 {
	for _, b := range w.Assets {
		if b.ID == id {
			return b.Amount
		}
	}
	return 0
}

// AddCoins credits the balance, failing without mutation when it would
// wrap uint64.
func (w *Wallet) AddCoins(amount uint64) error {
	sum, overflow, _ := util.AddUint64(w.Balance, amount)
	if overflow {
		return currency.ErrInvalidTransaction
	}
	w.Balance = sum
	return nil
}

// SubCoins debits the balance, failing without mutation when it is too low.
func (w *Wallet) SubCoins(amount uint64) error {
	if w.Balance < amount {
		return currency.ErrInsufficientFunds
	}
	w.Balance -= amount
	return nil
}

// AddAssets merges bundles into the holdings, summing amounts per id. The
// merge is all or nothing: every resulting amount is checked against
// uint64 overflow before any bundle is applied.
func (w *Wallet) AddAssets(bundles []assets.AssetBundle) error {
	if err := w.checkAddAssets(bundles); err != nil {
		return err
	}
	for _, b := range bundles {
		w.addAsset(b)
	}
	return nil
}

func (w *Wallet) checkAddAssets(bundles []assets.AssetBundle) error {
	incoming := map[assets.AssetID]uint64{}
	for _, b := range bundles {
		sum, overflow, _ := util.AddUint64(incoming[b.ID], b.Amount)
		if overflow {
			return currency.ErrInvalidTransaction
		}
		incoming[b.ID] = sum
	}
	for id, amount := range incoming {
		if _, overflow, _ := util.AddUint64(w.AmountOf(id), amount); overflow {
			return currency.ErrInvalidTransaction
		}
	}
	return nil
}

func (w *Wallet) addAsset(b assets.AssetBundle) {
	for i := range w.Assets {
		if w.Assets[i].ID == b.ID {
			w.Assets[i].Amount += b.Amount
			return
		}
	}
	w.Assets = append(w.Assets, b)
}

// RemoveAssets subtracts bundles from the holdings. The removal is all or
// nothing: every bundle is checked against the holdings before any is
// applied, so a failed call leaves the wallet unchanged. Holdings that
// reach zero are dropped from the record.
func (w *Wallet) RemoveAssets(bundles []assets.AssetBundle) error {
	for _, b := range bundles {
		if w.AmountOf(b.ID) < b.Amount {
			return currency.ErrInsufficientAssetAmount
		}
	}
	for _, b := range bundles {
		w.removeAsset(b)
	}
	return nil
}

func (w *Wallet) removeAsset(b assets.AssetBundle) {
	for i := range w.Assets {
		if w.Assets[i].ID != b.ID {
			continue
		}
		w.Assets[i].Amount -= b.Amount
		if w.Assets[i].Amount == 0 {
			w.Assets = append(w.Assets[:i], w.Assets[i+1:]...)
		}
		return
	}
}

// MoveCoins moves amount from one wallet to another. On failure neither
// wallet changes.
func MoveCoins(from, to *Wallet, amount uint64) error {
	if from.Balance < amount {
		return currency.ErrInsufficientFunds
	}
	if err := to.AddCoins(amount); err != nil {
		return err
	}
	from.Balance -= amount
	return nil
}

// MoveAssets moves bundles from one wallet to another, all or nothing.
func MoveAssets(from, to *Wallet, bundles []assets.AssetBundle) error {
	if err := to.checkAddAssets(bundles); err != nil {
		return err
	}
	if err := from.RemoveAssets(bundles); err != nil {
		return err
	}
	return to.AddAssets(bundles)
}
