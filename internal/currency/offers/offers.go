// Package offers stores the open ask and bid books per asset. Offers are
// kept price-sorted with the best candidate at the tail of its book, so a
// future matcher pops from the end. Matching itself is out of scope here:
// ask-offer and bid-offer transactions only record intent.
package offers

import (
	"fmt"

	"github.com/assetchain/assetchain/internal/crypto"
	"github.com/assetchain/assetchain/internal/currency/assets"
	"github.com/assetchain/assetchain/internal/view"
)

const keyPrefix = "offers/"

func storageKey(id assets.AssetID) []byte {
	key := make([]byte, 0, len(keyPrefix)+len(id))
	key = append(key, keyPrefix...)
	return append(key, id[:]...)
}

// Offer is one open intent: the wallet behind it, the amount of the asset
// and the hash of the transaction that placed it.
type Offer struct {
	_      struct{} `cbor:",toarray"`
	Wallet crypto.PublicKey
	Amount uint64
	TxHash crypto.Hash
}

// NewOffer creates an open offer record.
func NewOffer(wallet crypto.PublicKey, amount uint64, txHash crypto.Hash) Offer {
	return Offer{Wallet: wallet, Amount: amount, TxHash: txHash}
}

// PricedOffers groups the offers open at one price point.
type PricedOffers struct {
	_      struct{} `cbor:",toarray"`
	Price  uint64
	Offers []Offer
}

// OpenOffers is the per-asset book. Bids are sorted by ascending price and
// asks by descending price; either way the most attractive price point sits
// at the tail.
type OpenOffers struct {
	_    struct{} `cbor:",toarray"`
	Bids []PricedOffers
	Asks []PricedOffers
}

// AddBid files a buy intent at the given price.
func (o *OpenOffers) AddBid(price uint64, offer Offer) {
	o.Bids = insert(o.Bids, price, offer, func(existing uint64) bool {
		return price < existing
	})
}

// AddAsk files a sell intent at the given price.
func (o *OpenOffers) AddAsk(price uint64, offer Offer) {
	o.Asks = insert(o.Asks, price, offer, func(existing uint64) bool {
		return price > existing
	})
}

// insert places offer at its price point, creating the point at the
// position keeping the book sorted. before reports whether the new price
// sorts before an existing one.
func insert(book []PricedOffers, price uint64, offer Offer, before func(existing uint64) bool) []PricedOffers {
	at := len(book)
	for i, p := range book {
		if p.Price == price {
			book[i].Offers = append(book[i].Offers, offer)
			return book
		}
		if before(p.Price) {
			at = i
			break
		}
	}
	book = append(book, PricedOffers{})
	copy(book[at+1:], book[at:])
	book[at] = PricedOffers{Price: price, Offers: []Offer{offer}}
	return book
}

// BestBid returns the highest open bid price.
func (o *OpenOffers) BestBid() (PricedOffers, bool) {
	if len(o.Bids) == 0 {
		return PricedOffers{}, false
	}
	return o.Bids[len(o.Bids)-1], true
}

// BestAsk returns the lowest open ask price.
func (o *OpenOffers) BestAsk() (PricedOffers, bool) {
	if len(o.Asks) == 0 {
		return PricedOffers{}, false
	}
	return o.Asks[len(o.Asks)-1], true
}

// Fetch loads the book for the asset. An asset without a stored book
// resolves to an empty one.
func Fetch(r view.Reader, id assets.AssetID) (*OpenOffers, error) {
	var o OpenOffers
	found, err := r.Get(storageKey(id), &o)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch offers of %s: %w", id, err)
	}
	if !found {
		return &OpenOffers{}, nil
	}
	return &o, nil
}

// Store writes the book for the asset.
func Store(fork *view.Fork, id assets.AssetID, o *OpenOffers) error {
	if err := fork.Put(storageKey(id), o); err != nil {
		return fmt.Errorf("failed to store offers of %s: %w", id, err)
	}
	return nil
}
