package assets

import (
	"github.com/assetchain/assetchain/internal/crypto"
	"github.com/assetchain/assetchain/internal/currency"
	"github.com/assetchain/assetchain/internal/util"
)

// AssetInfo is the registry record of one asset: its creator, the total
// outstanding amount and the creator fee schedule. The record stays in the
// registry even when the outstanding amount reaches zero.
type AssetInfo struct {
	_       struct{} `cbor:",toarray"`
	Creator crypto.PublicKey
	Amount  uint64
	Fees    Fees
}

// NewAssetInfo creates a registry record.
func NewAssetInfo(creator crypto.PublicKey, amount uint64, fees Fees) AssetInfo {
	return AssetInfo{Creator: creator, Amount: amount, Fees: fees}
}

// Increase returns a copy with the outstanding amount increased, failing
// when the supply would wrap uint64.
func (i AssetInfo) Increase(amount uint64) (AssetInfo, error) {
	sum, overflow, _ := util.AddUint64(i.Amount, amount)
	if overflow {
		return i, currency.ErrInvalidTransaction
	}
	i.Amount = sum
	return i, nil
}

// Decrease returns a copy with the outstanding amount decreased, failing
// when more units would be destroyed than exist.
func (i AssetInfo) Decrease(amount uint64) (AssetInfo, error) {
	if i.Amount < amount {
		return i, currency.ErrInsufficientAssetAmount
	}
	i.Amount -= amount
	return i, nil
}
