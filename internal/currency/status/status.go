// Package status records the per-transaction execution outcome. Every
// processed transaction gets exactly one record keyed by its hash, written
// whether settlement succeeded or failed.
package status

import (
	"errors"
	"fmt"

	"github.com/assetchain/assetchain/internal/crypto"
	"github.com/assetchain/assetchain/internal/currency"
	"github.com/assetchain/assetchain/internal/view"
)

const keyPrefix = "tx_status/"

// Success is the stored code of a fully settled transaction.
const Success uint8 = 0

func storageKey(hash crypto.Hash) []byte {
	key := make([]byte, 0, len(keyPrefix)+len(hash))
	key = append(key, keyPrefix...)
	return append(key, hash[:]...)
}

// Store records the outcome of the transaction with the given hash. A nil
// result stores Success, a currency.Error stores its numeric code. Any
// other error is a processing fault and must not reach the status ledger.
func Store(fork *view.Fork, hash crypto.Hash, result error) error {
	code := Success
	if result != nil {
		var execErr currency.Error
		if !errors.As(result, &execErr) {
			return fmt.Errorf("not an execution status: %w", result)
		}
		code = uint8(execErr)
	}
	if err := fork.Put(storageKey(hash), code); err != nil {
		return fmt.Errorf("failed to store status of %s: %w", hash, err)
	}
	return nil
}

// Get returns the stored outcome code of the transaction with the given
// hash. The second return is false when the transaction is unknown.
func Get(r view.Reader, hash crypto.Hash) (uint8, bool, error) {
	var code uint8
	found, err := r.Get(storageKey(hash), &code)
	if err != nil {
		return 0, false, fmt.Errorf("failed to get status of %s: %w", hash, err)
	}
	return code, found, nil
}
