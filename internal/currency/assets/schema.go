package assets

import (
	"fmt"

	"github.com/assetchain/assetchain/internal/view"
)

const keyPrefix = "assets/"

func registryKey(id AssetID) []byte {
	key := make([]byte, 0, len(keyPrefix)+len(id))
	key = append(key, keyPrefix...)
	return append(key, id[:]...)
}

// Fetch loads the registry record for id. The second return is false when no
// record exists.
func Fetch(r view.Reader, id AssetID) (AssetInfo, bool, error) {
	var info AssetInfo
	found, err := r.Get(registryKey(id), &info)
	if err != nil {
		return AssetInfo{}, false, fmt.Errorf("failed to fetch asset %s: %w", id, err)
	}
	return info, found, nil
}

// Store writes the registry record for id.
func Store(fork *view.Fork, id AssetID, info AssetInfo) error {
	if err := fork.Put(registryKey(id), info); err != nil {
		return fmt.Errorf("failed to store asset %s: %w", id, err)
	}
	return nil
}
