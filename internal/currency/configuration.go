package currency

import (
	"fmt"

	"github.com/assetchain/assetchain/internal/crypto"
	"github.com/assetchain/assetchain/internal/view"
)

var configurationKey = []byte("currency/configuration")

// TransactionFees is the flat protocol-level fee charged per transaction
// kind, credited to the treasury wallet.
type TransactionFees struct {
	_            struct{} `cbor:",toarray"`
	AddAssets    uint64
	DeleteAssets uint64
	Transfer     uint64
	Trade        uint64
	Exchange     uint64
}

// Configuration is the service configuration record stored in the ledger
// itself, so that every replica applies identical fee rules.
type Configuration struct {
	_        struct{} `cbor:",toarray"`
	Treasury crypto.PublicKey
	Fees     TransactionFees
}

// DefaultConfiguration is used until a configuration record is committed.
func DefaultConfiguration() Configuration {
	return Configuration{
		Fees: TransactionFees{
			AddAssets:    1,
			DeleteAssets: 1,
			Transfer:     1,
			Trade:        1,
			Exchange:     1,
		},
	}
}

// ExtractConfiguration reads the current configuration from the view,
// falling back to the default when none has been committed yet.
func ExtractConfiguration(v view.Reader) (Configuration, error) {
	var cfg Configuration
	ok, err := v.Get(configurationKey, &cfg)
	if err != nil {
		return Configuration{}, fmt.Errorf("failed to read configuration: %w", err)
	}
	if !ok {
		return DefaultConfiguration(), nil
	}
	return cfg, nil
}

// StoreConfiguration writes the configuration record.
func StoreConfiguration(f *view.Fork, cfg Configuration) error {
	return f.Put(configurationKey, &cfg)
}
