// Package currency holds the primitives shared across the asset ledger
// service: the service identifier, the execution error taxonomy and the
// ledger-resident configuration.
package currency

import "fmt"

// ServiceID identifies the currency service in message headers.
const ServiceID uint16 = 2

// Error is an expected, ledger-level execution failure. Its numeric code is
// persisted into the status ledger and must stay stable across releases:
// every replica records the identical code for the identical transaction.
type Error uint8

const (
	// ErrInvalidTransaction means transaction content failed a business
	// invariant that signature verification cannot catch.
	ErrInvalidTransaction Error = 1
	// ErrInsufficientFunds means a paying wallet balance is too low.
	ErrInsufficientFunds Error = 2
	// ErrInsufficientAssetAmount means a wallet or the registry holds less
	// of an asset than the transaction moves.
	ErrInsufficientAssetAmount Error = 3
	// ErrAssetNotFound means a referenced asset id is absent.
	ErrAssetNotFound Error = 4
	// ErrInvalidAssetInfo means an asset id collides with a registry entry
	// created by a different creator.
	ErrInvalidAssetInfo Error = 5
)

func (e Error) Error() string {
	switch e {
	case ErrInvalidTransaction:
		return "invalid transaction"
	case ErrInsufficientFunds:
		return "insufficient funds"
	case ErrInsufficientAssetAmount:
		return "insufficient asset amount"
	case ErrAssetNotFound:
		return "asset not found"
	case ErrInvalidAssetInfo:
		return "invalid asset info"
	default:
		return fmt.Sprintf("unknown execution error %d", uint8(e))
	}
}
