// Package transactions implements the transaction family of the currency
// service: decoding raw messages into typed variants, signature and
// structural verification, and the deterministic settlement logic every
// replica applies identically.
package transactions

import (
	"github.com/assetchain/assetchain/internal/crypto"
	"github.com/assetchain/assetchain/internal/view"
)

// Message type ids of the currency service transaction family.
const (
	TransferID              uint16 = 200
	TransferWithFeesPayerID uint16 = 201
	AddAssetsID             uint16 = 300
	DeleteAssetsID          uint16 = 400
	TradeID                 uint16 = 501
	TradeIntermediaryID     uint16 = 502
	ExchangeID              uint16 = 601
	ExchangeIntermediaryID  uint16 = 602
	AskOfferID              uint16 = 701
	BidOfferID              uint16 = 702
)

// Transaction is the capability contract the block processor consumes.
//
// Execute applies the transaction's settlement logic against the fork.
// An expected business outcome (insufficient funds and friends) is
// returned as a currency.Error for the processor to record into the
// status ledger; any other error is a processing fault that aborts the
// whole block. Execute never leaves a wallet half-updated: fee collection
// is committed stepwise, and each later step either fully applies or
// leaves the fork exactly as the previous step left it.
type Transaction interface {
	// MessageType returns the transaction's wire message type id.
	MessageType() uint16
	// Name returns the transaction kind name used in logs and metrics.
	Name() string
	// Hash returns the digest of the complete signed message.
	Hash() crypto.Hash
	// Verify runs signature and structural checks. No ledger access, no
	// mutation. A transaction failing Verify is never executed.
	Verify() bool
	// Execute applies the transaction to the fork.
	Execute(fork *view.Fork) error
}

// FeesCalculator is implemented by transactions whose protocol-level flat
// fee can be quoted ahead of execution, per paying party.
type FeesCalculator interface {
	CalculateFees(r view.Reader) (map[crypto.PublicKey]uint64, error)
}
