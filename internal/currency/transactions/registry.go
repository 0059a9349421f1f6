package transactions

import (
	"github.com/assetchain/assetchain/internal/currency"
	"github.com/assetchain/assetchain/internal/encoding"
	"github.com/assetchain/assetchain/internal/messages"
)

// Registry maps (service id, message type) pairs to transaction variants
// and decodes typed payloads from raw messages.
type Registry struct {
	structuralOnly bool
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithStructuralVerificationOnly makes decoded transactions skip
// signature checks in Verify while keeping the structural checks (party
// distinctness, fee strategy validity). Fuzzing uses this to reach
// execution paths without valid keys; never enable it on a validator.
func WithStructuralVerificationOnly() RegistryOption {
	return func(r *Registry) { r.structuralOnly = true }
}

// NewRegistry creates a transaction registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DecodeBytes validates framing and decodes a transaction from a raw
// buffer.
func (reg *Registry) DecodeBytes(b []byte) (Transaction, error) {
	raw, err := messages.FromBytes(b)
	if err != nil {
		return nil, err
	}
	return reg.Decode(raw)
}

// Decode dispatches a framed message on its (service id, message type)
// pair and decodes the typed payload. Unknown pairs and malformed bodies
// are rejected here, before any business logic can see the message.
func (reg *Registry) Decode(raw messages.RawMessage) (Transaction, error) {
	if raw.NetworkID() != messages.TestNetworkID {
		return nil, &encoding.Error{
			Kind:  encoding.ErrIncorrectNetworkID,
			Value: uint64(raw.NetworkID()),
		}
	}
	if raw.Version() != messages.ProtocolVersion {
		return nil, &encoding.Error{
			Kind:  encoding.ErrUnsupportedProtocolVersion,
			Value: uint64(raw.Version()),
		}
	}
	if raw.ServiceID() != currency.ServiceID {
		return nil, &encoding.Error{
			Kind:     encoding.ErrIncorrectServiceID,
			Position: 4,
			Value:    uint64(raw.ServiceID()),
		}
	}

	var (
		tx  Transaction
		err error
	)
	switch raw.MessageType() {
	case TransferID:
		var t *Transfer
		if t, err = decodeTransfer(raw); err == nil {
			t.skipSigCheck = reg.structuralOnly
			tx = t
		}
	case TransferWithFeesPayerID:
		var t *TransferWithFeesPayer
		if t, err = decodeTransferWithFeesPayer(raw); err == nil {
			t.skipSigCheck = reg.structuralOnly
			tx = t
		}
	case AddAssetsID:
		var t *AddAssets
		if t, err = decodeAddAssets(raw); err == nil {
			t.skipSigCheck = reg.structuralOnly
			tx = t
		}
	case DeleteAssetsID:
		var t *DeleteAssets
		if t, err = decodeDeleteAssets(raw); err == nil {
			t.skipSigCheck = reg.structuralOnly
			tx = t
		}
	case TradeID:
		var t *Trade
		if t, err = decodeTrade(raw); err == nil {
			t.skipSigCheck = reg.structuralOnly
			tx = t
		}
	case TradeIntermediaryID:
		var t *TradeIntermediary
		if t, err = decodeTradeIntermediary(raw); err == nil {
			t.skipSigCheck = reg.structuralOnly
			tx = t
		}
	case ExchangeID:
		var t *Exchange
		if t, err = decodeExchange(raw); err == nil {
			t.skipSigCheck = reg.structuralOnly
			tx = t
		}
	case ExchangeIntermediaryID:
		var t *ExchangeIntermediary
		if t, err = decodeExchangeIntermediary(raw); err == nil {
			t.skipSigCheck = reg.structuralOnly
			tx = t
		}
	case AskOfferID:
		var t *AskOffer
		if t, err = decodeAskOffer(raw); err == nil {
			t.skipSigCheck = reg.structuralOnly
			tx = t
		}
	case BidOfferID:
		var t *BidOffer
		if t, err = decodeBidOffer(raw); err == nil {
			t.skipSigCheck = reg.structuralOnly
			tx = t
		}
	default:
		return nil, &encoding.Error{
			Kind:     encoding.ErrIncorrectMessageType,
			Position: 2,
			Value:    uint64(raw.MessageType()),
		}
	}
	if err != nil {
		return nil, err
	}
	return tx, nil
}
