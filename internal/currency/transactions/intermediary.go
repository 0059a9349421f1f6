package transactions

import (
	"github.com/assetchain/assetchain/internal/crypto"
	"github.com/assetchain/assetchain/internal/encoding"
)

// Intermediary is the optional third party to a trade or exchange,
// entitled to a fixed commission. Its signature over the offer is
// required for validity.
type Intermediary struct {
	Wallet     crypto.PublicKey
	Commission uint64
}

// IntermediarySchema is the wire layout of an Intermediary descriptor.
var IntermediarySchema = encoding.NewSchema(
	encoding.FieldSpec{Name: "wallet", Type: encoding.PublicKey},
	encoding.FieldSpec{Name: "commission", Type: encoding.Uint64},
)

func (in Intermediary) Encode() []byte {
	return IntermediarySchema.Encode(0, []any{in.Wallet, in.Commission})
}

func IntermediaryFromRecord(r *encoding.Record) Intermediary {
	return Intermediary{Wallet: r.PublicKey(0), Commission: r.Uint64(1)}
}
