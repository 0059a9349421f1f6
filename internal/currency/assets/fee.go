package assets

import (
	"github.com/assetchain/assetchain/internal/encoding"
)

// Fee is one entry of an asset's fee schedule: the creator royalty charged
// on an operation is Fixed plus Fraction of the value moved.
type Fee struct {
	_        struct{} `cbor:",toarray"`
	Fixed    uint64
	Fraction Fraction
}

// NewFee creates a fee with the given fixed and fractional parts.
func NewFee(fixed uint64, fraction Fraction) Fee {
	return Fee{Fixed: fixed, Fraction: fraction}
}

// ForValue computes the creator royalty for the given moved value.
func (f Fee) ForValue(value uint64) uint64 {
	return f.Fixed + f.Fraction.MulFloor(value)
}

// Fees is the per-transaction-kind fee schedule attached to an asset when
// it is committed to the network.
type Fees struct {
	_        struct{} `cbor:",toarray"`
	Trade    Fee
	Exchange Fee
	Transfer Fee
}

// NewFees creates a complete fee schedule.
func NewFees(trade, exchange, transfer Fee) Fees {
	return Fees{Trade: trade, Exchange: exchange, Transfer: transfer}
}

// FeeSchema is the wire layout of one Fee.
var FeeSchema = encoding.NewSchema(
	encoding.FieldSpec{Name: "fixed", Type: encoding.Uint64},
	encoding.FieldSpec{Name: "fraction_num", Type: encoding.Uint64},
	encoding.FieldSpec{Name: "fraction_den", Type: encoding.Uint64},
)

// FeesSchema is the wire layout of a Fees schedule: three nested Fee
// records.
var FeesSchema = encoding.NewSchema(
	encoding.FieldSpec{Name: "trade", Type: encoding.Struct, Elem: FeeSchema},
	encoding.FieldSpec{Name: "exchange", Type: encoding.Struct, Elem: FeeSchema},
	encoding.FieldSpec{Name: "transfer", Type: encoding.Struct, Elem: FeeSchema},
)

// Encode returns the standalone serialization of the fee.
func (f Fee) Encode() []byte {
	return FeeSchema.Encode(0, []any{f.Fixed, f.Fraction.Num, f.Fraction.Den})
}

// Encode returns the standalone serialization of the schedule.
func (f Fees) Encode() []byte {
	return FeesSchema.Encode(0, []any{f.Trade.Encode(), f.Exchange.Encode(), f.Transfer.Encode()})
}

// FeeFromRecord reads a Fee from a validated record.
func FeeFromRecord(r *encoding.Record) Fee {
	return Fee{
		Fixed:    r.Uint64(0),
		Fraction: Fraction{Num: r.Uint64(1), Den: r.Uint64(2)},
	}
}

// FeesFromRecord reads a Fees schedule from a validated record.
func FeesFromRecord(r *encoding.Record) Fees {
	return Fees{
		Trade:    FeeFromRecord(r.Struct(0)),
		Exchange: FeeFromRecord(r.Struct(1)),
		Transfer: FeeFromRecord(r.Struct(2)),
	}
}
