package encoding

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/assetchain/assetchain/internal/crypto"
)

// Encode serializes values against the schema and returns the record bytes,
// fixed part first, segments following in field order with no gaps. pos is
// the buffer position where the returned bytes will be placed, relative to
// the pointer origin: 0 for a standalone record, the header length for a
// message body. Value types must match the schema: integers and bool by
// their Go type, crypto key/signature/hash types for the raw byte fields,
// string for String, []byte for Bytes, a standalone pre-encoded []byte for
// Struct and [][]byte for Slice.
//
// Malformed values are programmer errors and panic; the writer never
// produces a buffer that Check would reject.
func (s *Schema) Encode(pos Offset, values []any) []byte {
	if len(values) != len(s.fields) {
		panic(fmt.Sprintf("schema has %d fields, got %d values", len(s.fields), len(values)))
	}
	fixed := make([]byte, s.fixed)
	var heap []byte

	for i := range s.fields {
		f := &s.fields[i]
		out := fixed[s.offsets[i]:]
		v := values[i]

		if f.isSegment() {
			heap = s.writeSegment(f, out, heap, pos, v)
			continue
		}
		writeScalar(f, out, v)
	}
	total := uint64(pos) + uint64(len(fixed)) + uint64(len(heap))
	if total > math.MaxUint32 {
		panic(fmt.Sprintf("encoded record exceeds offset range: %d bytes", total))
	}
	return append(fixed, heap...)
}

func writeScalar(f *FieldSpec, out []byte, v any) {
	switch f.Type {
	case Uint8:
		out[0] = v.(uint8)
	case Uint16:
		binary.LittleEndian.PutUint16(out, v.(uint16))
	case Uint32:
		binary.LittleEndian.PutUint32(out, v.(uint32))
	case Uint64:
		binary.LittleEndian.PutUint64(out, v.(uint64))
	case Bool:
		if v.(bool) {
			out[0] = 1
		}
	case Float64:
		fv := v.(float64)
		if math.IsNaN(fv) || math.IsInf(fv, 0) {
			panic(fmt.Sprintf("field %q: unsupported float value %v", f.Name, fv))
		}
		binary.LittleEndian.PutUint64(out, math.Float64bits(fv))
	case PublicKey:
		copy(out, v.(crypto.PublicKey).Bytes())
	case Signature:
		copy(out, v.(crypto.Signature).Bytes())
	case Hash:
		copy(out, v.(crypto.Hash).Bytes())
	default:
		panic(fmt.Sprintf("field %q: not a scalar", f.Name))
	}
}

func (s *Schema) writeSegment(f *FieldSpec, out, heap []byte, pos Offset, v any) []byte {
	segStart := uint64(pos) + uint64(s.fixed) + uint64(len(heap))
	if segStart > math.MaxUint32 {
		panic("encoded record exceeds offset range")
	}

	var data []byte
	switch f.Type {
	case String:
		data = []byte(v.(string))
	case Bytes:
		data = v.([]byte)
	case Struct:
		data = v.([]byte)
	case Slice:
		items := v.([][]byte)
		table := make([]byte, len(items)*int(segmentPairSize))
		itemPos := segStart + uint64(len(table))
		for j, item := range items {
			binary.LittleEndian.PutUint32(table[j*8:], uint32(itemPos))
			binary.LittleEndian.PutUint32(table[j*8+4:], uint32(len(item)))
			itemPos += uint64(len(item))
		}
		if itemPos > math.MaxUint32 {
			panic("encoded record exceeds offset range")
		}
		binary.LittleEndian.PutUint32(out, uint32(segStart))
		binary.LittleEndian.PutUint32(out[4:], uint32(len(items)))
		heap = append(heap, table...)
		for _, item := range items {
			heap = append(heap, item...)
		}
		return heap
	}

	binary.LittleEndian.PutUint32(out, uint32(segStart))
	binary.LittleEndian.PutUint32(out[4:], uint32(len(data)))
	return append(heap, data...)
}
