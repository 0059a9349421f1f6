package encoding

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/assetchain/assetchain/internal/crypto"
)

// Record is a validated, readable view of one encoded record. It can only
// be obtained through Decode, which runs Check first, so every getter is a
// plain slice read with no bounds or value checks left to do. Getters panic
// on a field type mismatch, which is a programmer error, not bad input.
type Record struct {
	buf    []byte
	origin Offset
	fixed  Offset
	schema *Schema
}

// Decode validates buf against the schema and returns a readable view.
// The parameters mirror Check: pointers are relative to origin, the fixed
// part starts at fixedStart and the record ends at limit.
func (s *Schema) Decode(buf []byte, origin, fixedStart, limit Offset) (*Record, error) {
	if err := s.Check(buf, origin, fixedStart, limit); err != nil {
		return nil, err
	}
	return &Record{buf: buf, origin: origin, fixed: fixedStart, schema: s}, nil
}

func (r *Record) fieldPos(i int, t FieldType) Offset {
	f := r.schema.field(i)
	if f.Type != t {
		panic(fmt.Sprintf("field %q read as type %d, declared %d", f.Name, t, f.Type))
	}
	return r.fixed + r.schema.offsets[i]
}

func (r *Record) Uint8(i int) uint8 {
	return r.buf[r.fieldPos(i, Uint8)]
}

func (r *Record) Uint16(i int) uint16 {
	return binary.LittleEndian.Uint16(r.buf[r.fieldPos(i, Uint16):])
}

func (r *Record) Uint32(i int) uint32 {
	return binary.LittleEndian.Uint32(r.buf[r.fieldPos(i, Uint32):])
}

func (r *Record) Uint64(i int) uint64 {
	return binary.LittleEndian.Uint64(r.buf[r.fieldPos(i, Uint64):])
}

func (r *Record) Bool(i int) bool {
	return r.buf[r.fieldPos(i, Bool)] == 1
}

func (r *Record) Float64(i int) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(r.buf[r.fieldPos(i, Float64):]))
}

func (r *Record) PublicKey(i int) crypto.PublicKey {
	var p crypto.PublicKey
	copy(p[:], r.buf[r.fieldPos(i, PublicKey):])
	return p
}

func (r *Record) Signature(i int) crypto.Signature {
	var s crypto.Signature
	copy(s[:], r.buf[r.fieldPos(i, Signature):])
	return s
}

func (r *Record) Hash(i int) crypto.Hash {
	var h crypto.Hash
	copy(h[:], r.buf[r.fieldPos(i, Hash):])
	return h
}

func (r *Record) segment(pos Offset) (Offset, Offset) {
	ptr := binary.LittleEndian.Uint32(r.buf[pos:])
	cnt := binary.LittleEndian.Uint32(r.buf[pos+4:])
	return r.origin + ptr, cnt
}

func (r *Record) String(i int) string {
	start, cnt := r.segment(r.fieldPos(i, String))
	if cnt == 0 {
		return ""
	}
	return string(r.buf[start : start+cnt])
}

func (r *Record) Bytes(i int) []byte {
	start, cnt := r.segment(r.fieldPos(i, Bytes))
	out := make([]byte, cnt)
	copy(out, r.buf[start:start+cnt])
	return out
}

// Struct returns the nested record of a Struct field.
func (r *Record) Struct(i int) *Record {
	start, _ := r.segment(r.fieldPos(i, Struct))
	return &Record{
		buf:    r.buf,
		origin: start,
		fixed:  start,
		schema: r.schema.field(i).Elem,
	}
}

// StructBytes returns the standalone serialization of a Struct field. These
// are the exact bytes counterparties sign.
func (r *Record) StructBytes(i int) []byte {
	start, cnt := r.segment(r.fieldPos(i, Struct))
	out := make([]byte, cnt)
	copy(out, r.buf[start:start+cnt])
	return out
}

// SliceLen returns the item count of a Slice field.
func (r *Record) SliceLen(i int) int {
	_, cnt := r.segment(r.fieldPos(i, Slice))
	return int(cnt)
}

// StructAt returns item j of a Slice field.
func (r *Record) StructAt(i, j int) *Record {
	table, cnt := r.segment(r.fieldPos(i, Slice))
	if uint32(j) >= cnt {
		panic(fmt.Sprintf("slice index %d out of range %d", j, cnt))
	}
	pairPos := table + Offset(j)*segmentPairSize
	start := r.origin + binary.LittleEndian.Uint32(r.buf[pairPos:])
	return &Record{
		buf:    r.buf,
		origin: start,
		fixed:  start,
		schema: r.schema.field(i).Elem,
	}
}
