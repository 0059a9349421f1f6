// Package encoding implements the binary layout shared by every message on
// the wire: a fixed part of caller-declared fields followed by a heap of
// variable-length segments. Validation and reading are split: Check walks
// every field of a buffer exactly once, after which reads are plain slicing
// with no further bounds checks. Decode performs Check before constructing
// a readable Record, so a Record can only exist for a valid buffer.
package encoding

import "fmt"

// Offset addresses a byte within a message buffer.
type Offset = uint32

// FieldType is the semantic type of one schema field.
type FieldType uint8

const (
	Uint8 FieldType = iota
	Uint16
	Uint32
	Uint64
	Bool
	Float64
	PublicKey // 32 raw bytes
	Signature // 64 raw bytes
	Hash      // 32 raw bytes
	String    // segment: utf-8 bytes
	Bytes     // segment: raw bytes
	Struct    // segment: a nested self-contained record
	Slice     // segment: a table of nested self-contained records
)

const segmentPairSize Offset = 8 // u32 position + u32 length

// FieldSpec describes one field of a record: its name, semantic type and,
// for nested records, their schema.
type FieldSpec struct {
	Name string
	Type FieldType
	Elem *Schema // schema of the nested record, Struct and Slice only
}

// fixedSize is the number of bytes the field occupies in the fixed part.
func (f *FieldSpec) fixedSize() Offset {
	switch f.Type {
	case Uint8, Bool:
		return 1
	case Uint16:
		return 2
	case Uint32:
		return 4
	case Uint64, Float64:
		return 8
	case PublicKey, Hash:
		return 32
	case Signature:
		return 64
	case String, Bytes, Struct, Slice:
		return segmentPairSize
	default:
		panic(fmt.Sprintf("unknown field type %d", f.Type))
	}
}

func (f *FieldSpec) isSegment() bool {
	switch f.Type {
	case String, Bytes, Struct, Slice:
		return true
	}
	return false
}

// Schema is an ordered description of a record layout. It replaces
// per-type generated offset tables: a single generic check/encode/decode
// routine interprets the schema.
type Schema struct {
	fields  []FieldSpec
	offsets []Offset // byte position of each field within the fixed part
	fixed   Offset   // total fixed part size
}

// NewSchema builds a schema from an ordered field list. Invalid field
// specifications are programmer errors and panic at construction.
func NewSchema(fields ...FieldSpec) *Schema {
	s := &Schema{
		fields:  fields,
		offsets: make([]Offset, len(fields)),
	}
	var pos Offset
	for i := range fields {
		f := &fields[i]
		if (f.Type == Struct || f.Type == Slice) && f.Elem == nil {
			panic(fmt.Sprintf("field %q: nested type without element schema", f.Name))
		}
		if f.Type != Struct && f.Type != Slice && f.Elem != nil {
			panic(fmt.Sprintf("field %q: element schema on scalar type", f.Name))
		}
		s.offsets[i] = pos
		pos += f.fixedSize()
	}
	s.fixed = pos
	return s
}

// FixedSize returns the byte size of the record's fixed part.
func (s *Schema) FixedSize() Offset {
	return s.fixed
}

// NumFields returns the number of fields in the schema.
func (s *Schema) NumFields() int {
	return len(s.fields)
}

func (s *Schema) field(i int) *FieldSpec {
	return &s.fields[i]
}
