package encoding

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/assetchain/assetchain/internal/crypto"
	"github.com/stretchr/testify/require"
)

var scalarSchema = NewSchema(
	FieldSpec{Name: "a", Type: Uint8},
	FieldSpec{Name: "b", Type: Uint16},
	FieldSpec{Name: "c", Type: Uint32},
	FieldSpec{Name: "d", Type: Uint64},
	FieldSpec{Name: "e", Type: Bool},
	FieldSpec{Name: "f", Type: Float64},
)

var nestedSchema = NewSchema(
	FieldSpec{Name: "key", Type: PublicKey},
	FieldSpec{Name: "name", Type: String},
	FieldSpec{Name: "inner", Type: Struct, Elem: scalarSchema},
	FieldSpec{Name: "items", Type: Slice, Elem: scalarSchema},
)

func encodeScalars(pos Offset) []byte {
	return scalarSchema.Encode(pos, []any{uint8(7), uint16(300), uint32(70000), uint64(1 << 40), true, 2.5})
}

func TestScalarRoundTrip(t *testing.T) {
	buf := encodeScalars(0)
	r, err := scalarSchema.Decode(buf, 0, 0, Offset(len(buf)))
	require.NoError(t, err)

	require.EqualValues(t, 7, r.Uint8(0))
	require.EqualValues(t, 300, r.Uint16(1))
	require.EqualValues(t, 70000, r.Uint32(2))
	require.EqualValues(t, 1<<40, r.Uint64(3))
	require.True(t, r.Bool(4))
	require.Equal(t, 2.5, r.Float64(5))
}

func TestNestedRoundTrip(t *testing.T) {
	var key crypto.PublicKey
	key[0] = 0xab

	inner := encodeScalars(0)
	items := [][]byte{encodeScalars(0), encodeScalars(0)}
	buf := nestedSchema.Encode(0, []any{key, "hello", inner, items})

	r, err := nestedSchema.Decode(buf, 0, 0, Offset(len(buf)))
	require.NoError(t, err)

	require.Equal(t, key, r.PublicKey(0))
	require.Equal(t, "hello", r.String(1))
	require.Equal(t, inner, r.StructBytes(2))
	require.EqualValues(t, 7, r.Struct(2).Uint8(0))
	require.Equal(t, 2, r.SliceLen(3))
	require.EqualValues(t, 1<<40, r.StructAt(3, 1).Uint64(3))
}

// The standalone encoding of a nested record must be byte-identical to
// its embedded form: counterparties sign the standalone bytes.
func TestNestedStructSelfContained(t *testing.T) {
	inner := encodeScalars(0)
	buf := nestedSchema.Encode(0, []any{crypto.PublicKey{}, "x", inner, [][]byte{}})

	r, err := nestedSchema.Decode(buf, 0, 0, Offset(len(buf)))
	require.NoError(t, err)
	require.Equal(t, inner, r.StructBytes(2))

	// The extracted bytes decode on their own.
	standalone := r.StructBytes(2)
	inner2, err := scalarSchema.Decode(standalone, 0, 0, Offset(len(standalone)))
	require.NoError(t, err)
	require.EqualValues(t, 300, inner2.Uint16(1))
}

func TestEmptySegmentsValid(t *testing.T) {
	schema := NewSchema(
		FieldSpec{Name: "s", Type: String},
		FieldSpec{Name: "b", Type: Bytes},
		FieldSpec{Name: "v", Type: Slice, Elem: scalarSchema},
	)
	buf := schema.Encode(0, []any{"", []byte{}, [][]byte{}})
	r, err := schema.Decode(buf, 0, 0, Offset(len(buf)))
	require.NoError(t, err)
	require.Equal(t, "", r.String(0))
	require.Empty(t, r.Bytes(1))
	require.Zero(t, r.SliceLen(2))
}

func segmentSchema() *Schema {
	return NewSchema(
		FieldSpec{Name: "x", Type: String},
		FieldSpec{Name: "y", Type: String},
	)
}

func requireKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	require.Error(t, err)
	encErr, ok := err.(*Error)
	require.True(t, ok, "got %T: %v", err, err)
	require.Equal(t, kind, encErr.Kind)
}

func TestCheckRejectsOverlappingSegments(t *testing.T) {
	s := segmentSchema()
	buf := s.Encode(0, []any{"aaaa", "bbbb"})
	// Point the second segment back into the first.
	binary.LittleEndian.PutUint32(buf[8:], 16)

	_, err := s.Decode(buf, 0, 0, Offset(len(buf)))
	requireKind(t, err, ErrOverlappingSegment)
}

func TestCheckRejectsGapBetweenSegments(t *testing.T) {
	s := segmentSchema()
	buf := s.Encode(0, []any{"aaaa", "bb"})
	buf = append(buf, 0, 0)                    // slack after the last segment
	binary.LittleEndian.PutUint32(buf[8:], 22) // skip two bytes

	_, err := s.Decode(buf, 0, 0, Offset(len(buf)))
	requireKind(t, err, ErrSpaceBetweenSegments)
}

func TestCheckRejectsOutOfBoundsSegment(t *testing.T) {
	s := segmentSchema()
	buf := s.Encode(0, []any{"aaaa", "bbbb"})
	// Declare the second segment longer than the buffer.
	binary.LittleEndian.PutUint32(buf[12:], 4096)

	_, err := s.Decode(buf, 0, 0, Offset(len(buf)))
	requireKind(t, err, ErrIncorrectSegmentReference)
}

func TestCheckRejectsTrailingGarbage(t *testing.T) {
	s := segmentSchema()
	buf := s.Encode(0, []any{"aaaa", "bbbb"})
	buf = append(buf, 0xff)

	_, err := s.Decode(buf, 0, 0, Offset(len(buf)))
	requireKind(t, err, ErrIncorrectSegmentSize)
}

func TestCheckRejectsBadBoolean(t *testing.T) {
	s := NewSchema(FieldSpec{Name: "b", Type: Bool})
	_, err := s.Decode([]byte{2}, 0, 0, 1)
	requireKind(t, err, ErrIncorrectBoolean)
}

func TestCheckRejectsNaNFloat(t *testing.T) {
	s := NewSchema(FieldSpec{Name: "f", Type: Float64})
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(math.NaN()))
	_, err := s.Decode(buf, 0, 0, 8)
	requireKind(t, err, ErrUnsupportedFloat)
}

func TestCheckRejectsInvalidUTF8(t *testing.T) {
	s := NewSchema(FieldSpec{Name: "s", Type: String})
	buf := s.Encode(0, []any{"ab"})
	buf[8], buf[9] = 0xff, 0xfe

	_, err := s.Decode(buf, 0, 0, Offset(len(buf)))
	requireKind(t, err, ErrInvalidUTF8)
}

func TestCheckRejectsShortFixedPart(t *testing.T) {
	_, err := scalarSchema.Decode([]byte{1, 2, 3}, 0, 0, 3)
	requireKind(t, err, ErrUnexpectedlyShortPayload)
}
