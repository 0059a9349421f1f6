package encoding

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// Check validates every field of a record against the buffer, in declared
// order, before any of them may be read. The record's segment pointers are
// relative to origin, its fixed part occupies [fixedStart, fixedStart+fixed)
// and the record may not touch any byte at or beyond limit. Segments must
// follow each other without gaps or overlap, starting right after the fixed
// part and ending exactly at limit.
func (s *Schema) Check(buf []byte, origin, fixedStart, limit Offset) error {
	if uint64(limit) > uint64(len(buf)) {
		return newError(ErrIncorrectSizeOfRawMessage, 0, uint64(len(buf)))
	}
	fixedEnd := uint64(fixedStart) + uint64(s.fixed)
	if fixedEnd > math.MaxUint32 {
		return newError(ErrOffsetOverflow, fixedStart, fixedEnd)
	}
	if fixedEnd > uint64(limit) {
		return newError(ErrUnexpectedlyShortPayload, fixedStart, uint64(limit))
	}

	latest := Offset(fixedEnd)
	for i := range s.fields {
		f := &s.fields[i]
		pos := fixedStart + s.offsets[i]

		if !f.isSegment() {
			if err := checkScalar(f, buf, pos); err != nil {
				return err
			}
			continue
		}

		var err error
		latest, err = s.checkSegment(f, buf, origin, pos, latest, limit)
		if err != nil {
			return err
		}
	}
	if latest != limit {
		return newError(ErrIncorrectSegmentSize, latest, uint64(limit))
	}
	return nil
}

func checkScalar(f *FieldSpec, buf []byte, pos Offset) error {
	switch f.Type {
	case Bool:
		if v := buf[pos]; v > 1 {
			return newError(ErrIncorrectBoolean, pos, uint64(v))
		}
	case Float64:
		v := math.Float64frombits(binary.LittleEndian.Uint64(buf[pos:]))
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return newError(ErrUnsupportedFloat, pos, math.Float64bits(v))
		}
	}
	return nil
}

func (s *Schema) checkSegment(f *FieldSpec, buf []byte, origin, pos, latest, limit Offset) (Offset, error) {
	ptr := binary.LittleEndian.Uint32(buf[pos:])
	cnt := binary.LittleEndian.Uint32(buf[pos+4:])

	// An unreferenced empty segment is allowed for optional variable data.
	if ptr == 0 && cnt == 0 && f.Type != Struct {
		return latest, nil
	}

	start := uint64(origin) + uint64(ptr)
	if start > math.MaxUint32 {
		return 0, newError(ErrOffsetOverflow, pos, start)
	}
	if Offset(start) < latest {
		return 0, newError(ErrOverlappingSegment, pos, start)
	}
	if Offset(start) > latest {
		return 0, newError(ErrSpaceBetweenSegments, pos, start)
	}

	var byteLen uint64
	switch f.Type {
	case String, Bytes, Struct:
		byteLen = uint64(cnt)
	case Slice:
		byteLen = uint64(cnt) * uint64(segmentPairSize)
	}
	end := start + byteLen
	if end > math.MaxUint32 {
		return 0, newError(ErrOffsetOverflow, pos, end)
	}
	if end > uint64(limit) {
		return 0, newError(ErrIncorrectSegmentReference, pos, uint64(ptr))
	}

	switch f.Type {
	case String:
		if !utf8.Valid(buf[start:end]) {
			return 0, newError(ErrInvalidUTF8, Offset(start), 0)
		}
	case Struct:
		// Nested records are self-contained: their pointers are relative to
		// their own first byte.
		if err := f.Elem.Check(buf, Offset(start), Offset(start), Offset(end)); err != nil {
			return 0, err
		}
	case Slice:
		return s.checkSliceItems(f, buf, origin, Offset(start), Offset(end), cnt, limit)
	}
	return Offset(end), nil
}

// checkSliceItems validates the (position, length) pair table of a slice
// segment and then each self-contained item record in order.
func (s *Schema) checkSliceItems(f *FieldSpec, buf []byte, origin, table, tableEnd Offset, cnt uint32, limit Offset) (Offset, error) {
	latest := tableEnd
	for j := uint32(0); j < cnt; j++ {
		pairPos := table + Offset(j)*segmentPairSize
		itemPtr := binary.LittleEndian.Uint32(buf[pairPos:])
		itemLen := binary.LittleEndian.Uint32(buf[pairPos+4:])

		start := uint64(origin) + uint64(itemPtr)
		end := start + uint64(itemLen)
		if end > math.MaxUint32 {
			return 0, newError(ErrOffsetOverflow, pairPos, end)
		}
		if Offset(start) < latest {
			return 0, newError(ErrOverlappingSegment, pairPos, start)
		}
		if Offset(start) > latest {
			return 0, newError(ErrSpaceBetweenSegments, pairPos, start)
		}
		if Offset(end) > limit {
			return 0, newError(ErrIncorrectSegmentReference, pairPos, uint64(itemPtr))
		}
		if err := f.Elem.Check(buf, Offset(start), Offset(start), Offset(end)); err != nil {
			return 0, err
		}
		latest = Offset(end)
	}
	return latest, nil
}
