package encoding

import "fmt"

// ErrorKind enumerates the ways a buffer can fail structural validation.
// A message failing any of these checks is dropped before any business
// logic sees it.
type ErrorKind int

const (
	ErrUnexpectedlyShortPayload ErrorKind = iota
	ErrIncorrectBoolean
	ErrUnsupportedFloat
	ErrIncorrectSegmentReference
	ErrIncorrectSegmentSize
	ErrUnexpectedlyShortRawMessage
	ErrIncorrectSizeOfRawMessage
	ErrIncorrectMessageType
	ErrIncorrectServiceID
	ErrIncorrectNetworkID
	ErrUnsupportedProtocolVersion
	ErrOverlappingSegment
	ErrSpaceBetweenSegments
	ErrInvalidUTF8
	ErrOffsetOverflow
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpectedlyShortPayload:
		return "unexpectedly short payload"
	case ErrIncorrectBoolean:
		return "incorrect boolean value"
	case ErrUnsupportedFloat:
		return "unsupported float value"
	case ErrIncorrectSegmentReference:
		return "incorrect segment reference"
	case ErrIncorrectSegmentSize:
		return "incorrect segment size"
	case ErrUnexpectedlyShortRawMessage:
		return "unexpectedly short raw message"
	case ErrIncorrectSizeOfRawMessage:
		return "incorrect size of raw message"
	case ErrIncorrectMessageType:
		return "incorrect message type"
	case ErrIncorrectServiceID:
		return "incorrect service id"
	case ErrIncorrectNetworkID:
		return "incorrect network id"
	case ErrUnsupportedProtocolVersion:
		return "unsupported protocol version"
	case ErrOverlappingSegment:
		return "overlapping segments"
	case ErrSpaceBetweenSegments:
		return "space between segments"
	case ErrInvalidUTF8:
		return "invalid utf-8 in string field"
	case ErrOffsetOverflow:
		return "offset pointers overflow"
	default:
		return fmt.Sprintf("unknown encoding error %d", int(k))
	}
}

// Error is a structural validation failure at a specific buffer position.
type Error struct {
	Kind     ErrorKind
	Position Offset
	Value    uint64
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: position %d, value %d", e.Kind, e.Position, e.Value)
}

func newError(kind ErrorKind, position Offset, value uint64) *Error {
	return &Error{Kind: kind, Position: position, Value: value}
}
