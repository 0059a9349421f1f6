// Package messages implements the wire framing every transaction and peer
// message is carried in: a 10 byte header, a schema-encoded body and a
// trailing ed25519 signature.
package messages

import (
	"github.com/assetchain/assetchain/internal/crypto"
	"github.com/assetchain/assetchain/internal/encoding"
	"github.com/assetchain/assetchain/internal/util"
)

const (
	// HeaderLength is the byte length of the message header.
	HeaderLength = 10
	// TestNetworkID is the network id used outside production deployments.
	TestNetworkID uint8 = 0
	// ProtocolVersion is the supported protocol version. Different versions
	// are incompatible.
	ProtocolVersion uint8 = 0
)

// RawMessage is an immutable signed message buffer. It is created once by a
// Writer (or validated by FromBytes), and shared by value afterwards; the
// underlying bytes must never be mutated.
type RawMessage struct {
	raw []byte
}

// FromBytes validates the framing of a received buffer: it must hold at
// least a header and a signature, and the declared payload length must
// equal the actual buffer length. Field layout is not validated here, that
// happens against a schema when the concrete message type is decoded.
func FromBytes(b []byte) (RawMessage, error) {
	if len(b) < HeaderLength+crypto.SignatureLength {
		return RawMessage{}, &encoding.Error{
			Kind:     encoding.ErrUnexpectedlyShortRawMessage,
			Position: 0,
			Value:    uint64(len(b)),
		}
	}
	declared := util.BytesToUint32(b[6:10])
	if uint64(declared) != uint64(len(b)) {
		return RawMessage{}, &encoding.Error{
			Kind:     encoding.ErrIncorrectSizeOfRawMessage,
			Position: 6,
			Value:    uint64(declared),
		}
	}
	return RawMessage{raw: b}, nil
}

func (m RawMessage) NetworkID() uint8    { return m.raw[0] }
func (m RawMessage) Version() uint8      { return m.raw[1] }
func (m RawMessage) MessageType() uint16 { return util.BytesToUint16(m.raw[2:4]) }
func (m RawMessage) ServiceID() uint16   { return util.BytesToUint16(m.raw[4:6]) }
func (m RawMessage) Len() int            { return len(m.raw) }

// Bytes returns the underlying buffer. Callers must treat it as read-only.
func (m RawMessage) Bytes() []byte { return m.raw }

// Signature returns the trailing signature of the message.
func (m RawMessage) Signature() crypto.Signature {
	sig, err := crypto.SignatureFromBytes(m.raw[len(m.raw)-crypto.SignatureLength:])
	if err != nil {
		// FromBytes and Writer guarantee the suffix exists.
		panic(err)
	}
	return sig
}

// SignedBytes returns the byte range the trailing signature covers: the
// whole buffer except the signature itself.
func (m RawMessage) SignedBytes() []byte {
	return m.raw[:len(m.raw)-crypto.SignatureLength]
}

// Hash returns the transaction hash: the digest of the complete buffer,
// signature included.
func (m RawMessage) Hash() crypto.Hash {
	return crypto.Sum(m.raw)
}

// VerifySignature reports whether the trailing signature is valid for key.
func (m RawMessage) VerifySignature(key crypto.PublicKey) bool {
	return crypto.Verify(m.Signature(), m.SignedBytes(), key)
}

// Decode validates the body layout against schema and returns a readable
// record. All fields are checked before any can be read.
func (m RawMessage) Decode(schema *encoding.Schema) (*encoding.Record, error) {
	limit := encoding.Offset(len(m.raw) - crypto.SignatureLength)
	return schema.Decode(m.raw, 0, HeaderLength, limit)
}
