package messages

import (
	"github.com/assetchain/assetchain/internal/crypto"
	"github.com/assetchain/assetchain/internal/encoding"
	"github.com/assetchain/assetchain/internal/util"
)

// UnsignedMessage is a framed message body waiting for its signature. The
// declared payload length already accounts for the signature to be
// appended, so the signed byte range is final.
type UnsignedMessage struct {
	raw []byte
}

// Encode lays out a message: header, then the schema-encoded body. The
// body's segment pointers are absolute buffer offsets.
func Encode(networkID, version uint8, serviceID, messageType uint16, schema *encoding.Schema, values []any) UnsignedMessage {
	body := schema.Encode(HeaderLength, values)

	raw := make([]byte, 0, HeaderLength+len(body))
	raw = append(raw, networkID, version)
	raw = append(raw, util.Uint16ToBytes(messageType)...)
	raw = append(raw, util.Uint16ToBytes(serviceID)...)
	raw = append(raw, util.Uint32ToBytes(uint32(HeaderLength+len(body)+crypto.SignatureLength))...)
	raw = append(raw, body...)
	return UnsignedMessage{raw: raw}
}

// SignedBytes returns the byte range the trailing signature will cover.
func (u UnsignedMessage) SignedBytes() []byte {
	return u.raw
}

// AppendSignature finalizes the message with an externally produced
// signature.
func (u UnsignedMessage) AppendSignature(sig crypto.Signature) RawMessage {
	raw := make([]byte, 0, len(u.raw)+crypto.SignatureLength)
	raw = append(raw, u.raw...)
	raw = append(raw, sig.Bytes()...)
	return RawMessage{raw: raw}
}

// Sign signs the message with key and finalizes it.
func (u UnsignedMessage) Sign(key crypto.SecretKey) RawMessage {
	return u.AppendSignature(crypto.Sign(u.raw, key))
}
