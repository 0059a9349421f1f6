package messages

import (
	"testing"

	"github.com/assetchain/assetchain/internal/crypto"
	"github.com/assetchain/assetchain/internal/encoding"
	"github.com/stretchr/testify/require"
)

var testSchema = encoding.NewSchema(
	encoding.FieldSpec{Name: "who", Type: encoding.PublicKey},
	encoding.FieldSpec{Name: "amount", Type: encoding.Uint64},
	encoding.FieldSpec{Name: "memo", Type: encoding.String},
)

func buildSigned(t *testing.T) (RawMessage, crypto.PublicKey) {
	t.Helper()
	pub, sec, err := crypto.GenerateKeyPair()
	require.NoError(t, err)

	unsigned := Encode(TestNetworkID, ProtocolVersion, 2, 200, testSchema, []any{pub, uint64(42), "hi"})
	return unsigned.Sign(sec), pub
}

func TestFramingRoundTrip(t *testing.T) {
	msg, pub := buildSigned(t)

	parsed, err := FromBytes(msg.Bytes())
	require.NoError(t, err)
	require.Equal(t, TestNetworkID, parsed.NetworkID())
	require.Equal(t, ProtocolVersion, parsed.Version())
	require.EqualValues(t, 2, parsed.ServiceID())
	require.EqualValues(t, 200, parsed.MessageType())
	require.True(t, parsed.VerifySignature(pub))

	r, err := parsed.Decode(testSchema)
	require.NoError(t, err)
	require.Equal(t, pub, r.PublicKey(0))
	require.EqualValues(t, 42, r.Uint64(1))
	require.Equal(t, "hi", r.String(2))
}

func TestFromBytesRejectsShortBuffer(t *testing.T) {
	_, err := FromBytes(make([]byte, HeaderLength+crypto.SignatureLength-1))
	require.Error(t, err)
	require.Equal(t, encoding.ErrUnexpectedlyShortRawMessage, err.(*encoding.Error).Kind)
}

func TestFromBytesRejectsWrongDeclaredLength(t *testing.T) {
	msg, _ := buildSigned(t)
	buf := append([]byte{}, msg.Bytes()...)
	buf[6]++

	_, err := FromBytes(buf)
	require.Error(t, err)
	require.Equal(t, encoding.ErrIncorrectSizeOfRawMessage, err.(*encoding.Error).Kind)
}

func TestSignatureCoversAllButTrailer(t *testing.T) {
	msg, pub := buildSigned(t)
	require.Equal(t, msg.Len()-crypto.SignatureLength, len(msg.SignedBytes()))

	// Any flipped body bit invalidates the signature.
	buf := append([]byte{}, msg.Bytes()...)
	buf[HeaderLength] ^= 0x01
	tampered, err := FromBytes(buf)
	require.NoError(t, err)
	require.False(t, tampered.VerifySignature(pub))
}

func TestHashCoversSignature(t *testing.T) {
	pub, sec, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	unsigned := Encode(TestNetworkID, ProtocolVersion, 2, 200, testSchema, []any{pub, uint64(1), ""})

	sigA := crypto.Sign(unsigned.SignedBytes(), sec)
	var sigB crypto.Signature
	copy(sigB[:], sigA[:])
	sigB[0] ^= 0x01

	require.NotEqual(t, unsigned.AppendSignature(sigA).Hash(), unsigned.AppendSignature(sigB).Hash())
}
