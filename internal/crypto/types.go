package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

const (
	// PublicKeyLength is the byte length of an ed25519 public key.
	PublicKeyLength = 32
	// SecretKeyLength is the byte length of an ed25519 private key.
	SecretKeyLength = 64
	// SignatureLength is the byte length of an ed25519 signature.
	SignatureLength = 64
	// HashLength is the byte length of a sha256 digest.
	HashLength = 32
)

type (
	// PublicKey identifies a wallet and verifies message signatures.
	PublicKey [PublicKeyLength]byte

	// SecretKey signs messages. Never persisted by this module.
	SecretKey [SecretKeyLength]byte

	// Signature is a detached ed25519 signature.
	Signature [SignatureLength]byte

	// Hash is a sha256 digest, used for transaction and asset identifiers.
	Hash [HashLength]byte
)

func (p PublicKey) Bytes() []byte  { return p[:] }
func (s Signature) Bytes() []byte  { return s[:] }
func (h Hash) Bytes() []byte       { return h[:] }
func (p PublicKey) String() string { return hex.EncodeToString(p[:]) }
func (s Signature) String() string { return hex.EncodeToString(s[:]) }
func (h Hash) String() string      { return hex.EncodeToString(h[:]) }

// PublicKeyFromBytes converts a byte slice to a PublicKey, failing on length
// mismatch instead of silently truncating.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	var p PublicKey
	if len(b) != PublicKeyLength {
		return p, fmt.Errorf("invalid public key length: %d", len(b))
	}
	copy(p[:], b)
	return p, nil
}

// PublicKeyFromHex parses a hex encoded public key.
func PublicKeyFromHex(s string) (PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return PublicKey{}, fmt.Errorf("invalid public key hex: %w", err)
	}
	return PublicKeyFromBytes(b)
}

// SignatureFromBytes converts a byte slice to a Signature, failing on length
// mismatch.
func SignatureFromBytes(b []byte) (Signature, error) {
	var s Signature
	if len(b) != SignatureLength {
		return s, fmt.Errorf("invalid signature length: %d", len(b))
	}
	copy(s[:], b)
	return s, nil
}

// HashFromBytes converts a byte slice to a Hash, failing on length mismatch.
func HashFromBytes(b []byte) (Hash, error) {
	var h Hash
	if len(b) != HashLength {
		return h, fmt.Errorf("invalid hash length: %d", len(b))
	}
	copy(h[:], b)
	return h, nil
}

// Sum computes the sha256 digest of data.
func Sum(data []byte) Hash {
	return sha256.Sum256(data)
}
