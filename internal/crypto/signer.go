package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
)

// GenerateKeyPair generates a new random ed25519 key pair.
func GenerateKeyPair() (PublicKey, SecretKey, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return PublicKey{}, SecretKey{}, err
	}
	var p PublicKey
	var s SecretKey
	copy(p[:], pub)
	copy(s[:], priv)
	return p, s, nil
}

// KeyPairFromSeed derives a key pair from a 32-byte seed. Will return an
// error if the seed length is incorrect.
func KeyPairFromSeed(seed []byte) (PublicKey, SecretKey, error) {
	if len(seed) != ed25519.SeedSize {
		return PublicKey{}, SecretKey{}, fmt.Errorf("invalid seed length: %d", len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	var p PublicKey
	var s SecretKey
	copy(p[:], priv.Public().(ed25519.PublicKey))
	copy(s[:], priv)
	return p, s, nil
}

// Sign signs data with the secret key.
func Sign(data []byte, key SecretKey) Signature {
	var sig Signature
	copy(sig[:], ed25519.Sign(key[:], data))
	return sig
}

// Verify reports whether sig is a valid signature of data by the holder of key.
func Verify(sig Signature, data []byte, key PublicKey) bool {
	return ed25519.Verify(key[:], data, sig[:])
}
