package ecdsaadaptor

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/mahdiidarabi/ecdsa-adaptor/internal/curve"
)

// DecryptionKeySize is the size of a serialized decryption key.
const DecryptionKeySize = curve.ScalarSize

// DecryptionKey is the secret y that completes an adaptor signature created
// under the encryption key Y = y*G.
type DecryptionKey struct {
	key secp256k1.ModNScalar
}

// NewDecryptionKey creates a decryption key from a non-zero scalar. The
// scalar is copied.
func NewDecryptionKey(y *secp256k1.ModNScalar) (*DecryptionKey, error) {
	if y == nil || y.IsZero() {
		return nil, adaptorError(ErrInvalidSecretKey, "decryption key is zero")
	}
	var dk DecryptionKey
	dk.key.Set(y)
	return &dk, nil
}

// NewDecryptionKeyFromBytes parses a 32-byte big-endian decryption key. Zero
// and values not below the group order are rejected.
func NewDecryptionKeyFromBytes(b []byte) (*DecryptionKey, error) {
	if len(b) != DecryptionKeySize {
		str := fmt.Sprintf("malformed decryption key: got %d bytes, want %d",
			len(b), DecryptionKeySize)
		return nil, adaptorError(ErrInvalidLength, str)
	}
	var y secp256k1.ModNScalar
	defer y.Zero()
	if overflow := y.SetByteSlice(b); overflow {
		return nil, adaptorError(ErrParse, "decryption key is not below the group order")
	}
	return NewDecryptionKey(&y)
}

// NewDecryptionKeyFromPrivateKey uses a secp256k1 private key as decryption
// key.
func NewDecryptionKeyFromPrivateKey(sk *secp256k1.PrivateKey) (*DecryptionKey, error) {
	if sk == nil {
		return nil, adaptorError(ErrInvalidSecretKey, "decryption key is nil")
	}
	return NewDecryptionKey(&sk.Key)
}

// GenerateKeyPair returns a fresh random decryption key and its encryption
// key.
func GenerateKeyPair() (*DecryptionKey, *secp256k1.PublicKey, error) {
	sk, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, nil, adaptorError(ErrRandomnessUnavailable, err.Error())
	}
	defer sk.Zero()

	dk, err := NewDecryptionKeyFromPrivateKey(sk)
	if err != nil {
		return nil, nil, err
	}
	ek, err := dk.EncryptionKey()
	if err != nil {
		return nil, nil, err
	}
	return dk, ek, nil
}

// EncryptionKey returns Y = y*G.
func (dk *DecryptionKey) EncryptionKey() (*secp256k1.PublicKey, error) {
	p, err := curve.ScalarBaseMultBlinded(&dk.key)
	if err != nil {
		return nil, adaptorError(ErrRandomnessUnavailable, err.Error())
	}
	return curve.PointToPubKey(p), nil
}

// Scalar returns a copy of the underlying scalar.
func (dk *DecryptionKey) Scalar() secp256k1.ModNScalar {
	return dk.key
}

// Bytes returns the 32-byte big-endian encoding of the key.
func (dk *DecryptionKey) Bytes() [DecryptionKeySize]byte {
	return dk.key.Bytes()
}

// ToPrivateKey returns the key as a secp256k1 private key.
func (dk *DecryptionKey) ToPrivateKey() *secp256k1.PrivateKey {
	return secp256k1.NewPrivateKey(&dk.key)
}

// IsEqual reports whether two decryption keys are the same, in constant time.
func (dk *DecryptionKey) IsEqual(other *DecryptionKey) bool {
	return dk.key.Equals(&other.key)
}

// Zero clears the key material.
func (dk *DecryptionKey) Zero() {
	dk.key.Zero()
}
