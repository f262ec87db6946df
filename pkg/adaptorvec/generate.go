package adaptorvec

import (
	"crypto/sha256"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/mahdiidarabi/ecdsa-adaptor/pkg/ecdsaadaptor"
)

// Generate creates count fresh valid vectors with random keys. Every vector
// carries the message, both keys, the adaptor signature, the decrypted
// signature and the decryption key.
func Generate(count int, opts ...ecdsaadaptor.EncryptOption) ([]*Vector, error) {
	vectors := make([]*Vector, 0, count)
	for i := 0; i < count; i++ {
		v, err := generateOne(fmt.Sprintf("generated_%d", i), opts...)
		if err != nil {
			return nil, fmt.Errorf("vector %d: %w", i, err)
		}
		vectors = append(vectors, v)
	}
	return vectors, nil
}

func generateOne(name string, opts ...ecdsaadaptor.EncryptOption) (*Vector, error) {
	sk, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate signing key: %w", err)
	}
	defer sk.Zero()

	dk, encKey, err := ecdsaadaptor.GenerateKeyPair()
	if err != nil {
		return nil, fmt.Errorf("failed to generate encryption key: %w", err)
	}
	defer dk.Zero()

	digest := sha256.Sum256([]byte(name))
	asig, err := ecdsaadaptor.Encrypt(digest[:], sk, encKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt: %w", err)
	}
	sig, err := asig.Decrypt(dk)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}

	compact := ecdsaadaptor.SerializeCompact(sig)
	dkBytes := dk.Bytes()
	return &Vector{
		Name:             name,
		Message:          digest[:],
		PublicKey:        sk.PubKey().SerializeCompressed(),
		EncryptionKey:    encKey.SerializeCompressed(),
		AdaptorSignature: asig.Serialize(),
		Signature:        compact[:],
		DecryptionKey:    dkBytes[:],
		Valid:            true,
	}, nil
}
