package ecdsaadaptor

import (
	"crypto/rand"
	"io"

	"github.com/mahdiidarabi/ecdsa-adaptor/internal/nonce"
)

// maxNonceIterations bounds how many times Encrypt resamples its nonce before
// giving up. Each iteration fails with probability around 2^-128, so hitting
// the limit means the nonce function is broken.
const maxNonceIterations = 16

// NonceFunc derives a 32-byte encryption nonce from the serialized secret
// key, the compressed encryption key, the message digest and optional 32
// bytes of auxiliary data. The result is reduced modulo the group order. A
// NonceFunc must never return the same output for different messages under
// the same key.
type NonceFunc func(secretKey, encKey, msg, aux []byte) [32]byte

// DefaultNonce is the hardened BIP-340 style derivation
// tagged_hash("ECDSAadaptor/non", x' || Y || m) where x' is the secret key,
// masked with tagged_hash("ECDSAadaptor/aux", aux) when aux is present.
func DefaultNonce(secretKey, encKey, msg, aux []byte) [32]byte {
	return nonce.Derive(nonce.AdaptorTag, secretKey, encKey, msg, aux)
}

// EncryptOption configures Encrypt.
type EncryptOption func(*encryptOptions)

type encryptOptions struct {
	rand          io.Reader
	aux           []byte
	deterministic bool
	nonceFn       NonceFunc
}

func defaultEncryptOptions() *encryptOptions {
	return &encryptOptions{
		rand:    rand.Reader,
		nonceFn: DefaultNonce,
	}
}

// WithAuxRand reads the 32 bytes of auxiliary randomness from r instead of
// crypto/rand.
func WithAuxRand(r io.Reader) EncryptOption {
	return func(o *encryptOptions) {
		o.rand = r
		o.aux = nil
		o.deterministic = false
	}
}

// WithAuxData uses fixed auxiliary data. Encrypting the same message under
// the same keys with the same aux yields the same adaptor signature.
func WithAuxData(aux [32]byte) EncryptOption {
	return func(o *encryptOptions) {
		o.aux = append([]byte(nil), aux[:]...)
		o.deterministic = false
	}
}

// WithDeterministicNonce derives the nonce from the key, encryption key and
// message only.
func WithDeterministicNonce() EncryptOption {
	return func(o *encryptOptions) {
		o.aux = nil
		o.deterministic = true
	}
}

// WithNonceFunc replaces the nonce derivation.
func WithNonceFunc(fn NonceFunc) EncryptOption {
	return func(o *encryptOptions) {
		if fn != nil {
			o.nonceFn = fn
		}
	}
}

// auxData returns the auxiliary data selected by the options, reading fresh
// randomness when neither fixed aux nor deterministic mode was requested.
func (o *encryptOptions) auxData() ([]byte, error) {
	if o.deterministic {
		return nil, nil
	}
	if o.aux != nil {
		return o.aux, nil
	}
	aux := make([]byte, nonce.AuxSize)
	if _, err := io.ReadFull(o.rand, aux); err != nil {
		return nil, adaptorError(ErrRandomnessUnavailable,
			"failed to read auxiliary randomness: "+err.Error())
	}
	return aux, nil
}
