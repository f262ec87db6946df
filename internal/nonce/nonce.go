// Package nonce implements the BIP-340 style hardened nonce derivation shared
// by adaptor signature encryption and the DLEQ prover.
//
// The nonce is tagged_hash(tag, key' || pub || msg) where key' is the secret
// key itself, or the secret key XORed with tagged_hash(AuxTag, aux) when 32
// bytes of auxiliary randomness are supplied.
package nonce

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	// AuxSize is the required length of auxiliary randomness.
	AuxSize = chainhash.HashSize

	// KeySize is the length of a serialized secret key.
	KeySize = 32
)

var (
	// AdaptorTag domain separates encryption nonces from every other nonce
	// derived from the same secret key.
	AdaptorTag = []byte("ECDSAadaptor/non")

	// AuxTag is used to hash auxiliary randomness before it masks the key.
	AuxTag = []byte("ECDSAadaptor/aux")

	// DLEQTag is used both for the DLEQ commitment nonce and its challenge.
	DLEQTag = []byte("DLEQ")

	// retryTag derives fresh auxiliary data when a nonce has to be resampled.
	retryTag = []byte("ECDSAadaptor/retry")
)

// Derive computes a 32-byte nonce for the given tag. aux may be nil, in
// which case the result is fully deterministic. A key shorter than KeySize is
// treated as a big-endian scalar and left padded before masking; a longer key
// is never masked. The caller owns the returned array and must clear it.
func Derive(tag, key, pub, msg, aux []byte) [chainhash.HashSize]byte {
	var masked [chainhash.HashSize]byte
	defer clear32(&masked)

	secret := key
	if len(aux) == AuxSize && len(key) <= KeySize {
		copy(masked[KeySize-len(key):], key)
		auxHash := chainhash.TaggedHash(AuxTag, aux)
		for i := range masked {
			masked[i] ^= auxHash[i]
		}
		secret = masked[:]
	}

	return *chainhash.TaggedHash(tag, secret, pub, msg)
}

// RetryAux returns the auxiliary data for the given resampling iteration.
// Iteration zero returns aux unchanged so that the first attempt matches the
// plain derivation.
func RetryAux(aux []byte, iteration uint32) []byte {
	if iteration == 0 {
		return aux
	}
	var counter [4]byte
	binary.BigEndian.PutUint32(counter[:], iteration)
	h := chainhash.TaggedHash(retryTag, aux, counter[:])
	return h[:]
}

func clear32(b *[chainhash.HashSize]byte) {
	for i := range b {
		b[i] = 0
	}
}
