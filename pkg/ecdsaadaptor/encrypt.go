package ecdsaadaptor

import (
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/mahdiidarabi/ecdsa-adaptor/internal/curve"
	"github.com/mahdiidarabi/ecdsa-adaptor/internal/nonce"
	"github.com/mahdiidarabi/ecdsa-adaptor/pkg/dleq"
)

// errResample signals that the current nonce is unusable and Encrypt has to
// derive another one.
var errResample = errors.New("resample nonce")

// Encrypt creates an adaptor signature over the 32-byte message digest msg
// with the signing key sk, encrypted under encKey.
//
// By default 32 bytes of fresh auxiliary randomness are mixed into the
// nonce. Use WithAuxData or WithDeterministicNonce for reproducible output.
//
// Args:
//   - msg: 32-byte message digest
//   - sk: Signing key
//   - encKey: Encryption key Y whose discrete log completes the signature
//
// Returns:
//   - The adaptor signature, or an error for malformed input
func Encrypt(msg []byte, sk *secp256k1.PrivateKey, encKey *secp256k1.PublicKey,
	opts ...EncryptOption) (*AdaptorSignature, error) {

	if len(msg) != MessageSize {
		str := fmt.Sprintf("message must be %d bytes, got %d", MessageSize, len(msg))
		return nil, adaptorError(ErrInvalidMessage, str)
	}
	if sk == nil || sk.Key.IsZero() {
		return nil, adaptorError(ErrInvalidSecretKey, "signing key is zero")
	}
	if encKey == nil {
		return nil, adaptorError(ErrInvalidEncryptionKey, "encryption key is nil")
	}

	o := defaultEncryptOptions()
	for _, opt := range opts {
		opt(o)
	}
	aux, err := o.auxData()
	if err != nil {
		return nil, err
	}

	y := curve.PubKeyToPoint(encKey)
	y33 := encKey.SerializeCompressed()

	var m secp256k1.ModNScalar
	m.SetByteSlice(msg)

	skBytes := sk.Key.Bytes()
	defer curve.ZeroBytes(skBytes[:])

	for i := uint32(0); i < maxNonceIterations; i++ {
		iterAux := nonce.RetryAux(aux, i)
		kBytes := o.nonceFn(skBytes[:], y33, msg, iterAux)
		sig, err := encryptWithNonce(&kBytes, &m, &sk.Key, y, iterAux)
		curve.ZeroBytes(kBytes[:])
		if errors.Is(err, errResample) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return sig, nil
	}

	str := fmt.Sprintf("no usable nonce after %d attempts", maxNonceIterations)
	return nil, adaptorError(ErrNonceExhausted, str)
}

// encryptWithNonce runs one encryption attempt with the given nonce. It
// returns errResample when the nonce leads to a degenerate signature.
func encryptWithNonce(kBytes *[32]byte, m, x *secp256k1.ModNScalar,
	y *secp256k1.JacobianPoint, aux []byte) (*AdaptorSignature, error) {

	var k secp256k1.ModNScalar
	k.SetBytes(kBytes)
	defer k.Zero()
	if k.IsZero() {
		return nil, errResample
	}

	// R = k*G, R_a = k*Y
	r, ra, err := dleq.Pair(&k, y)
	if errors.Is(err, curve.ErrInfinity) {
		return nil, errResample
	}
	if err != nil {
		return nil, adaptorError(ErrRandomnessUnavailable, err.Error())
	}

	rx := curve.XToScalar(ra)
	if rx.IsZero() {
		return nil, errResample
	}

	kInv, err := curve.InverseBlinded(&k)
	if err != nil {
		return nil, adaptorError(ErrRandomnessUnavailable, err.Error())
	}
	defer kInv.Zero()

	// s_enc = k^-1 (m + r*x)
	var sEnc secp256k1.ModNScalar
	sEnc.Mul2(&rx, x).Add(m).Mul(kInv)
	if sEnc.IsZero() {
		return nil, errResample
	}

	proof, err := dleq.Prove(&k, y, r, ra, aux)
	if errors.Is(err, dleq.ErrZeroNonce) {
		return nil, errResample
	}
	if err != nil {
		return nil, adaptorError(ErrRandomnessUnavailable, err.Error())
	}

	return &AdaptorSignature{
		ra:    *ra,
		r:     *r,
		sEnc:  sEnc,
		proof: *proof,
	}, nil
}
