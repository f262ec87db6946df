package ecdsaadaptor

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/mahdiidarabi/ecdsa-adaptor/internal/curve"
	"github.com/mahdiidarabi/ecdsa-adaptor/pkg/dleq"
)

// Verify checks that the adaptor signature was created by the owner of pub
// over the 32-byte digest msg and encrypted under encKey, so that decrypting
// it with the discrete log of encKey yields a valid ECDSA signature.
//
// Every returned error matches ErrCannotVerifyAdaptorSignature. A bad DLEQ
// proof also matches ErrInvalidProof; a bad signature equation matches
// ErrInvalidAdaptorSignature.
func (a *AdaptorSignature) Verify(msg []byte, pub, encKey *secp256k1.PublicKey) error {
	if len(msg) != MessageSize {
		str := fmt.Sprintf("message must be %d bytes, got %d", MessageSize, len(msg))
		return verifyError(ErrInvalidMessage, str)
	}
	if pub == nil || encKey == nil {
		return verifyError(ErrInvalidEncryptionKey, "public key or encryption key is nil")
	}

	y := curve.PubKeyToPoint(encKey)
	if !dleq.Verify(y, &a.r, &a.ra, &a.proof) {
		return verifyError(ErrInvalidProof, "DLEQ proof does not verify")
	}

	r := curve.XToScalar(&a.ra)
	if r.IsZero() {
		return verifyError(ErrInvalidAdaptorSignature, "adaptor point has zero x coordinate")
	}
	if a.sEnc.IsZero() {
		return verifyError(ErrInvalidAdaptorSignature, "encrypted s is zero")
	}

	var m secp256k1.ModNScalar
	m.SetByteSlice(msg)

	// s_enc^-1 (m*G + r*P) must equal R.
	sInv := new(secp256k1.ModNScalar).InverseValNonConst(&a.sEnc)
	u1 := new(secp256k1.ModNScalar).Mul2(&m, sInv)
	u2 := new(secp256k1.ModNScalar).Mul2(&r, sInv)

	var u1G, u2P, sum secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(u1, &u1G)
	secp256k1.ScalarMultNonConst(u2, curve.PubKeyToPoint(pub), &u2P)
	secp256k1.AddNonConst(&u1G, &u2P, &sum)
	if curve.IsInfinity(&sum) {
		return verifyError(ErrInvalidAdaptorSignature, "signature equation yields infinity")
	}
	sum.ToAffine()

	if !curve.Equal(&sum, &a.r) {
		return verifyError(ErrInvalidAdaptorSignature, "signature equation does not hold")
	}
	return nil
}
