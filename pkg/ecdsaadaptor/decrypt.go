package ecdsaadaptor

import (
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/mahdiidarabi/ecdsa-adaptor/internal/curve"
)

// Decrypt completes the adaptor signature with the decryption key y,
// producing a standard low-S ECDSA signature (r, s) with r = x(R_a) mod n and
// s = s_enc * y^-1.
//
// Decrypt does not check the proof. A decryption key that does not match the
// encryption key yields a signature that fails ECDSA verification.
func (a *AdaptorSignature) Decrypt(dk *DecryptionKey) (*ecdsa.Signature, error) {
	if dk == nil || dk.key.IsZero() {
		return nil, adaptorError(ErrInvalidSecretKey, "decryption key is zero")
	}

	r := curve.XToScalar(&a.ra)
	if r.IsZero() {
		return nil, Error{
			Err:         errors.Join(ErrCannotDecryptAdaptorSignature, ErrInvalidAdaptorSignature),
			Description: "adaptor point has zero x coordinate",
		}
	}

	yInv, err := curve.InverseBlinded(&dk.key)
	if err != nil {
		return nil, adaptorError(ErrRandomnessUnavailable, err.Error())
	}
	defer yInv.Zero()

	var s secp256k1.ModNScalar
	s.Mul2(&a.sEnc, yInv)
	if s.IsZero() {
		return nil, adaptorError(ErrCannotDecryptAdaptorSignature,
			"decrypted signature has zero s")
	}
	if s.IsOverHalfOrder() {
		s.Negate()
	}

	return ecdsa.NewSignature(&r, &s), nil
}
