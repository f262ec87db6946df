package ecdsaadaptor

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/mahdiidarabi/ecdsa-adaptor/internal/curve"
)

// Recover extracts the decryption key from a signature that was produced by
// decrypting this adaptor signature.
//
// The candidate y' = s_enc * s^-1 equals y or -y depending on whether the
// decrypted s was normalised to low-S, so both are checked against encKey.
//
// Args:
//   - sig: Completed ECDSA signature
//   - encKey: Encryption key the adaptor signature was created under
//
// Returns:
//   - The decryption key y with y*G == encKey, or an error
func (a *AdaptorSignature) Recover(sig *ecdsa.Signature, encKey *secp256k1.PublicKey) (*DecryptionKey, error) {
	if sig == nil {
		return nil, adaptorError(ErrInvalidSignature, "signature is nil")
	}
	if encKey == nil {
		return nil, adaptorError(ErrInvalidEncryptionKey, "encryption key is nil")
	}

	r, s := sig.R(), sig.S()
	if s.IsZero() {
		return nil, adaptorError(ErrInvalidSignature, "signature s is zero")
	}
	if a.sEnc.IsZero() {
		return nil, adaptorError(ErrInvalidSignature, "encrypted s is zero")
	}

	expectedR := curve.XToScalar(&a.ra)
	if !r.Equals(&expectedR) {
		return nil, adaptorError(ErrCannotRecoverAdaptorSecret,
			"signature r does not match the adaptor point")
	}

	sInv := new(secp256k1.ModNScalar).InverseValNonConst(&s)
	var y secp256k1.ModNScalar
	y.Mul2(&a.sEnc, sInv)
	defer y.Zero()

	candidate, err := curve.ScalarBaseMultBlinded(&y)
	if err != nil {
		return nil, adaptorError(ErrRandomnessUnavailable, err.Error())
	}
	target := curve.PubKeyToPoint(encKey)

	switch {
	case curve.Equal(candidate, target):
	case curve.SameX(candidate, target):
		y.Negate()
	default:
		return nil, adaptorError(ErrCannotRecoverAdaptorSecret,
			"recovered key does not match the encryption key")
	}

	return NewDecryptionKey(&y)
}
