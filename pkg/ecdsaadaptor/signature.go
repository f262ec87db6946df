package ecdsaadaptor

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/mahdiidarabi/ecdsa-adaptor/internal/curve"
	"github.com/mahdiidarabi/ecdsa-adaptor/pkg/dleq"
)

const (
	// MessageSize is the size of the message digest that gets signed.
	MessageSize = 32

	// AdaptorSignatureSize is the size of a serialized adaptor signature:
	// R_a (33) || R (33) || s_enc (32) || e (32) || s (32).
	AdaptorSignatureSize = 2*curve.PointSize + curve.ScalarSize + dleq.ProofSize

	// AdaptorSignatureHexSize is the length of the hex encoding.
	AdaptorSignatureHexSize = 2 * AdaptorSignatureSize

	offsetAdaptorPoint = 0
	offsetNoncePoint   = offsetAdaptorPoint + curve.PointSize
	offsetEncryptedS   = offsetNoncePoint + curve.PointSize
	offsetProof        = offsetEncryptedS + curve.ScalarSize
)

// AdaptorSignature is an ECDSA signature encrypted under an encryption key Y.
//
// With nonce k and signing key x it holds
//
//	R_a   = k*Y        adaptor point, its x coordinate is the final r
//	R     = k*G        nonce commitment
//	s_enc = k^-1(m + r*x)
//
// together with a DLEQ proof that R and R_a share the discrete log k.
type AdaptorSignature struct {
	ra    secp256k1.JacobianPoint
	r     secp256k1.JacobianPoint
	sEnc  secp256k1.ModNScalar
	proof dleq.Proof
}

// AdaptorPoint returns R_a = k*Y.
func (a *AdaptorSignature) AdaptorPoint() *secp256k1.PublicKey {
	return curve.PointToPubKey(&a.ra)
}

// NoncePoint returns R = k*G.
func (a *AdaptorSignature) NoncePoint() *secp256k1.PublicKey {
	return curve.PointToPubKey(&a.r)
}

// EncryptedS returns s_enc.
func (a *AdaptorSignature) EncryptedS() secp256k1.ModNScalar {
	return a.sEnc
}

// Proof returns the DLEQ proof that R and R_a share a discrete log.
func (a *AdaptorSignature) Proof() dleq.Proof {
	return a.proof
}

// Serialize returns the 162-byte wire encoding.
func (a *AdaptorSignature) Serialize() []byte {
	b := make([]byte, AdaptorSignatureSize)
	copy(b[offsetAdaptorPoint:], curve.SerializeCompressed(&a.ra))
	copy(b[offsetNoncePoint:], curve.SerializeCompressed(&a.r))
	a.sEnc.PutBytesUnchecked(b[offsetEncryptedS:offsetProof])
	proof := a.proof.Bytes()
	copy(b[offsetProof:], proof[:])
	return b
}

// String returns the lowercase hex encoding.
func (a *AdaptorSignature) String() string {
	return hex.EncodeToString(a.Serialize())
}

// MarshalText implements encoding.TextMarshaler. JSON encodes an adaptor
// signature as its hex string through this method.
func (a *AdaptorSignature) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *AdaptorSignature) UnmarshalText(text []byte) error {
	sig, err := ParseAdaptorSignatureHex(string(text))
	if err != nil {
		return err
	}
	*a = *sig
	return nil
}

// IsEqual reports whether two adaptor signatures have the same encoding.
func (a *AdaptorSignature) IsEqual(other *AdaptorSignature) bool {
	return bytes.Equal(a.Serialize(), other.Serialize())
}

// ParseAdaptorSignature parses the 162-byte wire encoding. Both points must
// be valid compressed points and every scalar must be below the group order.
func ParseAdaptorSignature(b []byte) (*AdaptorSignature, error) {
	if len(b) != AdaptorSignatureSize {
		str := fmt.Sprintf("malformed adaptor signature: got %d bytes, want %d",
			len(b), AdaptorSignatureSize)
		return nil, adaptorError(ErrInvalidLength, str)
	}

	var sig AdaptorSignature
	ra, err := curve.ParseCompressed(b[offsetAdaptorPoint:offsetNoncePoint])
	if err != nil {
		return nil, adaptorError(ErrParse, "invalid adaptor point: "+err.Error())
	}
	sig.ra = *ra

	r, err := curve.ParseCompressed(b[offsetNoncePoint:offsetEncryptedS])
	if err != nil {
		return nil, adaptorError(ErrParse, "invalid nonce point: "+err.Error())
	}
	sig.r = *r

	if overflow := sig.sEnc.SetByteSlice(b[offsetEncryptedS:offsetProof]); overflow {
		return nil, adaptorError(ErrParse, "encrypted s is not below the group order")
	}

	proof, err := dleq.ParseProof(b[offsetProof:])
	if err != nil {
		return nil, adaptorError(ErrParse, "invalid proof: "+err.Error())
	}
	sig.proof = *proof

	return &sig, nil
}

// ParseAdaptorSignatureHex parses the hex encoding produced by String. Upper
// and lower case digits are accepted.
func ParseAdaptorSignatureHex(s string) (*AdaptorSignature, error) {
	if len(s) != AdaptorSignatureHexSize {
		str := fmt.Sprintf("malformed adaptor signature hex: got %d characters, want %d",
			len(s), AdaptorSignatureHexSize)
		return nil, adaptorError(ErrInvalidLength, str)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, adaptorError(ErrParse, "invalid adaptor signature hex: "+err.Error())
	}
	return ParseAdaptorSignature(b)
}
