// Package curve wraps the handful of secp256k1 group operations the adaptor
// signature code needs on top of the decred implementation: blinded scalar
// multiplication for secret scalars, compressed point encoding and the
// x-coordinate to scalar reduction used by ECDSA.
package curve

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// PointSize is the length of a compressed point.
const PointSize = secp256k1.PubKeyBytesLenCompressed

// ScalarSize is the length of a big-endian encoded scalar.
const ScalarSize = 32

// ErrInfinity is returned when an operation yields the point at infinity.
var ErrInfinity = errors.New("point at infinity")

// randomScalar returns a uniformly random non-zero scalar used for blinding.
func randomScalar() (*secp256k1.ModNScalar, error) {
	var buf [ScalarSize]byte
	defer ZeroBytes(buf[:])

	r := new(secp256k1.ModNScalar)
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return nil, fmt.Errorf("failed to read blinding randomness: %w", err)
		}
		if overflow := r.SetBytes(&buf); overflow == 0 && !r.IsZero() {
			return r, nil
		}
	}
}

// ScalarBaseMultBlinded computes k*G as (k+b)*G - b*G for a random b so the
// secret k never drives the variable-time base point multiplication directly.
// The result is in affine coordinates.
func ScalarBaseMultBlinded(k *secp256k1.ModNScalar) (*secp256k1.JacobianPoint, error) {
	b, err := randomScalar()
	if err != nil {
		return nil, err
	}
	defer b.Zero()

	kb := new(secp256k1.ModNScalar).Add2(k, b)
	defer kb.Zero()
	var kbG secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(kb, &kbG)

	b.Negate()
	var negBG secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(b, &negBG)

	var result secp256k1.JacobianPoint
	secp256k1.AddNonConst(&kbG, &negBG, &result)
	if IsInfinity(&result) {
		return nil, ErrInfinity
	}
	result.ToAffine()
	return &result, nil
}

// ScalarMultBlinded computes k*P with the same blinding as
// ScalarBaseMultBlinded. The result is in affine coordinates.
func ScalarMultBlinded(k *secp256k1.ModNScalar, p *secp256k1.JacobianPoint) (*secp256k1.JacobianPoint, error) {
	b, err := randomScalar()
	if err != nil {
		return nil, err
	}
	defer b.Zero()

	kb := new(secp256k1.ModNScalar).Add2(k, b)
	defer kb.Zero()
	var kbP secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(kb, p, &kbP)

	b.Negate()
	var negBP secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(b, p, &negBP)

	var result secp256k1.JacobianPoint
	secp256k1.AddNonConst(&kbP, &negBP, &result)
	if IsInfinity(&result) {
		return nil, ErrInfinity
	}
	result.ToAffine()
	return &result, nil
}

// InverseBlinded returns k^-1 computed as b * (k*b)^-1 for a random b, so the
// variable-time inversion only ever sees a masked value.
func InverseBlinded(k *secp256k1.ModNScalar) (*secp256k1.ModNScalar, error) {
	b, err := randomScalar()
	if err != nil {
		return nil, err
	}
	defer b.Zero()

	kb := new(secp256k1.ModNScalar).Mul2(k, b)
	defer kb.Zero()
	kb.InverseNonConst()
	return new(secp256k1.ModNScalar).Mul2(kb, b), nil
}

// IsInfinity reports whether p is the point at infinity.
func IsInfinity(p *secp256k1.JacobianPoint) bool {
	return (p.X.IsZero() && p.Y.IsZero()) || p.Z.IsZero()
}

// SerializeCompressed encodes an affine point in the 33-byte compressed
// format.
func SerializeCompressed(p *secp256k1.JacobianPoint) []byte {
	affine := *p
	affine.ToAffine()
	return secp256k1.NewPublicKey(&affine.X, &affine.Y).SerializeCompressed()
}

// ParseCompressed decodes a 33-byte compressed point and returns it in affine
// coordinates. Uncompressed and hybrid encodings are rejected.
func ParseCompressed(b []byte) (*secp256k1.JacobianPoint, error) {
	if len(b) != PointSize {
		return nil, fmt.Errorf("malformed point: wrong size %d (want %d)",
			len(b), PointSize)
	}
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, err
	}
	var p secp256k1.JacobianPoint
	pub.AsJacobian(&p)
	return &p, nil
}

// PubKeyToPoint converts a public key to an affine Jacobian point.
func PubKeyToPoint(pub *secp256k1.PublicKey) *secp256k1.JacobianPoint {
	var p secp256k1.JacobianPoint
	pub.AsJacobian(&p)
	return &p
}

// PointToPubKey converts an affine point to a public key.
func PointToPubKey(p *secp256k1.JacobianPoint) *secp256k1.PublicKey {
	affine := *p
	affine.ToAffine()
	return secp256k1.NewPublicKey(&affine.X, &affine.Y)
}

// XToScalar reduces the x-coordinate of an affine point modulo the group
// order, as ECDSA does to obtain r.
func XToScalar(p *secp256k1.JacobianPoint) secp256k1.ModNScalar {
	affine := *p
	affine.ToAffine()
	var r secp256k1.ModNScalar
	r.SetBytes(affine.X.Bytes())
	return r
}

// Equal compares two points in constant time over their compressed
// encodings.
func Equal(a, b *secp256k1.JacobianPoint) bool {
	return subtle.ConstantTimeCompare(SerializeCompressed(a), SerializeCompressed(b)) == 1
}

// SameX reports whether two affine points share an x-coordinate, that is
// whether they are equal up to negation.
func SameX(a, b *secp256k1.JacobianPoint) bool {
	ab := SerializeCompressed(a)
	bb := SerializeCompressed(b)
	return subtle.ConstantTimeCompare(ab[1:], bb[1:]) == 1
}

// ZeroBytes clears a byte slice holding secret material.
func ZeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
