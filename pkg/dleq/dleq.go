// Package dleq implements a non-interactive Chaum-Pedersen proof that two
// points share the same discrete logarithm with respect to two bases:
// P1 = x*G and P2 = x*Y for the secp256k1 generator G and an arbitrary base
// point Y.
//
// The Fiat-Shamir challenge is
//
//	e = tagged_hash("DLEQ", P1 || Y || P2 || A || B) mod n
//
// where A = t*G and B = t*Y are the prover's commitments and every point is
// serialized compressed. Only (e, s) is transmitted; the verifier recomputes
// the commitments from s*G - e*P1 and s*Y - e*P2.
package dleq

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/mahdiidarabi/ecdsa-adaptor/internal/curve"
	"github.com/mahdiidarabi/ecdsa-adaptor/internal/nonce"
)

// ProofSize is the size of a serialized proof: the challenge followed by the
// response, both big-endian scalars.
const ProofSize = 2 * curve.ScalarSize

var (
	// ErrZeroNonce is returned by Prove when the derived commitment nonce is
	// zero. Callers are expected to retry with different auxiliary data.
	ErrZeroNonce = errors.New("dleq: commitment nonce is zero")

	// ErrInvalidProofLength is returned when parsing a proof of the wrong size.
	ErrInvalidProofLength = errors.New("dleq: invalid proof length")

	// ErrScalarOverflow is returned when a serialized proof scalar is not
	// below the group order.
	ErrScalarOverflow = errors.New("dleq: proof scalar overflows group order")
)

// Proof is a DLEQ proof (e, s).
type Proof struct {
	E secp256k1.ModNScalar
	S secp256k1.ModNScalar
}

// Bytes serializes the proof as e || s.
func (p *Proof) Bytes() [ProofSize]byte {
	var b [ProofSize]byte
	p.E.PutBytesUnchecked(b[:curve.ScalarSize])
	p.S.PutBytesUnchecked(b[curve.ScalarSize:])
	return b
}

// IsEqual reports whether two proofs are identical.
func (p *Proof) IsEqual(other *Proof) bool {
	return p.E.Equals(&other.E) && p.S.Equals(&other.S)
}

// ParseProof parses a proof serialized by Bytes.
func ParseProof(b []byte) (*Proof, error) {
	if len(b) != ProofSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d",
			ErrInvalidProofLength, len(b), ProofSize)
	}
	var p Proof
	if overflow := p.E.SetByteSlice(b[:curve.ScalarSize]); overflow {
		return nil, fmt.Errorf("%w: challenge", ErrScalarOverflow)
	}
	if overflow := p.S.SetByteSlice(b[curve.ScalarSize:]); overflow {
		return nil, fmt.Errorf("%w: response", ErrScalarOverflow)
	}
	return &p, nil
}

// Pair computes P1 = x*G and P2 = x*Y.
func Pair(x *secp256k1.ModNScalar, y *secp256k1.JacobianPoint) (p1, p2 *secp256k1.JacobianPoint, err error) {
	p1, err = curve.ScalarBaseMultBlinded(x)
	if err != nil {
		return nil, nil, err
	}
	p2, err = curve.ScalarMultBlinded(x, y)
	if err != nil {
		return nil, nil, err
	}
	return p1, p2, nil
}

// challenge computes the Fiat-Shamir challenge over the statement and the
// commitments.
func challenge(y, p1, p2, a, b *secp256k1.JacobianPoint) secp256k1.ModNScalar {
	h := chainhash.TaggedHash(nonce.DLEQTag,
		curve.SerializeCompressed(p1),
		curve.SerializeCompressed(y),
		curve.SerializeCompressed(p2),
		curve.SerializeCompressed(a),
		curve.SerializeCompressed(b),
	)
	var e secp256k1.ModNScalar
	e.SetBytes((*[chainhash.HashSize]byte)(h))
	return e
}

// commitmentNonce derives t from the secret, the second base and the
// statement. Supplying fresh aux makes t fresh on every invocation.
func commitmentNonce(x *secp256k1.ModNScalar, y33, p1, p2, aux []byte) secp256k1.ModNScalar {
	xBytes := x.Bytes()
	defer curve.ZeroBytes(xBytes[:])

	h := sha256.New()
	h.Write(p1)
	h.Write(p2)
	statement := h.Sum(nil)

	tBytes := nonce.Derive(nonce.DLEQTag, xBytes[:], y33, statement, aux)
	defer curve.ZeroBytes(tBytes[:])

	var t secp256k1.ModNScalar
	t.SetBytes(&tBytes)
	return t
}

// Prove produces a proof that p1 = x*G and p2 = x*y. aux is optional 32-byte
// auxiliary randomness mixed into the commitment nonce.
func Prove(x *secp256k1.ModNScalar, y, p1, p2 *secp256k1.JacobianPoint, aux []byte) (*Proof, error) {
	y33 := curve.SerializeCompressed(y)
	p133 := curve.SerializeCompressed(p1)
	p233 := curve.SerializeCompressed(p2)

	t := commitmentNonce(x, y33, p133, p233, aux)
	defer t.Zero()
	if t.IsZero() {
		return nil, ErrZeroNonce
	}

	a, b, err := Pair(&t, y)
	if err != nil {
		return nil, err
	}

	var proof Proof
	proof.E = challenge(y, p1, p2, a, b)

	// s = t + e*x
	proof.S.Mul2(&proof.E, x).Add(&t)
	return &proof, nil
}

// Verify checks that proof attests p1 = x*G and p2 = x*y for some x.
func Verify(y, p1, p2 *secp256k1.JacobianPoint, proof *Proof) bool {
	if proof == nil || curve.IsInfinity(y) || curve.IsInfinity(p1) ||
		curve.IsInfinity(p2) {

		return false
	}

	negE := new(secp256k1.ModNScalar).NegateVal(&proof.E)

	// A = s*G - e*P1
	var sG, eP1, a secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&proof.S, &sG)
	secp256k1.ScalarMultNonConst(negE, p1, &eP1)
	secp256k1.AddNonConst(&sG, &eP1, &a)
	if curve.IsInfinity(&a) {
		return false
	}
	a.ToAffine()

	// B = s*Y - e*P2
	var sY, eP2, b secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(&proof.S, y, &sY)
	secp256k1.ScalarMultNonConst(negE, p2, &eP2)
	secp256k1.AddNonConst(&sY, &eP2, &b)
	if curve.IsInfinity(&b) {
		return false
	}
	b.ToAffine()

	expected := challenge(y, p1, p2, &a, &b)
	return expected.Equals(&proof.E)
}
