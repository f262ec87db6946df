package ecdsaadaptor

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/mahdiidarabi/ecdsa-adaptor/internal/curve"
)

// CompactSignatureSize is the size of a compact r || s signature.
const CompactSignatureSize = 2 * curve.ScalarSize

// SerializeCompact encodes sig as 64 bytes r || s.
func SerializeCompact(sig *ecdsa.Signature) [CompactSignatureSize]byte {
	var b [CompactSignatureSize]byte
	r, s := sig.R(), sig.S()
	r.PutBytesUnchecked(b[:curve.ScalarSize])
	s.PutBytesUnchecked(b[curve.ScalarSize:])
	return b
}

// ParseCompactSignature decodes a 64-byte r || s signature. Components that
// are not below the group order are rejected. Zero components are accepted
// so that recovery can report them as ErrInvalidSignature.
func ParseCompactSignature(b []byte) (*ecdsa.Signature, error) {
	if len(b) != CompactSignatureSize {
		str := fmt.Sprintf("malformed signature: got %d bytes, want %d",
			len(b), CompactSignatureSize)
		return nil, adaptorError(ErrInvalidLength, str)
	}
	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(b[:curve.ScalarSize]); overflow {
		return nil, adaptorError(ErrParse, "signature r is not below the group order")
	}
	if overflow := s.SetByteSlice(b[curve.ScalarSize:]); overflow {
		return nil, adaptorError(ErrParse, "signature s is not below the group order")
	}
	return ecdsa.NewSignature(&r, &s), nil
}
