package adaptorvec

import (
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/mahdiidarabi/ecdsa-adaptor/pkg/ecdsaadaptor"
)

// ErrKeyMismatch is returned when recovery succeeds but yields a different
// decryption key than the vector expects.
var ErrKeyMismatch = errors.New("recovered decryption key does not match")

// Result is the outcome of checking one vector.
type Result struct {
	Index     int                         // Position in the input
	Name      string                      // Vector name, if any
	Expected  bool                        // The vector's valid flag
	Verified  bool                        // Whether Verify ran and succeeded
	Recovered *ecdsaadaptor.DecryptionKey // Recovered key, if recovery ran and succeeded
	Err       error                       // First failure, nil when every check passed
	Passed    bool                        // Whether the outcome matches Expected
}

// Check runs every check the vector's fields allow: parsing, verification
// when message and public key are present, and recovery when a completed
// signature is present.
func Check(v *Vector) *Result {
	res := &Result{Name: v.Name, Expected: v.Valid}
	res.Err = check(v, res)
	res.Passed = (res.Err == nil) == v.Valid
	return res
}

func check(v *Vector, res *Result) error {
	encKey, err := secp256k1.ParsePubKey(v.EncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to parse encryption key: %w", err)
	}
	asig, err := ecdsaadaptor.ParseAdaptorSignature(v.AdaptorSignature)
	if err != nil {
		return fmt.Errorf("failed to parse adaptor signature: %w", err)
	}

	if v.CanVerify() {
		pub, err := secp256k1.ParsePubKey(v.PublicKey)
		if err != nil {
			return fmt.Errorf("failed to parse public key: %w", err)
		}
		if err := asig.Verify(v.Message, pub, encKey); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		res.Verified = true
	}

	if !v.CanRecover() {
		return nil
	}

	sig, err := ecdsaadaptor.ParseCompactSignature(v.Signature)
	if err != nil {
		return fmt.Errorf("failed to parse signature: %w", err)
	}
	dk, err := asig.Recover(sig, encKey)
	if err != nil {
		return fmt.Errorf("recovery failed: %w", err)
	}
	res.Recovered = dk

	if len(v.DecryptionKey) > 0 {
		want, err := ecdsaadaptor.NewDecryptionKeyFromBytes(v.DecryptionKey)
		if err != nil {
			return fmt.Errorf("failed to parse decryption key: %w", err)
		}
		if !want.IsEqual(dk) {
			return ErrKeyMismatch
		}
	}
	return nil
}
