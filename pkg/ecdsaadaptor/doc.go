// Package ecdsaadaptor implements ECDSA adaptor signatures over secp256k1.
//
// An adaptor signature is an ECDSA signature encrypted under an encryption
// key Y = y*G. Anyone can check that it will become a valid signature once
// decrypted with y, and once the decrypted signature is published the
// adaptor signature holder can recover y from it. This is the building block
// of atomic swaps and discreet log contracts.
//
// # Quick Start
//
//	import "github.com/mahdiidarabi/ecdsa-adaptor/pkg/ecdsaadaptor"
//
//	// The party that knows y hands out the encryption key.
//	dk, encKey, err := ecdsaadaptor.GenerateKeyPair()
//
//	// The signer encrypts a signature over a 32-byte digest.
//	asig, err := ecdsaadaptor.Encrypt(digest, signingKey, encKey)
//
//	// The receiver checks it against the signer's public key.
//	if err := asig.Verify(digest, signingKey.PubKey(), encKey); err != nil {
//	    log.Fatal(err)
//	}
//
//	// The owner of y completes the signature.
//	sig, err := asig.Decrypt(dk)
//
//	// Seeing sig, the signer learns y.
//	recovered, err := asig.Recover(sig, encKey)
//
// # Wire Format
//
// An adaptor signature is 162 bytes:
//
//	R_a (33) || R (33) || s_enc (32) || e (32) || s (32)
//
// R_a = k*Y and R = k*G are compressed points, s_enc is the encrypted s and
// (e, s) is a DLEQ proof that R and R_a share the nonce k. String and
// MarshalText produce the 324 character lowercase hex form.
//
// # Errors
//
// Every error returned by this package is an Error wrapping an ErrorKind, so
// callers can match failures with errors.Is:
//
//	if errors.Is(err, ecdsaadaptor.ErrInvalidProof) {
//	    // the DLEQ proof did not verify
//	}
//
// # Security
//
// Nonces are derived under their own tag, separate from regular ECDSA
// signing, and mix in fresh randomness by default. A custom NonceFunc must
// never repeat a nonce across messages. Publishing a decrypted signature
// reveals the decryption key to whoever holds the adaptor signature, so use a
// fresh encryption key per protocol run.
package ecdsaadaptor
