// Package adaptorvec reads adaptor signature test vectors from JSON or CSV
// files and checks them in parallel.
//
// A vector names an encryption key and an adaptor signature, and optionally
// the message and signing key it should verify against, a completed signature
// to recover from and the decryption key recovery should produce. Valid says
// whether every check that the present fields allow is expected to pass.
//
// # Quick Start
//
//	client := adaptorvec.NewClient().WithWorkers(8)
//
//	report, err := client.CheckFile(ctx, "vectors.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d passed, %d failed\n", report.Passed, report.Failed)
package adaptorvec

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Vector is a single adaptor signature test case. Byte fields hold the raw
// encodings; they are only parsed when the vector is checked so that
// malformed encodings can be part of negative vectors.
type Vector struct {
	Name             string
	Message          []byte // 32-byte digest, empty to skip verification
	PublicKey        []byte // signing key, compressed
	EncryptionKey    []byte // compressed
	AdaptorSignature []byte // 162 bytes
	Signature        []byte // compact r || s, empty to skip recovery
	DecryptionKey    []byte // expected recovery result, optional
	Valid            bool
}

// CanVerify reports whether the vector carries enough data to verify the
// adaptor signature.
func (v *Vector) CanVerify() bool {
	return len(v.Message) > 0 && len(v.PublicKey) > 0
}

// CanRecover reports whether the vector carries a completed signature.
func (v *Vector) CanRecover() bool {
	return len(v.Signature) > 0
}

// record is the serialized form of a Vector shared by the JSON and CSV
// formats.
type record struct {
	Name             string `json:"name,omitempty"`
	Message          string `json:"message,omitempty"`
	PublicKey        string `json:"public_key,omitempty"`
	EncryptionKey    string `json:"encryption_key"`
	AdaptorSignature string `json:"adaptor_signature"`
	Signature        string `json:"signature,omitempty"`
	DecryptionKey    string `json:"decryption_key,omitempty"`
	Valid            bool   `json:"valid"`
}

func (r *record) toVector() (*Vector, error) {
	if r.EncryptionKey == "" {
		return nil, fmt.Errorf("missing encryption_key field")
	}
	if r.AdaptorSignature == "" {
		return nil, fmt.Errorf("missing adaptor_signature field")
	}

	v := &Vector{Name: r.Name, Valid: r.Valid}
	fields := []struct {
		name string
		src  string
		dst  *[]byte
	}{
		{"message", r.Message, &v.Message},
		{"public_key", r.PublicKey, &v.PublicKey},
		{"encryption_key", r.EncryptionKey, &v.EncryptionKey},
		{"adaptor_signature", r.AdaptorSignature, &v.AdaptorSignature},
		{"signature", r.Signature, &v.Signature},
		{"decryption_key", r.DecryptionKey, &v.DecryptionKey},
	}
	for _, f := range fields {
		if f.src == "" {
			continue
		}
		b, err := hexDecode(f.src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", f.name, err)
		}
		*f.dst = b
	}
	return v, nil
}

func (v *Vector) toRecord() *record {
	return &record{
		Name:             v.Name,
		Message:          hex.EncodeToString(v.Message),
		PublicKey:        hex.EncodeToString(v.PublicKey),
		EncryptionKey:    hex.EncodeToString(v.EncryptionKey),
		AdaptorSignature: hex.EncodeToString(v.AdaptorSignature),
		Signature:        hex.EncodeToString(v.Signature),
		DecryptionKey:    hex.EncodeToString(v.DecryptionKey),
		Valid:            v.Valid,
	}
}

// hexDecode decodes a hex string, handling 0x prefix
func hexDecode(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	return hex.DecodeString(s)
}
