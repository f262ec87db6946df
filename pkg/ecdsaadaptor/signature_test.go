package ecdsaadaptor

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAdaptorSignatureRoundTrip(t *testing.T) {
	raw := mustDecodeHex(t, validVector.adaptor)

	asig, err := ParseAdaptorSignature(raw)
	require.NoError(t, err)
	require.Equal(t, raw, asig.Serialize())

	require.True(t, bytes.Equal(raw[0:33], asig.AdaptorPoint().SerializeCompressed()))
	require.True(t, bytes.Equal(raw[33:66], asig.NoncePoint().SerializeCompressed()))
	sEnc := asig.EncryptedS()
	sEncBytes := sEnc.Bytes()
	require.Equal(t, raw[66:98], sEncBytes[:])
	proof := asig.Proof()
	proofBytes := proof.Bytes()
	require.Equal(t, raw[98:], proofBytes[:])
}

func TestParseAdaptorSignatureErrors(t *testing.T) {
	raw := mustDecodeHex(t, validVector.adaptor)

	tests := []struct {
		name  string
		input []byte
		kind  ErrorKind
	}{
		{"empty", nil, ErrInvalidLength},
		{"short", raw[:AdaptorSignatureSize-1], ErrInvalidLength},
		{"long", append(append([]byte(nil), raw...), 0x00), ErrInvalidLength},
		{"bad adaptor point prefix", func() []byte {
			b := append([]byte(nil), raw...)
			b[0] = 0x05
			return b
		}(), ErrParse},
		{"bad nonce point prefix", func() []byte {
			b := append([]byte(nil), raw...)
			b[offsetNoncePoint] = 0x04
			return b
		}(), ErrParse},
		{"adaptor point not on curve", func() []byte {
			b := append([]byte(nil), raw...)
			copy(b[1:33], bytes.Repeat([]byte{0xff}, 32))
			return b
		}(), ErrParse},
		{"encrypted s overflow", func() []byte {
			b := append([]byte(nil), raw...)
			copy(b[offsetEncryptedS:offsetProof], bytes.Repeat([]byte{0xff}, 32))
			return b
		}(), ErrParse},
		{"proof overflow", func() []byte {
			b := append([]byte(nil), raw...)
			copy(b[offsetProof:offsetProof+32], bytes.Repeat([]byte{0xff}, 32))
			return b
		}(), ErrParse},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseAdaptorSignature(test.input)
			require.ErrorIs(t, err, test.kind)
		})
	}
}

func TestParseAdaptorSignatureHex(t *testing.T) {
	asig, err := ParseAdaptorSignatureHex(strings.ToUpper(validVector.adaptor))
	require.NoError(t, err)
	require.Equal(t, validVector.adaptor, asig.String())

	_, err = ParseAdaptorSignatureHex(validVector.adaptor[:AdaptorSignatureHexSize-2])
	require.ErrorIs(t, err, ErrInvalidLength)

	_, err = ParseAdaptorSignatureHex(validVector.adaptor + "00")
	require.ErrorIs(t, err, ErrInvalidLength)

	bad := "zz" + validVector.adaptor[2:]
	_, err = ParseAdaptorSignatureHex(bad)
	require.ErrorIs(t, err, ErrParse)
}

func TestAdaptorSignatureJSON(t *testing.T) {
	asig := mustParseAdaptor(t, validVector.adaptor)

	type envelope struct {
		Adaptor *AdaptorSignature `json:"adaptor_signature"`
	}
	data, err := json.Marshal(envelope{Adaptor: asig})
	require.NoError(t, err)
	require.JSONEq(t, `{"adaptor_signature":"`+validVector.adaptor+`"}`, string(data))

	var decoded envelope
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.True(t, decoded.Adaptor.IsEqual(asig))

	err = json.Unmarshal([]byte(`{"adaptor_signature":"00"}`), &decoded)
	require.ErrorIs(t, err, ErrInvalidLength)
}

func TestCompactSignature(t *testing.T) {
	raw := mustDecodeHex(t, validVector.signature)
	sig, err := ParseCompactSignature(raw)
	require.NoError(t, err)
	compact := SerializeCompact(sig)
	require.Equal(t, raw, compact[:])

	_, err = ParseCompactSignature(raw[:63])
	require.ErrorIs(t, err, ErrInvalidLength)

	overflow := bytes.Repeat([]byte{0xff}, CompactSignatureSize)
	_, err = ParseCompactSignature(overflow)
	require.ErrorIs(t, err, ErrParse)

	zero, err := ParseCompactSignature(make([]byte, CompactSignatureSize))
	require.NoError(t, err)
	r := zero.R()
	require.True(t, r.IsZero())
}

func FuzzParseAdaptorSignature(f *testing.F) {
	f.Add(mustDecodeHexF(validVector.adaptor))
	f.Add(mustDecodeHexF(wrongProofVector.adaptor))
	f.Add(make([]byte, AdaptorSignatureSize))

	f.Fuzz(func(t *testing.T, data []byte) {
		asig, err := ParseAdaptorSignature(data)
		if err != nil {
			return
		}
		require.Equal(t, data, asig.Serialize())
	})
}

func mustDecodeHexF(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}
