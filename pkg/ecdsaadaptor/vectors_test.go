package ecdsaadaptor

import (
	"encoding/hex"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/ecdsa-adaptor/internal/curve"
)

type adaptorVector struct {
	name          string
	message       string
	publicKey     string
	encryptionKey string
	adaptor       string
	signature     string
	decryptionKey string
}

var (
	vectorMessage   = "8131e6f4b45754f2c90bd06688ceeabc0c45055460729928b4eecf11026a9e2d"
	vectorPublicKey = "035be5e9478209674a96e60f1f037f6176540fd001fa1d64694770c56a7709c42c"

	validVector = adaptorVector{
		name:          "valid",
		message:       vectorMessage,
		publicKey:     vectorPublicKey,
		encryptionKey: "02c2662c97488b07b6e819124b8989849206334a4c2fbdf691f7b34d2b16e9c293",
		adaptor: "03424d14a5471c048ab87b3b83f6085d125d5864249ae4297a57c84e74710bb673" +
			"0223f325042fce535d040fee52ec13231bf709ccd84233c6944b90317e62528b25" +
			"27dff9d659a96db4c99f9750168308633c1867b70f3a18fb0f4539a1aecedcd1" +
			"fc0148fc22f36b6303083ece3f872b18e35d368b3958efe5fb081f7716736ccb" +
			"598d269aa3084d57e1855e1ea9a45efc10463bbf32ae378029f5763ceb40173f",
		signature: "424d14a5471c048ab87b3b83f6085d125d5864249ae4297a57c84e74710bb673" +
			"29e80e0ee60e57af3e625bbae1672b1ecaa58effe613426b024fa1621d903394",
		decryptionKey: "0b2aba63b885a0f0e96fa0f303920c7fb7431ddfa94376ad94d969fbf4109dc8",
	}

	wrongProofVector = adaptorVector{
		name:          "wrong proof",
		message:       vectorMessage,
		publicKey:     vectorPublicKey,
		encryptionKey: "0214ccb756249ad6e733c80285ea7ac2ee12ffebbcee4e556e6810793a60c45ad4",
		adaptor: "03f94dca206d7582c015fb9bffe4e43b14591b30ef7d2b464d103ec5e116595dba" +
			"03127f8ac3533d249280332474339000922eb6a58e3b9bf4fc7e01e4b4df2b7a41" +
			"00a1e089f16e5d70bb89f961516f1de0684cc79db978495df2f399b0d01ed724" +
			"0fa6e3252aedb58bdc6b5877b0c602628a235dd1ccaebdddcbe96198c0c21bea" +
			"d7b05f423b673d14d206fa1507b2dbe2722af792b8c266fc25a2d901d7e2c335",
	}

	wrongRVector = adaptorVector{
		name:          "signature r does not match",
		encryptionKey: "035176d24129741b0fcaa5fd6750727ce30860447e0a92c9ebebdeb7c3f93995ed",
		adaptor: "03aa86d78059a91059c29ec1a757c4dc029ff636a1e6c1142fefe1e9d7339617c0" +
			"03a8153e50c0c8574a38d389e61bbb0b5815169e060924e4b5f2e78ff13aa7ad85" +
			"8e0c27c4b9eed9d60521b3f54ff83ca4774be5fb3a680f820a35e8840f4aaf2d" +
			"e88e7c5cff38a37b78725904ef97bb82341328d55987019bd38ae1745e3efe0f" +
			"8ea8bdfede0d378fc1f96e944a7505249f41e93781509ee0bade77290d39cd12",
		signature: "f7f7fe6bd056fc4abd70d335f72d0aa1e8406bba68f3e579e4789475323564a4" +
			"52c46176c7fb40aa37d5651341f55697dab27d84a213b30c93011a7790bace8c",
	}

	highSVector = adaptorVector{
		name:          "high s",
		encryptionKey: "02042537e913ad74c4bbd8da9607ad3b9cb297d08e014afc51133083f1bd687a62",
		adaptor: "032c637cd797dd8c2ce261907ed43e82d6d1a48cbabbbece801133dd8d70a01b14" +
			"03eb615a3e59b1cbbf4f87acaf645be1eda32a066611f35dd5557802802b14b19c" +
			"81c04c3fefac5783b2077bd43fa0a39ab8a64d4d78332a5d621ea23eca46bc01" +
			"1011ab82dda6deb85699f508744d70d4134bea03f784d285b5c6c15a56e4e1fa" +
			"b4bc356abbdebb3b8fe1e55e6dd6d2a9ea457e91b2e6642fae69f9dbb5258854",
		signature: "2c637cd797dd8c2ce261907ed43e82d6d1a48cbabbbece801133dd8d70a01b14" +
			"b5f24321f550b7b9dd06ee4fcfd82bdad8b142ff93a790cc4d9f7962b38c6a3b",
		decryptionKey: "324719b51ff2474c9438eb76494b0dc0bcceeb529f0a5428fd198ad8f886e99c",
	}
)

func mustDecodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func mustParsePubKey(t *testing.T, s string) *secp256k1.PublicKey {
	t.Helper()
	pub, err := secp256k1.ParsePubKey(mustDecodeHex(t, s))
	require.NoError(t, err)
	return pub
}

func mustParseAdaptor(t *testing.T, s string) *AdaptorSignature {
	t.Helper()
	sig, err := ParseAdaptorSignatureHex(s)
	require.NoError(t, err)
	return sig
}

func TestVectorValid(t *testing.T) {
	v := validVector
	asig := mustParseAdaptor(t, v.adaptor)
	msg := mustDecodeHex(t, v.message)
	pub := mustParsePubKey(t, v.publicKey)
	encKey := mustParsePubKey(t, v.encryptionKey)

	require.NoError(t, asig.Verify(msg, pub, encKey))
	require.Equal(t, v.adaptor, asig.String())

	sig, err := ParseCompactSignature(mustDecodeHex(t, v.signature))
	require.NoError(t, err)
	require.True(t, sig.Verify(msg, pub))

	dk, err := asig.Recover(sig, encKey)
	require.NoError(t, err)
	dkBytes := dk.Bytes()
	require.Equal(t, v.decryptionKey, hex.EncodeToString(dkBytes[:]))

	// Decrypting with the recovered key reproduces the completed signature.
	decrypted, err := asig.Decrypt(dk)
	require.NoError(t, err)
	require.True(t, decrypted.IsEqual(sig))
}

func TestVectorWrongProof(t *testing.T) {
	v := wrongProofVector
	asig := mustParseAdaptor(t, v.adaptor)

	err := asig.Verify(mustDecodeHex(t, v.message), mustParsePubKey(t, v.publicKey),
		mustParsePubKey(t, v.encryptionKey))
	require.ErrorIs(t, err, ErrCannotVerifyAdaptorSignature)
	require.ErrorIs(t, err, ErrInvalidProof)
}

func TestVectorRecoverWrongR(t *testing.T) {
	v := wrongRVector
	asig := mustParseAdaptor(t, v.adaptor)
	sig, err := ParseCompactSignature(mustDecodeHex(t, v.signature))
	require.NoError(t, err)

	_, err = asig.Recover(sig, mustParsePubKey(t, v.encryptionKey))
	require.ErrorIs(t, err, ErrCannotRecoverAdaptorSecret)
}

func TestVectorRecoverHighS(t *testing.T) {
	v := highSVector
	asig := mustParseAdaptor(t, v.adaptor)
	sig, err := ParseCompactSignature(mustDecodeHex(t, v.signature))
	require.NoError(t, err)
	s := sig.S()
	require.True(t, s.IsOverHalfOrder())

	encKey := mustParsePubKey(t, v.encryptionKey)
	dk, err := asig.Recover(sig, encKey)
	require.NoError(t, err)
	dkBytes := dk.Bytes()
	require.Equal(t, v.decryptionKey, hex.EncodeToString(dkBytes[:]))

	ek, err := dk.EncryptionKey()
	require.NoError(t, err)
	require.True(t, ek.IsEqual(encKey))
}

func TestVectorTamperedProof(t *testing.T) {
	v := validVector
	raw := mustDecodeHex(t, v.adaptor)
	msg := mustDecodeHex(t, v.message)
	pub := mustParsePubKey(t, v.publicKey)
	encKey := mustParsePubKey(t, v.encryptionKey)

	for i := offsetProof; i < AdaptorSignatureSize; i++ {
		tampered := append([]byte(nil), raw...)
		tampered[i] ^= 0x01
		asig, err := ParseAdaptorSignature(tampered)
		require.NoError(t, err, "byte %d", i)
		require.ErrorIs(t, asig.Verify(msg, pub, encKey), ErrInvalidProof, "byte %d", i)
	}

	for i := offsetEncryptedS; i < offsetProof; i++ {
		tampered := append([]byte(nil), raw...)
		tampered[i] ^= 0x01
		asig, err := ParseAdaptorSignature(tampered)
		require.NoError(t, err, "byte %d", i)
		require.ErrorIs(t, asig.Verify(msg, pub, encKey), ErrInvalidAdaptorSignature, "byte %d", i)
	}

	// A changed nonce point either stops being a curve point or breaks the
	// proof; it is never accepted.
	var rejected, invalidProof int
	for i := offsetNoncePoint; i < offsetEncryptedS; i++ {
		tampered := append([]byte(nil), raw...)
		tampered[i] ^= 0x01
		asig, err := ParseAdaptorSignature(tampered)
		if err != nil {
			require.ErrorIs(t, err, ErrParse, "byte %d", i)
			rejected++
			continue
		}
		require.ErrorIs(t, asig.Verify(msg, pub, encKey), ErrInvalidProof, "byte %d", i)
		invalidProof++
	}
	require.Equal(t, curve.PointSize, rejected+invalidProof)
}

func TestVectorZeroEncryptedS(t *testing.T) {
	v := validVector
	raw := mustDecodeHex(t, v.adaptor)
	for i := offsetEncryptedS; i < offsetProof; i++ {
		raw[i] = 0
	}
	asig, err := ParseAdaptorSignature(raw)
	require.NoError(t, err)

	msg := mustDecodeHex(t, v.message)
	pub := mustParsePubKey(t, v.publicKey)
	encKey := mustParsePubKey(t, v.encryptionKey)
	dk, err := NewDecryptionKeyFromBytes(mustDecodeHex(t, v.decryptionKey))
	require.NoError(t, err)
	sig, err := ParseCompactSignature(mustDecodeHex(t, v.signature))
	require.NoError(t, err)

	tests := []struct {
		name string
		run  func() error
		kind ErrorKind
	}{
		{
			name: "verify",
			run:  func() error { return asig.Verify(msg, pub, encKey) },
			kind: ErrInvalidAdaptorSignature,
		},
		{
			name: "decrypt",
			run: func() error {
				_, err := asig.Decrypt(dk)
				return err
			},
			kind: ErrCannotDecryptAdaptorSignature,
		},
		{
			name: "recover",
			run: func() error {
				_, err := asig.Recover(sig, encKey)
				return err
			},
			kind: ErrInvalidSignature,
		},
	}

	for _, test := range tests {
		err := test.run()
		require.ErrorIs(t, err, test.kind, test.name)
	}
	require.ErrorIs(t, asig.Verify(msg, pub, encKey), ErrCannotVerifyAdaptorSignature)
}

func TestVectorDecryptRejectsMissingKey(t *testing.T) {
	asig := mustParseAdaptor(t, validVector.adaptor)

	_, err := asig.Decrypt(nil)
	require.ErrorIs(t, err, ErrInvalidSecretKey)

	_, err = asig.Decrypt(&DecryptionKey{})
	require.ErrorIs(t, err, ErrInvalidSecretKey)
}

func TestVectorWrongMessageAndKeys(t *testing.T) {
	v := validVector
	asig := mustParseAdaptor(t, v.adaptor)
	msg := mustDecodeHex(t, v.message)
	pub := mustParsePubKey(t, v.publicKey)
	encKey := mustParsePubKey(t, v.encryptionKey)

	otherMsg := append([]byte(nil), msg...)
	otherMsg[0] ^= 0xff
	require.ErrorIs(t, asig.Verify(otherMsg, pub, encKey), ErrInvalidAdaptorSignature)

	// Swapping the signing key and the encryption key must fail.
	require.ErrorIs(t, asig.Verify(msg, encKey, pub), ErrCannotVerifyAdaptorSignature)

	require.ErrorIs(t, asig.Verify(msg[:31], pub, encKey), ErrInvalidMessage)
}
