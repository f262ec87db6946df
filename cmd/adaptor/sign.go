package main

import (
	"encoding/hex"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mahdiidarabi/ecdsa-adaptor/pkg/ecdsaadaptor"
)

func keygenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a key pair (usable as signing or decryption key)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dk, ek, err := ecdsaadaptor.GenerateKeyPair()
			if err != nil {
				return errors.Wrap(err, "failed to generate key pair")
			}
			defer dk.Zero()

			sk := dk.Bytes()
			fmt.Fprintf(cmd.OutOrStdout(), "secret_key: %x\npublic_key: %x\n",
				sk[:], ek.SerializeCompressed())
			a.logger.Debug("generated key pair")
			return nil
		},
	}
}

func encryptCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Create an adaptor signature over a 32-byte digest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := hexFlag(cmd, "message")
			if err != nil {
				return err
			}
			sk, err := signingKeyFlag(cmd, "secret-key")
			if err != nil {
				return err
			}
			defer sk.Zero()
			encKey, err := pubKeyFlag(cmd, "encryption-key")
			if err != nil {
				return err
			}

			var opts []ecdsaadaptor.EncryptOption
			deterministic, _ := cmd.Flags().GetBool("deterministic")
			if deterministic || !a.cfg.Signer.AuxRandomness {
				opts = append(opts, ecdsaadaptor.WithDeterministicNonce())
			}

			asig, err := ecdsaadaptor.Encrypt(msg, sk, encKey, opts...)
			if err != nil {
				return errors.Wrap(err, "encryption failed")
			}
			a.logger.Debug("created adaptor signature",
				zap.Bool("deterministic", len(opts) > 0),
				zap.String("encryption_key", hex.EncodeToString(encKey.SerializeCompressed())))

			fmt.Fprintln(cmd.OutOrStdout(), asig.String())
			return nil
		},
	}
	cmd.Flags().String("message", "", "32-byte message digest (hex)")
	cmd.Flags().String("secret-key", "", "signing key (hex)")
	cmd.Flags().String("encryption-key", "", "compressed encryption key (hex)")
	cmd.Flags().Bool("deterministic", false, "derive the nonce without auxiliary randomness")
	return cmd
}

func verifyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify an adaptor signature and its DLEQ proof",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := hexFlag(cmd, "message")
			if err != nil {
				return err
			}
			pub, err := pubKeyFlag(cmd, "public-key")
			if err != nil {
				return err
			}
			encKey, err := pubKeyFlag(cmd, "encryption-key")
			if err != nil {
				return err
			}
			asig, err := adaptorFlag(cmd)
			if err != nil {
				return err
			}

			if err := asig.Verify(msg, pub, encKey); err != nil {
				a.logger.Info("adaptor signature rejected", zap.Error(err))
				return errors.Wrap(err, "verification failed")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
	cmd.Flags().String("message", "", "32-byte message digest (hex)")
	cmd.Flags().String("public-key", "", "signer's public key (hex)")
	cmd.Flags().String("encryption-key", "", "compressed encryption key (hex)")
	cmd.Flags().String("adaptor", "", "adaptor signature (hex)")
	return cmd
}

func decryptCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Complete an adaptor signature with the decryption key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asig, err := adaptorFlag(cmd)
			if err != nil {
				return err
			}
			dkBytes, err := hexFlag(cmd, "decryption-key")
			if err != nil {
				return err
			}
			dk, err := ecdsaadaptor.NewDecryptionKeyFromBytes(dkBytes)
			if err != nil {
				return errors.Wrap(err, "invalid --decryption-key")
			}
			defer dk.Zero()

			sig, err := asig.Decrypt(dk)
			if err != nil {
				return errors.Wrap(err, "decryption failed")
			}
			compact := ecdsaadaptor.SerializeCompact(sig)
			a.logger.Debug("decrypted adaptor signature")

			fmt.Fprintf(cmd.OutOrStdout(), "%x\n", compact[:])
			return nil
		},
	}
	cmd.Flags().String("adaptor", "", "adaptor signature (hex)")
	cmd.Flags().String("decryption-key", "", "decryption key (hex)")
	return cmd
}

func recoverCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Recover the decryption key from a completed signature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asig, err := adaptorFlag(cmd)
			if err != nil {
				return err
			}
			sigBytes, err := hexFlag(cmd, "signature")
			if err != nil {
				return err
			}
			encKey, err := pubKeyFlag(cmd, "encryption-key")
			if err != nil {
				return err
			}

			sig, err := ecdsaadaptor.ParseCompactSignature(sigBytes)
			if err != nil {
				return errors.Wrap(err, "invalid --signature")
			}
			dk, err := asig.Recover(sig, encKey)
			if err != nil {
				return errors.Wrap(err, "recovery failed")
			}
			defer dk.Zero()
			a.logger.Debug("recovered decryption key")

			b := dk.Bytes()
			fmt.Fprintf(cmd.OutOrStdout(), "%x\n", b[:])
			return nil
		},
	}
	cmd.Flags().String("adaptor", "", "adaptor signature (hex)")
	cmd.Flags().String("signature", "", "completed signature, compact r || s (hex)")
	cmd.Flags().String("encryption-key", "", "compressed encryption key (hex)")
	return cmd
}

// signingKeyFlag reads a 32-byte signing key that must be a nonzero scalar
// below the group order.
func signingKeyFlag(cmd *cobra.Command, name string) (*secp256k1.PrivateKey, error) {
	b, err := hexFlag(cmd, name)
	if err != nil {
		return nil, err
	}
	if len(b) != secp256k1.PrivKeyBytesLen {
		return nil, errors.Errorf("invalid --%s: got %d bytes, want %d",
			name, len(b), secp256k1.PrivKeyBytesLen)
	}
	var k secp256k1.ModNScalar
	overflow := k.SetByteSlice(b)
	if overflow || k.IsZero() {
		k.Zero()
		return nil, errors.Errorf("invalid --%s: signing key must be nonzero and below the group order", name)
	}
	return secp256k1.NewPrivateKey(&k), nil
}

func pubKeyFlag(cmd *cobra.Command, name string) (*secp256k1.PublicKey, error) {
	b, err := hexFlag(cmd, name)
	if err != nil {
		return nil, err
	}
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid --%s", name)
	}
	return pub, nil
}

func adaptorFlag(cmd *cobra.Command) (*ecdsaadaptor.AdaptorSignature, error) {
	s, err := cmd.Flags().GetString("adaptor")
	if err != nil {
		return nil, err
	}
	s = trimHexPrefix(s)
	if s == "" {
		return nil, errors.New("--adaptor is required")
	}
	asig, err := ecdsaadaptor.ParseAdaptorSignatureHex(s)
	if err != nil {
		return nil, errors.Wrap(err, "invalid --adaptor")
	}
	return asig, nil
}
