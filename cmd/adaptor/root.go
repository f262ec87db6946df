package main

import (
	"encoding/hex"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mahdiidarabi/ecdsa-adaptor/internal/config"
	"github.com/mahdiidarabi/ecdsa-adaptor/internal/logging"
)

// app carries the state shared by every subcommand once the root command has
// loaded the configuration.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{
		cfg:    config.Default(),
		logger: logging.Nop(),
	}

	cmd := &cobra.Command{
		Use:          "adaptor",
		Short:        "ECDSA adaptor signatures over secp256k1",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	cmd.PersistentFlags().String("config", "", "path to "+config.DefaultFileName+" (default: ./"+config.DefaultFileName+" if present)")
	cmd.PersistentFlags().String("log-level", "", "override the configured log level (debug, info, warn, error)")

	cmd.AddCommand(
		keygenCmd(a),
		encryptCmd(a),
		verifyCmd(a),
		decryptCmd(a),
		recoverCmd(a),
		checkCmd(a),
		generateCmd(a),
	)
	return cmd
}

// setup loads the configuration file and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		if _, err := os.Stat(config.DefaultFileName); err == nil {
			path = config.DefaultFileName
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger.With(zap.String("command", cmd.Name()))
	a.logger.Debug("configuration loaded",
		zap.String("path", path),
		zap.Bool("aux_randomness", cfg.Signer.AuxRandomness),
		zap.Int("workers", cfg.NumWorkers()))
	return nil
}

// hexFlag reads a required hex encoded flag.
func hexFlag(cmd *cobra.Command, name string) ([]byte, error) {
	s, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil, err
	}
	s = trimHexPrefix(s)
	if s == "" {
		return nil, errors.Errorf("--%s is required", name)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid --%s", name)
	}
	return b, nil
}

// trimHexPrefix drops surrounding space and an optional 0x or 0X prefix.
func trimHexPrefix(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}
