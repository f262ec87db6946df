// Package config loads the adaptor.toml configuration file used by the
// command line tool.
package config

import (
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// DefaultFileName is the configuration file looked up when no path is given.
const DefaultFileName = "adaptor.toml"

// Config is the top level configuration.
type Config struct {
	Log    Log    `toml:"log"`
	Signer Signer `toml:"signer"`
	Batch  Batch  `toml:"batch"`
}

// Log configures the zap logger.
type Log struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// Signer configures adaptor signature encryption.
type Signer struct {
	// AuxRandomness mixes fresh randomness into every nonce. Disabling it
	// makes encryption deterministic.
	AuxRandomness bool `toml:"aux_randomness"`
}

// Batch configures vector file checking.
type Batch struct {
	// Workers is the number of parallel verifiers (0 = number of CPUs)
	Workers int `toml:"workers"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Log: Log{
			Level: "info",
		},
		Signer: Signer{
			AuxRandomness: true,
		},
	}
}

// Load reads the TOML file at path on top of the defaults. Keys that are not
// part of Config are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, errors.Errorf("unknown config keys in %s: %s",
			path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Batch.Workers < 0 {
		return errors.Errorf("batch.workers must not be negative, got %d", c.Batch.Workers)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error", "dpanic", "panic", "fatal":
	default:
		return errors.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

// NumWorkers resolves the worker count.
func (c *Config) NumWorkers() int {
	if c.Batch.Workers > 0 {
		return c.Batch.Workers
	}
	return runtime.NumCPU()
}
