// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultFee is the lock fee in base units (0.2 of a coin at 8 decimals).
	DefaultFee = "20000000"

	// DefaultMaxTransactionAmount is the largest amount or balance the ledger accepts.
	DefaultMaxTransactionAmount = "9223372036854775807"

	// DefaultMinLockTime is how far in the future, in seconds, a pending lock must expire.
	DefaultMinLockTime = 120

	// DefaultDecimals is the number of fixed-point decimals of the ledger coin.
	DefaultDecimals = 8

	configFileName = "config.yaml"
)

// DefaultEpoch is the network epoch all HTLC times are measured from.
var DefaultEpoch = time.Date(2016, 5, 24, 17, 0, 0, 0, time.UTC)

// Config holds node-local settings and the ledger constants the HTLC engine
// is parameterised with.
type Config struct {
	DataDir  string `yaml:"datadir"`
	Network  string `yaml:"network"`
	LogLevel string `yaml:"loglevel"`

	Fee                  string    `yaml:"fee"`
	MaxTransactionAmount string    `yaml:"max_transaction_amount"`
	MinLockTime          int64     `yaml:"min_lock_time"`
	Epoch                time.Time `yaml:"epoch"`
	Decimals             int32     `yaml:"decimals"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		DataDir:              DefaultDataDir(),
		Network:              "mainnet",
		LogLevel:             "info",
		Fee:                  DefaultFee,
		MaxTransactionAmount: DefaultMaxTransactionAmount,
		MinLockTime:          DefaultMinLockTime,
		Epoch:                DefaultEpoch,
		Decimals:             DefaultDecimals,
	}
}

// DefaultDataDir returns ~/.htlc, or .htlc if the home directory is unknown.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".htlc"
	}
	return filepath.Join(home, ".htlc")
}

// ConfigPath returns the configuration file path inside dataDir.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, configFileName)
}

// StatePath returns the account database path inside dataDir.
func StatePath(dataDir string) string {
	return filepath.Join(dataDir, "state.db")
}

// LoadConfig reads a YAML configuration file. Keys missing from the file
// keep their DefaultConfig values; unknown keys are ignored.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidConfigFile, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg as YAML, creating parent directories as needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	out := append([]byte("# HTLC ledger configuration\n"), data...)
	if err := os.WriteFile(path, out, 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
