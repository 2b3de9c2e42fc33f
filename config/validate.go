// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import (
	"strings"

	"github.com/bitfsorg/libhtlc-go/ledger"
)

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if cfg.Network != "mainnet" && cfg.Network != "testnet" && cfg.Network != "devnet" {
		return ErrInvalidNetwork
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	if !ledger.IsNumberString(cfg.Fee) {
		return ErrInvalidFee
	}

	max, err := ledger.ParseAmount(cfg.MaxTransactionAmount)
	if err != nil || max.IsZero() {
		return ErrInvalidMaxAmount
	}

	if cfg.MinLockTime < 0 {
		return ErrInvalidMinLockTime
	}

	if cfg.Decimals < 0 || cfg.Decimals > 18 {
		return ErrInvalidDecimals
	}

	if cfg.Epoch.IsZero() {
		return ErrInvalidEpoch
	}

	return nil
}
