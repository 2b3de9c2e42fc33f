// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import "errors"

var (
	// ErrInvalidNetwork indicates the network name is not recognized.
	ErrInvalidNetwork = errors.New("config: invalid network (must be \"mainnet\", \"testnet\", or \"devnet\")")

	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"trace\", \"debug\", \"info\", \"warn\", or \"error\")")

	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigFile indicates the configuration file is not valid YAML.
	ErrInvalidConfigFile = errors.New("config: invalid configuration file")

	// ErrInvalidFee indicates the fee is not a decimal integer string.
	ErrInvalidFee = errors.New("config: invalid fee")

	// ErrInvalidMaxAmount indicates the maximum transaction amount is not a positive decimal integer string.
	ErrInvalidMaxAmount = errors.New("config: invalid max transaction amount")

	// ErrInvalidMinLockTime indicates the minimum lock time is negative.
	ErrInvalidMinLockTime = errors.New("config: min lock time must not be negative")

	// ErrInvalidDecimals indicates the fixed-point decimals are out of range.
	ErrInvalidDecimals = errors.New("config: decimals must be in [0, 18]")

	// ErrInvalidEpoch indicates the network epoch is unset.
	ErrInvalidEpoch = errors.New("config: network epoch must be set")
)
