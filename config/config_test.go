// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// DefaultConfig tests
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"Network", cfg.Network, "mainnet"},
		{"LogLevel", cfg.LogLevel, "info"},
		{"Fee", cfg.Fee, "20000000"},
		{"MaxTransactionAmount", cfg.MaxTransactionAmount, "9223372036854775807"},
		{"MinLockTime", cfg.MinLockTime, int64(120)},
		{"Decimals", cfg.Decimals, int32(8)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("got %v, want %v", tc.got, tc.want)
			}
		})
	}

	if !cfg.Epoch.Equal(time.Date(2016, 5, 24, 17, 0, 0, 0, time.UTC)) {
		t.Errorf("Epoch = %v, want 2016-05-24T17:00:00Z", cfg.Epoch)
	}
	if cfg.DataDir == "" {
		t.Error("DataDir should not be empty")
	}
}

// ---------------------------------------------------------------------------
// SaveConfig / LoadConfig round-trip tests
// ---------------------------------------------------------------------------

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := ConfigPath(dir)

	original := Config{
		DataDir:              "/tmp/test-htlc",
		Network:              "testnet",
		LogLevel:             "debug",
		Fee:                  "10",
		MaxTransactionAmount: "1000000",
		MinLockTime:          60,
		Epoch:                time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Decimals:             6,
	}

	if err := SaveConfig(path, original); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"DataDir", loaded.DataDir, original.DataDir},
		{"Network", loaded.Network, original.Network},
		{"LogLevel", loaded.LogLevel, original.LogLevel},
		{"Fee", loaded.Fee, original.Fee},
		{"MaxTransactionAmount", loaded.MaxTransactionAmount, original.MaxTransactionAmount},
		{"MinLockTime", loaded.MinLockTime, original.MinLockTime},
		{"Decimals", loaded.Decimals, original.Decimals},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("got %v, want %v", tc.got, tc.want)
			}
		})
	}
	if !loaded.Epoch.Equal(original.Epoch) {
		t.Errorf("Epoch = %v, want %v", loaded.Epoch, original.Epoch)
	}
}

func TestSaveConfigCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "config.yaml")

	if err := SaveConfig(path, DefaultConfig()); err != nil {
		t.Fatalf("SaveConfig should create parent dirs: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Config file not created: %v", err)
	}
}

func TestSaveConfig_OutputContainsHeader(t *testing.T) {
	path := ConfigPath(t.TempDir())
	if err := SaveConfig(path, DefaultConfig()); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.HasPrefix(string(data), "# HTLC ledger configuration") {
		t.Error("saved config should start with the header comment")
	}
}

// ---------------------------------------------------------------------------
// LoadConfig error and partial-file tests
// ---------------------------------------------------------------------------

func TestLoadConfigNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config.yaml")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadConfig nonexistent: got %v, want ErrConfigNotFound", err)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := ConfigPath(t.TempDir())
	if err := os.WriteFile(path, []byte("network: [unterminated\n"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(path)
	if !errors.Is(err, ErrInvalidConfigFile) {
		t.Errorf("LoadConfig bad yaml: got %v, want ErrInvalidConfigFile", err)
	}
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	path := ConfigPath(t.TempDir())
	content := `# comment
network: testnet
futurekey: futurevalue
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Network != "testnet" {
		t.Errorf("Network = %q, want %q", cfg.Network, "testnet")
	}
	if cfg.Fee != DefaultFee {
		t.Errorf("Fee = %q, want default %q", cfg.Fee, DefaultFee)
	}
	if cfg.MinLockTime != DefaultMinLockTime {
		t.Errorf("MinLockTime = %d, want default %d", cfg.MinLockTime, DefaultMinLockTime)
	}
}

// ---------------------------------------------------------------------------
// ValidateConfig tests
// ---------------------------------------------------------------------------

func TestValidateConfigDefaults(t *testing.T) {
	if err := ValidateConfig(DefaultConfig()); err != nil {
		t.Errorf("ValidateConfig(DefaultConfig()) = %v, want nil", err)
	}
}

func TestValidateConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{"empty_datadir", func(c *Config) { c.DataDir = "" }, ErrEmptyDataDir},
		{"bad_network", func(c *Config) { c.Network = "regtest" }, ErrInvalidNetwork},
		{"bad_loglevel", func(c *Config) { c.LogLevel = "verbose" }, ErrInvalidLogLevel},
		{"bad_fee", func(c *Config) { c.Fee = "0.2" }, ErrInvalidFee},
		{"zero_max", func(c *Config) { c.MaxTransactionAmount = "0" }, ErrInvalidMaxAmount},
		{"bad_max", func(c *Config) { c.MaxTransactionAmount = "lots" }, ErrInvalidMaxAmount},
		{"negative_lock_time", func(c *Config) { c.MinLockTime = -1 }, ErrInvalidMinLockTime},
		{"bad_decimals", func(c *Config) { c.Decimals = 19 }, ErrInvalidDecimals},
		{"zero_epoch", func(c *Config) { c.Epoch = time.Time{} }, ErrInvalidEpoch},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			err := ValidateConfig(cfg)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("ValidateConfig: got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestValidateConfig_LogLevelCaseInsensitive(t *testing.T) {
	for _, level := range []string{"INFO", "Debug", "trace", "WARN", "Error"} {
		t.Run(level, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.LogLevel = level
			if err := ValidateConfig(cfg); err != nil {
				t.Errorf("ValidateConfig with loglevel %q: %v", level, err)
			}
		})
	}
}

func TestDefaultDataDir_EndsWith_DotHTLC(t *testing.T) {
	if dir := DefaultDataDir(); !strings.HasSuffix(dir, ".htlc") {
		t.Errorf("DefaultDataDir() = %q, want suffix %q", dir, ".htlc")
	}
}
