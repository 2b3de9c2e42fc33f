package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli"

	"github.com/bitfsorg/libhtlc-go/config"
)

var (
	configPath string
	dataDir    string
	logLevel   string
)

func main() {
	app := cli.NewApp()
	app.Name = "htlcctl"
	app.Usage = "inspect and apply HTLC transactions against a local account ledger"

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:        "config, c",
			Usage:       "path to the configuration file (default DATADIR/config.yaml)",
			Destination: &configPath,
		},
		cli.StringFlag{
			Name:        "datadir, d",
			Usage:       "directory holding config.yaml and state.db",
			Value:       config.DefaultDataDir(),
			Destination: &dataDir,
		},
		cli.StringFlag{
			Name:        "loglevel",
			Usage:       "trace, debug, info, warn or error; overrides the configuration",
			Destination: &logLevel,
		},
	}

	app.Commands = []cli.Command{
		{
			Name:   "init",
			Usage:  "Write the default configuration to DATADIR/config.yaml",
			Action: initConfig,
		},
		{
			Name:      "hash",
			Usage:     "Print the digest of a secret: htlcctl hash [--scheme OP_HASH160] SECRET",
			ArgsUsage: "SECRET",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "scheme", Value: "OP_HASH256", Usage: "OP_HASH256 or OP_HASH160"},
			},
			Action: hashSecret,
		},
		{
			Name:      "address",
			Usage:     "Print the ledger address of a hex public key",
			ArgsUsage: "PUBKEY",
			Action:    printAddress,
		},
		{
			Name:      "classify",
			Usage:     "Print the sub type, id and contract of a JSON transaction",
			ArgsUsage: "TX_FILE",
			Action:    classifyTx,
		},
		{
			Name:      "validate",
			Usage:     "Run stateless validation on a JSON transaction",
			ArgsUsage: "TX_FILE",
			Action:    validateTx,
		},
		{
			Name:      "apply",
			Usage:     "Apply a JSON transaction to the ledger state",
			ArgsUsage: "TX_FILE",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "dry-run", Usage: "print the writes without committing them"},
			},
			Action: applyTx,
		},
		{
			Name:      "undo",
			Usage:     "Roll back a previously applied JSON transaction",
			ArgsUsage: "TX_FILE",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "dry-run", Usage: "print the writes without committing them"},
			},
			Action: undoTx,
		},
		{
			Name:      "account",
			Usage:     "Print an account, or every account when no address is given",
			ArgsUsage: "[ADDRESS]",
			Action:    printAccount,
		},
		{
			Name:      "credit",
			Usage:     "Credit base units to an account (genesis funding)",
			ArgsUsage: "ADDRESS AMOUNT",
			Action:    creditAccount,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "command failed with error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration and installs the logger it names.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		path = config.ConfigPath(dataDir)
	}
	cfg, err := config.LoadConfig(path)
	switch {
	case errors.Is(err, config.ErrConfigNotFound) && configPath == "":
		// No file in the data directory: run on defaults.
	case err != nil:
		return config.Config{}, err
	}
	cfg.DataDir = dataDir
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return config.Config{}, err
	}

	lvl, err := log.LvlFromString(cfg.LogLevel)
	if err != nil {
		return config.Config{}, fmt.Errorf("%w: %w", config.ErrInvalidLogLevel, err)
	}
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, lvl, false)))
	return cfg, nil
}
