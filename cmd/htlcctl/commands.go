package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/urfave/cli"

	"github.com/bitfsorg/libhtlc-go/config"
	"github.com/bitfsorg/libhtlc-go/hashlock"
	"github.com/bitfsorg/libhtlc-go/htlc"
	"github.com/bitfsorg/libhtlc-go/ledger"
)

func initConfig(c *cli.Context) error {
	cfg := config.DefaultConfig()
	cfg.DataDir = dataDir
	path := configPath
	if path == "" {
		path = config.ConfigPath(dataDir)
	}
	if err := config.SaveConfig(path, cfg); err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func hashSecret(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("hash needs 1 argument (received: %d)", c.NArg())
	}
	fmt.Println(hashlock.HashKey(c.Args().First(), c.String("scheme")))
	return nil
}

func printAddress(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("address needs 1 argument (received: %d)", c.NArg())
	}
	addr, err := hashlock.AddressFromPublicKey(c.Args().First())
	if err != nil {
		return err
	}
	fmt.Println(addr)
	return nil
}

func classifyTx(c *cli.Context) error {
	cfg, _, tx, err := loadTx(c)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "id:\t%s\n", tx.ID)
	fmt.Fprintf(tw, "subtype:\t%s\n", tx.SubType())
	fmt.Fprintf(tw, "sender:\t%s\n", tx.SenderID)
	fmt.Fprintf(tw, "contract:\t%s\n", tx.ContractID())
	fmt.Fprintf(tw, "fee:\t%s\n", ledger.FormatAmount(tx.Fee, cfg.Decimals))
	return tw.Flush()
}

func validateTx(c *cli.Context) error {
	_, e, tx, err := loadTx(c)
	if err != nil {
		return err
	}
	if errs := e.Validate(tx); len(errs) > 0 {
		printErrors(errs)
		return fmt.Errorf("transaction %s is invalid", tx.ID)
	}
	fmt.Printf("transaction %s is valid\n", tx.ID)
	return nil
}

func applyTx(c *cli.Context) error {
	return transition(c, "apply", func(e *htlc.Engine, r ledger.Reader, tx *htlc.Transaction) htlc.Result {
		if errs := e.Validate(tx); len(errs) > 0 {
			return htlc.Result{Errors: errs}
		}
		return e.Apply(r, tx)
	})
}

func undoTx(c *cli.Context) error {
	return transition(c, "undo", (*htlc.Engine).Undo)
}

// transition runs op for the transaction file against the state database
// and commits the writes unless --dry-run is set.
func transition(c *cli.Context, name string, op func(*htlc.Engine, ledger.Reader, *htlc.Transaction) htlc.Result) error {
	cfg, e, tx, err := loadTx(c)
	if err != nil {
		return err
	}
	store, err := ledger.OpenBoltStore(config.StatePath(cfg.DataDir))
	if err != nil {
		return err
	}
	defer store.Close()

	if err := htlc.Prepare(context.Background(), store, tx); err != nil {
		return err
	}
	res := op(e, store, tx)
	if !res.OK() {
		printErrors(res.Errors)
		return fmt.Errorf("%s %s failed", name, tx.ID)
	}
	if err := printAccounts(res.Writes, cfg.Decimals); err != nil {
		return err
	}
	if c.Bool("dry-run") {
		return nil
	}
	if err := res.Commit(store); err != nil {
		return err
	}
	log.Info("Committed HTLC transaction", "op", name, "id", tx.ID, "subtype", tx.SubType(), "writes", len(res.Writes))
	return nil
}

func printAccount(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := ledger.OpenBoltStore(config.StatePath(cfg.DataDir))
	if err != nil {
		return err
	}
	defer store.Close()

	if c.NArg() == 0 {
		var all []*ledger.Account
		if err := store.ForEach(func(a *ledger.Account) error {
			all = append(all, a)
			return nil
		}); err != nil {
			return err
		}
		return printAccounts(all, cfg.Decimals)
	}

	a, err := store.Get(c.Args().First())
	if err != nil {
		return err
	}
	return printAccounts([]*ledger.Account{a}, cfg.Decimals)
}

func creditAccount(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("credit needs 2 arguments (received: %d)", c.NArg())
	}
	addr := c.Args().Get(0)
	if !hashlock.IsAddress(addr) {
		return fmt.Errorf("%w: %s", hashlock.ErrInvalidAddress, addr)
	}
	amount, err := ledger.ParseAmount(c.Args().Get(1))
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	max, err := ledger.ParseAmount(cfg.MaxTransactionAmount)
	if err != nil {
		return err
	}
	store, err := ledger.OpenBoltStore(config.StatePath(cfg.DataDir))
	if err != nil {
		return err
	}
	defer store.Close()

	a, err := store.GetOrDefault(addr)
	if err != nil {
		return err
	}
	sum, overflow := new(uint256.Int).AddOverflow(a.Balance, amount)
	if overflow || sum.Gt(max) {
		return fmt.Errorf("balance of %s would exceed %s", addr, max.Dec())
	}
	a.Balance = sum
	if err := store.Set(a); err != nil {
		return err
	}
	log.Info("Credited account", "address", addr, "amount", amount.Dec())
	return printAccounts([]*ledger.Account{a}, cfg.Decimals)
}

// loadTx reads the transaction file named by the first argument.
func loadTx(c *cli.Context) (config.Config, *htlc.Engine, *htlc.Transaction, error) {
	if c.NArg() != 1 {
		return config.Config{}, nil, nil, fmt.Errorf("%s needs 1 argument (received: %d)", c.Command.Name, c.NArg())
	}
	cfg, err := loadConfig()
	if err != nil {
		return cfg, nil, nil, err
	}
	params, err := htlc.ParamsFromConfig(cfg)
	if err != nil {
		return cfg, nil, nil, err
	}
	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		return cfg, nil, nil, err
	}
	e := htlc.NewEngine(params)
	tx, err := e.ParseTransaction(data)
	if err != nil {
		return cfg, nil, nil, err
	}
	return cfg, e, tx, nil
}

func printAccounts(accounts []*ledger.Account, decimals int32) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 1, ' ', tabwriter.Debug)
	if _, err := fmt.Fprintln(tw, "\tAddress\tBalance\tContract\t"); err != nil {
		return err
	}
	for _, a := range accounts {
		state := "-"
		if a.Asset != nil {
			state = htlc.ContractState(a).String()
		}
		if _, err := fmt.Fprintf(tw, "\t%s\t%s\t%s\t\n", a.Address, ledger.FormatAmount(a.Balance, decimals), state); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printErrors(errs htlc.TransactionErrors) {
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "%s: %v\n", e.Kind, e)
	}
}
