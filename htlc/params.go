package htlc

import (
	"fmt"
	"time"

	"github.com/holiman/uint256"

	"github.com/bitfsorg/libhtlc-go/config"
	"github.com/bitfsorg/libhtlc-go/ledger"
)

// TransactionType is the ledger transaction type number of HTLC transactions.
const TransactionType = 199

// Params are the ledger constants the engine runs with. They are fixed for
// the lifetime of an Engine.
type Params struct {
	Fee                  *uint256.Int // lock fee; unlock and refund are free
	MaxTransactionAmount *uint256.Int // upper bound on amounts and balances
	MinLockTime          int64        // seconds a pending lock must extend past now
	Epoch                time.Time    // network epoch for all asset times
	Decimals             int32        // fixed-point decimals for display
}

// DefaultParams returns the parameters of DefaultConfig.
func DefaultParams() Params {
	p, err := ParamsFromConfig(config.DefaultConfig())
	if err != nil {
		panic(err)
	}
	return p
}

// ParamsFromConfig validates cfg and converts it to Params.
func ParamsFromConfig(cfg config.Config) (Params, error) {
	if err := config.ValidateConfig(cfg); err != nil {
		return Params{}, err
	}
	fee, err := ledger.ParseAmount(cfg.Fee)
	if err != nil {
		return Params{}, fmt.Errorf("%w: %w", config.ErrInvalidFee, err)
	}
	max, err := ledger.ParseAmount(cfg.MaxTransactionAmount)
	if err != nil {
		return Params{}, fmt.Errorf("%w: %w", config.ErrInvalidMaxAmount, err)
	}
	return Params{
		Fee:                  fee,
		MaxTransactionAmount: max,
		MinLockTime:          cfg.MinLockTime,
		Epoch:                cfg.Epoch,
		Decimals:             cfg.Decimals,
	}, nil
}

func (p Params) clone() Params {
	p.Fee = new(uint256.Int).Set(p.Fee)
	p.MaxTransactionAmount = new(uint256.Int).Set(p.MaxTransactionAmount)
	return p
}
