package htlc

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"

	"github.com/bitfsorg/libhtlc-go/hashlock"
	"github.com/bitfsorg/libhtlc-go/ledger"
)

// Engine validates HTLC transactions and computes their state transitions.
// It holds no mutable state and may be shared between goroutines; each
// Apply or Undo call must see a store no other transaction is writing.
type Engine struct {
	params  Params
	now     func() time.Time
	log     log.Logger
	schemas *schemaValidator
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the wall clock used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the logger; the default is the root logger tagged module=htlc.
func WithLogger(l log.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine returns an engine running with params.
func NewEngine(params Params, opts ...Option) *Engine {
	e := &Engine{
		params:  params.clone(),
		now:     time.Now,
		log:     log.New("module", "htlc"),
		schemas: newSchemaValidator(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Params returns a copy of the engine parameters.
func (e *Engine) Params() Params { return e.params.clone() }

// Now returns the current network-epoch time in seconds.
func (e *Engine) Now() int64 {
	return hashlock.EpochSeconds(e.params.Epoch, e.now())
}

// ParseTransaction decodes a JSON transaction, charging the engine's lock fee.
func (e *Engine) ParseTransaction(data []byte) (*Transaction, error) {
	return ParseTransaction(data, e.params.Fee)
}

// Result is the outcome of Apply or Undo. Writes holds the accounts to
// persist and is nil whenever Errors is non-empty.
type Result struct {
	Writes []*ledger.Account
	Errors TransactionErrors
}

// OK reports whether the transition succeeded.
func (r Result) OK() bool { return len(r.Errors) == 0 }

// Commit persists Writes to store. It refuses a failed result.
func (r Result) Commit(store ledger.Store) error {
	if !r.OK() {
		return r.Errors
	}
	return ledger.Commit(store, r.Writes)
}

// Apply computes the forward transition of tx against store. store is only
// read; the resulting writes are returned for the caller to commit.
func (e *Engine) Apply(store ledger.Reader, tx *Transaction) Result {
	if tx.Asset == nil {
		return Result{Errors: TransactionErrors{noSubTypeError(tx)}}
	}

	st := ledger.NewOverlay(store)
	errs := e.applyFee(st, tx)
	switch a := tx.Asset.(type) {
	case *LockAsset:
		errs = append(errs, e.applyLock(st, tx, a)...)
	case *UnlockAsset:
		errs = append(errs, e.applyUnlock(st, tx, a)...)
	case *RefundAsset:
		errs = append(errs, e.applyRefund(st, tx, a)...)
	}
	return e.result("apply", tx, st, errs)
}

// Undo computes the exact inverse of Apply for a transaction that was
// applied to store, for rollback.
func (e *Engine) Undo(store ledger.Reader, tx *Transaction) Result {
	if tx.Asset == nil {
		return Result{Errors: TransactionErrors{noSubTypeError(tx)}}
	}

	st := ledger.NewOverlay(store)
	errs := e.undoFee(st, tx)
	switch a := tx.Asset.(type) {
	case *LockAsset:
		errs = append(errs, e.undoLock(st, tx, a)...)
	case *UnlockAsset:
		errs = append(errs, e.undoUnlock(st, tx, a)...)
	case *RefundAsset:
		errs = append(errs, e.undoRefund(st, tx, a)...)
	}
	return e.result("undo", tx, st, errs)
}

func (e *Engine) result(op string, tx *Transaction, st *ledger.Overlay, errs TransactionErrors) Result {
	if len(errs) > 0 {
		e.log.Debug("HTLC transition rejected", "op", op, "id", tx.ID, "subtype", tx.SubType(), "errors", len(errs), "first", errs[0].Message)
		return Result{Errors: errs}
	}
	writes := st.Writes()
	e.log.Debug("HTLC transition staged", "op", op, "id", tx.ID, "subtype", tx.SubType(), "contract", tx.ContractID(), "writes", len(writes))
	return Result{Writes: writes}
}

// ---------------------------------------------------------------------------
// Envelope fee. The sender pays the fee before the asset is applied and gets
// it back on undo. Unlock and refund carry a zero fee.
// ---------------------------------------------------------------------------

func (e *Engine) applyFee(st ledger.Store, tx *Transaction) TransactionErrors {
	sender, err := st.GetOrDefault(tx.SenderID)
	if err != nil {
		return TransactionErrors{storeError(tx, ".senderId", err)}
	}

	changed := false
	if sender.PublicKey == "" {
		sender.PublicKey = tx.SenderPublicKey
		changed = true
	}
	if tx.Fee != nil && !tx.Fee.IsZero() {
		if terr := e.debit(tx, sender, tx.Fee, ".fee"); terr != nil {
			return TransactionErrors{terr}
		}
		changed = true
	}
	if !changed {
		return nil
	}
	if err := st.Set(sender); err != nil {
		return TransactionErrors{storeError(tx, ".senderId", err)}
	}
	return nil
}

func (e *Engine) undoFee(st ledger.Store, tx *Transaction) TransactionErrors {
	if tx.Fee == nil || tx.Fee.IsZero() {
		return nil
	}
	sender, err := st.Get(tx.SenderID)
	if err != nil {
		return TransactionErrors{storeError(tx, ".senderId", err)}
	}
	var errs TransactionErrors
	if terr := e.credit(tx, sender, tx.Fee, ".fee"); terr != nil {
		errs = append(errs, terr)
	}
	if err := st.Set(sender); err != nil {
		errs = append(errs, storeError(tx, ".senderId", err))
	}
	return errs
}

// ---------------------------------------------------------------------------
// Balance arithmetic. Debits are checked for sufficiency before they are
// made; credits are checked against the maximum transaction amount after.
// ---------------------------------------------------------------------------

// debit subtracts amount from account, or leaves it untouched and reports
// insufficient balance.
func (e *Engine) debit(tx *Transaction, account *ledger.Account, amount *uint256.Int, path string) *TransactionError {
	if account.Balance == nil {
		account.Balance = new(uint256.Int)
	}
	if account.Balance.Lt(amount) {
		return &TransactionError{
			Kind:     KindSemantic,
			Err:      ErrInsufficientBalance,
			ID:       tx.ID,
			DataPath: path,
			Message: fmt.Sprintf("Account does not have enough balance: %s, balance: %s",
				account.Address, ledger.FormatAmount(account.Balance, e.params.Decimals)),
			Actual:   account.Balance.Dec(),
			Expected: ">= " + amount.Dec(),
		}
	}
	account.Balance = new(uint256.Int).Sub(account.Balance, amount)
	return nil
}

// credit adds amount to account. A result above the maximum transaction
// amount is reported; the account is updated either way.
func (e *Engine) credit(tx *Transaction, account *ledger.Account, amount *uint256.Int, path string) *TransactionError {
	if account.Balance == nil {
		account.Balance = new(uint256.Int)
	}
	sum, overflow := new(uint256.Int).AddOverflow(account.Balance, amount)
	account.Balance = sum
	if overflow || sum.Gt(e.params.MaxTransactionAmount) {
		terr := semanticError(ErrMaxAmountReached, tx.ID, path, "Max transaction amount reached")
		terr.Actual = sum.Dec()
		terr.Expected = "<= " + e.params.MaxTransactionAmount.Dec()
		return terr
	}
	return nil
}

func noSubTypeError(tx *Transaction) *TransactionError {
	return &TransactionError{
		Kind:     KindClassification,
		Err:      ErrNoSubType,
		ID:       tx.ID,
		DataPath: ".asset",
		Message:  "Couldn't match a sub type.",
	}
}

func storeError(tx *Transaction, path string, err error) *TransactionError {
	return &TransactionError{
		Kind:     KindSemantic,
		Err:      ErrAccountUnavailable,
		ID:       tx.ID,
		DataPath: path,
		Message:  err.Error(),
	}
}

// contractParticipant reports whether publicKey is either side of the contract.
func contractParticipant(c *ledger.ContractAsset, publicKey string) bool {
	return c.SenderPublicKey == publicKey || c.RecipientPublicKey == publicKey
}
