package htlc

import (
	"errors"
	"strings"
)

var (
	// ErrNoSubType indicates the asset shape matches none of lock, unlock or refund.
	ErrNoSubType = errors.New("htlc: no sub type matched")

	// ErrSchema indicates an asset field violates its structural schema.
	ErrSchema = errors.New("htlc: schema violation")

	// ErrInvalidTransaction indicates a raw transaction could not be decoded.
	ErrInvalidTransaction = errors.New("htlc: invalid transaction")

	// ErrContractIDMismatch indicates contractId is not derived from the lock fields.
	ErrContractIDMismatch = errors.New("htlc: contract id mismatch")

	// ErrLockTimePassed indicates a pending lock expires too soon.
	ErrLockTimePassed = errors.New("htlc: lock time already passed")

	// ErrInvalidAmount indicates the lock amount is not a valid transfer amount.
	ErrInvalidAmount = errors.New("htlc: invalid amount")

	// ErrMissingRecipient indicates the lock names no recipient public key.
	ErrMissingRecipient = errors.New("htlc: missing recipient public key")

	// ErrInsufficientBalance indicates an account cannot cover a debit.
	ErrInsufficientBalance = errors.New("htlc: insufficient balance")

	// ErrMaxAmountReached indicates a credit would exceed the maximum transaction amount.
	ErrMaxAmountReached = errors.New("htlc: max transaction amount reached")

	// ErrContractExists indicates a lock targets an already active contract id.
	ErrContractExists = errors.New("htlc: contract already exists")

	// ErrContractNotFound indicates the contract account is not active.
	ErrContractNotFound = errors.New("htlc: contract not found")

	// ErrNotParticipant indicates the sender is neither side of the contract.
	ErrNotParticipant = errors.New("htlc: sender is not a participant")

	// ErrAlreadyResolved indicates the contract was already redeemed or refunded.
	ErrAlreadyResolved = errors.New("htlc: contract already resolved")

	// ErrTimedOut indicates a redemption after the contract expiry.
	ErrTimedOut = errors.New("htlc: contract timed out")

	// ErrNotTimedOut indicates a refund before the contract expiry.
	ErrNotTimedOut = errors.New("htlc: contract not yet timed out")

	// ErrWrongSecret indicates the revealed secret does not hash to the contract hash.
	ErrWrongSecret = errors.New("htlc: wrong secret")

	// ErrDataMismatch indicates refund data differs from the lock data.
	ErrDataMismatch = errors.New("htlc: data mismatch")

	// ErrAccountUnavailable indicates the state store failed to return an account.
	ErrAccountUnavailable = errors.New("htlc: account unavailable")
)

// Kind classifies a TransactionError.
type Kind uint8

const (
	// KindClassification is reported when no sub type matched.
	KindClassification Kind = iota + 1
	// KindStructural is reported for schema violations.
	KindStructural
	// KindSemantic is reported for rule violations that need context or state.
	KindSemantic
)

func (k Kind) String() string {
	switch k {
	case KindClassification:
		return "classification"
	case KindStructural:
		return "structural"
	case KindSemantic:
		return "semantic"
	default:
		return "unknown"
	}
}

// TransactionError is a failed check attached to a field path of a transaction.
type TransactionError struct {
	Kind     Kind
	Err      error // sentinel, for errors.Is
	Message  string
	ID       string // transaction id
	DataPath string // e.g. ".asset.secret"
	Actual   string
	Expected string
}

func (e *TransactionError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.DataPath != "" {
		b.WriteString(" (")
		b.WriteString(e.DataPath)
		b.WriteString(")")
	}
	if e.Actual != "" || e.Expected != "" {
		b.WriteString(": got ")
		b.WriteString(e.Actual)
		if e.Expected != "" {
			b.WriteString(", want ")
			b.WriteString(e.Expected)
		}
	}
	return b.String()
}

func (e *TransactionError) Unwrap() error { return e.Err }

// TransactionErrors collects every failed check of one validate, apply or
// undo call. An empty list means success.
type TransactionErrors []*TransactionError

func (es TransactionErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return "htlc: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (es TransactionErrors) Unwrap() []error {
	out := make([]error, len(es))
	for i, e := range es {
		out[i] = e
	}
	return out
}

// Err returns nil for an empty list and the list itself otherwise.
func (es TransactionErrors) Err() error {
	if len(es) == 0 {
		return nil
	}
	return es
}

func semanticError(err error, id, path, msg string) *TransactionError {
	return &TransactionError{Kind: KindSemantic, Err: err, ID: id, DataPath: path, Message: msg}
}
