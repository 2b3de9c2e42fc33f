package ledger

import "errors"

var (
	// ErrAccountNotFound indicates the address has no account in the store.
	ErrAccountNotFound = errors.New("ledger: account not found")

	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errors.New("ledger: required parameter is nil")

	// ErrEmptyAddress indicates an account was given without an address.
	ErrEmptyAddress = errors.New("ledger: empty address")

	// ErrInvalidAmount indicates an amount is not a non-negative decimal integer string.
	ErrInvalidAmount = errors.New("ledger: invalid amount")

	// ErrCorruptRecord indicates a persisted account could not be decoded.
	ErrCorruptRecord = errors.New("ledger: corrupt account record")
)
