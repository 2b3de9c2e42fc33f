package hashlock

import "errors"

var (
	// ErrInvalidPublicKey indicates a public key is not a valid hex string.
	ErrInvalidPublicKey = errors.New("hashlock: invalid public key")

	// ErrInvalidAddress indicates an address does not have the form <digits>L
	// or its numeric body does not fit in 64 bits.
	ErrInvalidAddress = errors.New("hashlock: invalid address")
)
