package htlc

import (
	"context"

	"github.com/bitfsorg/libhtlc-go/hashlock"
	"github.com/bitfsorg/libhtlc-go/ledger"
)

// Addresses returns the accounts Apply and Undo may touch: the sender, the
// contract and, for a lock with a well-formed recipient key, the recipient.
func (tx *Transaction) Addresses() []string {
	addrs := []string{tx.SenderID}
	if id := tx.ContractID(); id != "" {
		addrs = append(addrs, id)
	}
	if lock, ok := tx.Asset.(*LockAsset); ok && lock.RecipientPublicKey != "" {
		if addr, err := hashlock.AddressFromPublicKey(lock.RecipientPublicKey); err == nil {
			addrs = append(addrs, addr)
		}
	}
	return addrs
}

// Prepare asks cacher to prefetch every account tx touches.
func Prepare(ctx context.Context, cacher ledger.Cacher, tx *Transaction) error {
	return cacher.Cache(ctx, tx.Addresses())
}
