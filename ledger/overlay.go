package ledger

import "fmt"

// Overlay stages writes on top of a Reader without touching it. Reads see
// staged writes first, so a transaction observes its own updates. The
// staged set is collected with Writes and applied with Commit, or dropped by
// discarding the overlay.
type Overlay struct {
	base   Reader
	staged map[string]*Account
	order  []string
}

var _ Store = (*Overlay)(nil)

// NewOverlay returns an empty overlay over base.
func NewOverlay(base Reader) *Overlay {
	return &Overlay{base: base, staged: make(map[string]*Account)}
}

// Get returns the staged account at address, falling back to the base reader.
func (o *Overlay) Get(address string) (*Account, error) {
	if a, ok := o.staged[address]; ok {
		return a.Clone(), nil
	}
	return o.base.Get(address)
}

// GetOrDefault is like Get but returns an empty account when none exists.
func (o *Overlay) GetOrDefault(address string) (*Account, error) {
	if a, ok := o.staged[address]; ok {
		return a.Clone(), nil
	}
	return o.base.GetOrDefault(address)
}

// Set stages a copy of account.
func (o *Overlay) Set(account *Account) error {
	if account == nil {
		return fmt.Errorf("%w: account", ErrNilParam)
	}
	if account.Address == "" {
		return ErrEmptyAddress
	}
	if _, ok := o.staged[account.Address]; !ok {
		o.order = append(o.order, account.Address)
	}
	o.staged[account.Address] = account.Clone()
	return nil
}

// Writes returns the staged accounts in order of first write.
func (o *Overlay) Writes() []*Account {
	out := make([]*Account, 0, len(o.order))
	for _, addr := range o.order {
		out = append(out, o.staged[addr].Clone())
	}
	return out
}

// Commit writes accounts to store. A store that implements Batcher gets
// them in one atomic batch; otherwise they are written in order, stopping at
// the first error.
func Commit(store Store, accounts []*Account) error {
	if b, ok := store.(Batcher); ok {
		if err := b.SetAll(accounts); err != nil {
			return fmt.Errorf("ledger: commit: %w", err)
		}
		return nil
	}
	for _, a := range accounts {
		if err := store.Set(a); err != nil {
			return fmt.Errorf("ledger: commit %s: %w", a.Address, err)
		}
	}
	return nil
}
