package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Reader reads accounts. Returned accounts are copies owned by the caller.
type Reader interface {
	// Get returns the account at address, or ErrAccountNotFound.
	Get(address string) (*Account, error)

	// GetOrDefault returns the account at address, or an empty account.
	GetOrDefault(address string) (*Account, error)
}

// Store reads and writes accounts. A Get after a Set of the same address
// must observe the write.
type Store interface {
	Reader

	// Set stores account under account.Address.
	Set(account *Account) error
}

// Cacher is implemented by stores that can prefetch accounts a transaction
// is about to touch.
type Cacher interface {
	Cache(ctx context.Context, addresses []string) error
}

// Batcher is implemented by stores that can write several accounts
// atomically. Commit uses it when available.
type Batcher interface {
	SetAll(accounts []*Account) error
}

// MemStore is an in-memory implementation of Store.
type MemStore struct {
	mu       sync.RWMutex
	accounts map[string]*Account
}

// Compile-time interface checks.
var (
	_ Store   = (*MemStore)(nil)
	_ Cacher  = (*MemStore)(nil)
	_ Batcher = (*MemStore)(nil)
)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{accounts: make(map[string]*Account)}
}

// Get returns a copy of the account at address.
func (s *MemStore) Get(address string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[address]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, address)
	}
	return a.Clone(), nil
}

// GetOrDefault returns a copy of the account at address, or an empty account.
func (s *MemStore) GetOrDefault(address string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if a, ok := s.accounts[address]; ok {
		return a.Clone(), nil
	}
	return NewAccount(address), nil
}

// Set stores a copy of account.
func (s *MemStore) Set(account *Account) error {
	if account == nil {
		return fmt.Errorf("%w: account", ErrNilParam)
	}
	if account.Address == "" {
		return ErrEmptyAddress
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.Address] = account.Clone()
	return nil
}

// SetAll stores copies of accounts under one lock. Nothing is stored if any
// account is invalid.
func (s *MemStore) SetAll(accounts []*Account) error {
	for _, account := range accounts {
		if account == nil {
			return fmt.Errorf("%w: account", ErrNilParam)
		}
		if account.Address == "" {
			return ErrEmptyAddress
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, account := range accounts {
		s.accounts[account.Address] = account.Clone()
	}
	return nil
}

// Cache is a no-op: every account is already in memory.
func (s *MemStore) Cache(ctx context.Context, _ []string) error {
	return ctx.Err()
}

// Addresses returns the stored addresses in lexical order.
func (s *MemStore) Addresses() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.accounts))
	for addr := range s.accounts {
		out = append(out, addr)
	}
	sort.Strings(out)
	return out
}
