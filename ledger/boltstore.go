package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"sync"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"go.etcd.io/bbolt"
)

var bucketAccounts = []byte("accounts")

// BoltStore persists accounts in a bbolt database. Accounts named in Cache
// are kept in memory until the next Cache call.
type BoltStore struct {
	db *bbolt.DB

	mu    sync.Mutex
	cache map[string]*Account
}

// Compile-time interface checks.
var (
	_ Store   = (*BoltStore)(nil)
	_ Cacher  = (*BoltStore)(nil)
	_ Batcher = (*BoltStore)(nil)
)

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("ledger: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("ledger: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketAccounts); err != nil {
			return fmt.Errorf("boltstore: create bucket %q: %w", bucketAccounts, err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ledger: create buckets: %w", err)
	}

	return &BoltStore{db: db, cache: make(map[string]*Account)}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// Get returns the account at address.
func (s *BoltStore) Get(address string) (*Account, error) {
	s.mu.Lock()
	if a, ok := s.cache[address]; ok {
		s.mu.Unlock()
		return a.Clone(), nil
	}
	s.mu.Unlock()

	return s.load(address)
}

// GetOrDefault returns the account at address, or an empty account.
func (s *BoltStore) GetOrDefault(address string) (*Account, error) {
	a, err := s.Get(address)
	if errors.Is(err, ErrAccountNotFound) {
		return NewAccount(address), nil
	}
	return a, err
}

// Set persists account and refreshes the cached copy, if any.
func (s *BoltStore) Set(account *Account) error {
	return s.SetAll([]*Account{account})
}

// SetAll persists accounts in a single bbolt transaction: either every
// account is written or none is.
func (s *BoltStore) SetAll(accounts []*Account) error {
	encoded := make([][]byte, len(accounts))
	for i, account := range accounts {
		if account == nil {
			return fmt.Errorf("%w: account", ErrNilParam)
		}
		if account.Address == "" {
			return ErrEmptyAddress
		}
		data, err := rlp.EncodeToBytes(toRecord(account))
		if err != nil {
			return fmt.Errorf("encode account %s: %w", account.Address, err)
		}
		encoded[i] = data
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketAccounts)
		for i, account := range accounts {
			if err := b.Put([]byte(account.Address), encoded[i]); err != nil {
				return fmt.Errorf("boltstore: put account %s: %w", account.Address, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	for _, account := range accounts {
		if _, ok := s.cache[account.Address]; ok {
			s.cache[account.Address] = account.Clone()
		}
	}
	s.mu.Unlock()
	return nil
}

// Cache loads the named accounts into memory, replacing the previous cache.
// Addresses without an account are skipped.
func (s *BoltStore) Cache(ctx context.Context, addresses []string) error {
	loaded := make(map[string]*Account, len(addresses))
	for _, addr := range addresses {
		if err := ctx.Err(); err != nil {
			return err
		}
		a, err := s.load(addr)
		if errors.Is(err, ErrAccountNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		loaded[addr] = a
	}

	s.mu.Lock()
	s.cache = loaded
	s.mu.Unlock()
	return nil
}

// ForEach calls fn for every stored account in key order.
func (s *BoltStore) ForEach(fn func(*Account) error) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketAccounts).ForEach(func(_, v []byte) error {
			a, err := decodeAccount(v)
			if err != nil {
				return err
			}
			return fn(a)
		})
	})
}

func (s *BoltStore) load(address string) (*Account, error) {
	var account *Account
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketAccounts).Get([]byte(address))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrAccountNotFound, address)
		}
		a, err := decodeAccount(data)
		if err != nil {
			return err
		}
		account = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// ---------------------------------------------------------------------------
// RLP records. rlp has no signed integers, so times are stored as uint64.
// ---------------------------------------------------------------------------

type accountRecord struct {
	Address   string
	PublicKey string
	Balance   *big.Int
	Asset     *assetRecord `rlp:"nil"`
}

type assetRecord struct {
	SenderPublicKey    string
	RecipientPublicKey string
	Amount             *big.Int
	Time               uint64
	Hash               string
	Type               string
	Length             uint64
	Key                string
	TimedOut           bool
}

func toRecord(a *Account) *accountRecord {
	rec := &accountRecord{
		Address:   a.Address,
		PublicKey: a.PublicKey,
		Balance:   cloneInt(a.Balance).ToBig(),
	}
	if c := a.Asset; c != nil {
		rec.Asset = &assetRecord{
			SenderPublicKey:    c.SenderPublicKey,
			RecipientPublicKey: c.RecipientPublicKey,
			Amount:             cloneInt(c.Amount).ToBig(),
			Time:               uint64(c.Time),
			Hash:               c.Hash,
			Type:               c.Type,
			Length:             uint64(c.Length),
			Key:                c.Key,
			TimedOut:           c.TimedOut,
		}
	}
	return rec
}

func decodeAccount(data []byte) (*Account, error) {
	var rec accountRecord
	if err := rlp.DecodeBytes(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptRecord, err)
	}
	balance, overflow := uint256.FromBig(rec.Balance)
	if overflow {
		return nil, fmt.Errorf("%w: balance overflow", ErrCorruptRecord)
	}
	a := &Account{Address: rec.Address, PublicKey: rec.PublicKey, Balance: balance}
	if r := rec.Asset; r != nil {
		amount, overflow := uint256.FromBig(r.Amount)
		if overflow {
			return nil, fmt.Errorf("%w: amount overflow", ErrCorruptRecord)
		}
		a.Asset = &ContractAsset{
			SenderPublicKey:    r.SenderPublicKey,
			RecipientPublicKey: r.RecipientPublicKey,
			Amount:             amount,
			Time:               int64(r.Time),
			Hash:               r.Hash,
			Type:               r.Type,
			Length:             int(r.Length),
			Key:                r.Key,
			TimedOut:           r.TimedOut,
		}
	}
	return a, nil
}
