package ledger

import "github.com/holiman/uint256"

// Account is a ledger entry. Contracts are accounts whose Asset is set.
type Account struct {
	Address   string
	PublicKey string // empty until the account is first used as a sender
	Balance   *uint256.Int
	Asset     *ContractAsset // nil is the empty asset extension
}

// ContractAsset is the asset extension carried by an HTLC contract account.
type ContractAsset struct {
	SenderPublicKey    string
	RecipientPublicKey string
	Amount             *uint256.Int
	Time               int64  // absolute expiry, network-epoch seconds
	Hash               string // lock `data`: the secret digest
	Type               string // hash scheme
	Length             int    // expected secret length
	Key                string // revealed secret, set once redeemed
	TimedOut           bool   // set once refunded
}

// NewAccount returns an empty account at address.
func NewAccount(address string) *Account {
	return &Account{Address: address, Balance: new(uint256.Int)}
}

// Exists reports whether the account has ever been activated: it has a
// public key, a positive balance or a non-empty asset extension.
func (a *Account) Exists() bool {
	if a == nil {
		return false
	}
	return a.PublicKey != "" || (a.Balance != nil && !a.Balance.IsZero()) || a.Asset != nil
}

// Clone returns a deep copy of the account.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	c.Balance = cloneInt(a.Balance)
	c.Asset = a.Asset.Clone()
	return &c
}

// Clone returns a deep copy of the contract asset.
func (c *ContractAsset) Clone() *ContractAsset {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Amount = cloneInt(c.Amount)
	return &cp
}

// Resolved reports whether the contract was redeemed or refunded.
func (c *ContractAsset) Resolved() bool {
	return c != nil && (c.Key != "" || c.TimedOut)
}

func cloneInt(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return new(uint256.Int).Set(v)
}
