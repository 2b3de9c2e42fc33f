package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContract(address string) *Account {
	return &Account{
		Address:   address,
		PublicKey: "00010909aabbccdd",
		Balance:   uint256.NewInt(500),
		Asset: &ContractAsset{
			SenderPublicKey:    "aa",
			RecipientPublicKey: "bb",
			Amount:             uint256.NewInt(500),
			Time:               1234,
			Hash:               "deadbeef",
			Type:               "OP_HASH256",
			Length:             32,
		},
	}
}

// ---------------------------------------------------------------------------
// Account
// ---------------------------------------------------------------------------

func TestAccountExists(t *testing.T) {
	assert.False(t, NewAccount("1L").Exists())
	assert.False(t, (*Account)(nil).Exists())
	assert.True(t, (&Account{Address: "1L", PublicKey: "ab", Balance: new(uint256.Int)}).Exists())
	assert.True(t, (&Account{Address: "1L", Balance: uint256.NewInt(1)}).Exists())
	assert.True(t, (&Account{Address: "1L", Balance: new(uint256.Int), Asset: &ContractAsset{}}).Exists())
}

func TestAccountCloneIsDeep(t *testing.T) {
	a := testContract("1L")
	c := a.Clone()
	c.Balance.SetUint64(1)
	c.Asset.Amount.SetUint64(2)
	c.Asset.Key = "secret"

	assert.Equal(t, uint64(500), a.Balance.Uint64())
	assert.Equal(t, uint64(500), a.Asset.Amount.Uint64())
	assert.Empty(t, a.Asset.Key)
}

func TestContractAssetResolved(t *testing.T) {
	var c *ContractAsset
	assert.False(t, c.Resolved())
	assert.False(t, (&ContractAsset{}).Resolved())
	assert.True(t, (&ContractAsset{Key: "k"}).Resolved())
	assert.True(t, (&ContractAsset{TimedOut: true}).Resolved())
}

// ---------------------------------------------------------------------------
// MemStore
// ---------------------------------------------------------------------------

func TestMemStore(t *testing.T) {
	s := NewMemStore()

	_, err := s.Get("1L")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	def, err := s.GetOrDefault("1L")
	require.NoError(t, err)
	assert.Equal(t, "1L", def.Address)
	assert.False(t, def.Exists())

	require.NoError(t, s.Set(testContract("1L")))
	got, err := s.Get("1L")
	require.NoError(t, err)
	assert.Equal(t, testContract("1L"), got)

	// Mutating a returned account does not leak into the store.
	got.Balance.SetUint64(0)
	again, err := s.Get("1L")
	require.NoError(t, err)
	assert.Equal(t, uint64(500), again.Balance.Uint64())

	assert.ErrorIs(t, s.Set(nil), ErrNilParam)
	assert.ErrorIs(t, s.Set(&Account{}), ErrEmptyAddress)
	assert.Equal(t, []string{"1L"}, s.Addresses())
}

func TestMemStoreCacheHonoursContext(t *testing.T) {
	s := NewMemStore()
	require.NoError(t, s.Cache(context.Background(), []string{"1L"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Cache(ctx, []string{"1L"}), context.Canceled)
}

// ---------------------------------------------------------------------------
// Overlay
// ---------------------------------------------------------------------------

func TestOverlayReadYourWrites(t *testing.T) {
	base := NewMemStore()
	require.NoError(t, base.Set(&Account{Address: "1L", Balance: uint256.NewInt(10)}))

	o := NewOverlay(base)
	a, err := o.Get("1L")
	require.NoError(t, err)
	a.Balance.SetUint64(7)
	require.NoError(t, o.Set(a))
	require.NoError(t, o.Set(testContract("2L")))

	got, err := o.Get("1L")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), got.Balance.Uint64())

	c, err := o.GetOrDefault("2L")
	require.NoError(t, err)
	assert.True(t, c.Exists())

	// Base store untouched until commit.
	b, err := base.Get("1L")
	require.NoError(t, err)
	assert.Equal(t, uint64(10), b.Balance.Uint64())
	_, err = base.Get("2L")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	writes := o.Writes()
	require.Len(t, writes, 2)
	assert.Equal(t, "1L", writes[0].Address)
	assert.Equal(t, "2L", writes[1].Address)

	require.NoError(t, Commit(base, writes))
	b, err = base.Get("1L")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), b.Balance.Uint64())
}

func TestOverlayRewriteKeepsFirstOrder(t *testing.T) {
	o := NewOverlay(NewMemStore())
	require.NoError(t, o.Set(NewAccount("2L")))
	require.NoError(t, o.Set(NewAccount("1L")))
	require.NoError(t, o.Set(&Account{Address: "2L", Balance: uint256.NewInt(3)}))

	writes := o.Writes()
	require.Len(t, writes, 2)
	assert.Equal(t, "2L", writes[0].Address)
	assert.Equal(t, uint64(3), writes[0].Balance.Uint64())
}

func TestMemStoreSetAllIsAllOrNothing(t *testing.T) {
	s := NewMemStore()
	err := s.SetAll([]*Account{testContract("1L"), {Balance: uint256.NewInt(1)}})
	assert.ErrorIs(t, err, ErrEmptyAddress)
	assert.Empty(t, s.Addresses())

	require.NoError(t, s.SetAll([]*Account{testContract("1L"), NewAccount("2L")}))
	assert.Equal(t, []string{"1L", "2L"}, s.Addresses())
}

// failingStore fails every Set after the first n.
type failingStore struct {
	Store
	n int
}

func (f *failingStore) Set(a *Account) error {
	if f.n == 0 {
		return errors.New("disk full")
	}
	f.n--
	return f.Store.Set(a)
}

func TestCommitUsesBatch(t *testing.T) {
	base := NewMemStore()
	writes := []*Account{{Address: "1L", Balance: uint256.NewInt(1)}, {Address: ""}}

	// MemStore batches: the bad second write keeps the first out too.
	assert.ErrorIs(t, Commit(base, writes), ErrEmptyAddress)
	assert.Empty(t, base.Addresses())

	// A store without SetAll gets ordered writes up to the failure.
	seq := &failingStore{Store: base, n: 1}
	err := Commit(seq, []*Account{NewAccount("1L"), NewAccount("2L")})
	assert.ErrorContains(t, err, "commit 2L: disk full")
	assert.Equal(t, []string{"1L"}, base.Addresses())
}
