package htlc

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/libhtlc-go/config"
	"github.com/bitfsorg/libhtlc-go/hashlock"
	"github.com/bitfsorg/libhtlc-go/ledger"
)

const (
	genesisPubKey   = "c094ebee7ec0c50ebee32918655e089f6e1a604b83bcaa760293c61e0f18ab6f"
	genesisAddress  = "16313739661670634666L"
	recipientPubKey = "5c554d43301786aec29a09b13b485176e81d1532347a351aeafe018c199fd7ca"
	recipientAddr   = "11237980039345381032L"
	strangerPubKey  = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

	secret       = "secretKey"
	secretDigest = "b23813da7f066be253e3bdfa41f87e010b585ff970ff54e428fdcc34b0ad1e50"
	lockTime     = 100000000
	contractAddr = "16279134014635100336L"

	beforeExpiry = lockTime - 500000
	afterExpiry  = lockTime + 1
)

var (
	lockFee        = uint256.NewInt(20000000)
	genesisBalance = uint256.NewInt(1000000000)
)

// newEngine returns an engine whose clock reads sec seconds past the epoch.
func newEngine(sec int64) *Engine {
	return NewEngine(DefaultParams(), WithClock(func() time.Time {
		return config.DefaultEpoch.Add(time.Duration(sec) * time.Second)
	}))
}

// fundedStore returns a store where the genesis account holds genesisBalance.
func fundedStore(t *testing.T) *ledger.MemStore {
	t.Helper()
	st := ledger.NewMemStore()
	require.NoError(t, st.Set(&ledger.Account{
		Address: genesisAddress,
		Balance: new(uint256.Int).Set(genesisBalance),
	}))
	return st
}

func lockAsset(amount string) map[string]any {
	return map[string]any{
		"amount":             amount,
		"recipientPublicKey": recipientPubKey,
		"type":               hashlock.OpHash256,
		"time":               json.Number("100000000"),
		"data":               secretDigest,
		"secretLength":       json.Number("32"),
	}
}

func newTx(t *testing.T, sender string, asset map[string]any) *Transaction {
	t.Helper()
	tx, err := NewTransaction(&RawTransaction{
		Type:            TransactionType,
		Timestamp:       1000,
		SenderPublicKey: sender,
		Asset:           asset,
	}, lockFee)
	require.NoError(t, err)
	return tx
}

func lockTx(t *testing.T, amount string) *Transaction {
	return newTx(t, genesisPubKey, lockAsset(amount))
}

func unlockTx(t *testing.T, sender, key string) *Transaction {
	return newTx(t, sender, map[string]any{"contractId": contractAddr, "secret": key})
}

func refundTx(t *testing.T, sender, data string) *Transaction {
	return newTx(t, sender, map[string]any{"contractId": contractAddr, "data": data})
}

// mustApply applies tx and commits it to st.
func mustApply(t *testing.T, e *Engine, st ledger.Store, tx *Transaction) {
	t.Helper()
	res := e.Apply(st, tx)
	require.True(t, res.OK(), "apply: %v", res.Errors)
	require.NoError(t, res.Commit(st))
}

func balance(t *testing.T, st ledger.Reader, addr string) uint64 {
	t.Helper()
	a, err := st.GetOrDefault(addr)
	require.NoError(t, err)
	return a.Balance.Uint64()
}

// snapshot copies every account in st.
func snapshot(t *testing.T, st *ledger.MemStore) map[string]*ledger.Account {
	t.Helper()
	out := make(map[string]*ledger.Account)
	for _, addr := range st.Addresses() {
		a, err := st.Get(addr)
		require.NoError(t, err)
		out[addr] = a
	}
	return out
}
