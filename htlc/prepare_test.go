package htlc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockCacher struct {
	mock.Mock
}

func (m *mockCacher) Cache(ctx context.Context, addresses []string) error {
	return m.Called(ctx, addresses).Error(0)
}

func TestPrepare(t *testing.T) {
	tests := []struct {
		name string
		tx   func(*testing.T) *Transaction
		want []string
	}{
		{"lock", func(t *testing.T) *Transaction { return lockTx(t, "1000") }, []string{genesisAddress, contractAddr, recipientAddr}},
		{"unlock", func(t *testing.T) *Transaction { return unlockTx(t, recipientPubKey, secret) }, []string{recipientAddr, contractAddr}},
		{"refund", func(t *testing.T) *Transaction { return refundTx(t, genesisPubKey, secretDigest) }, []string{genesisAddress, contractAddr}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			m := new(mockCacher)
			m.On("Cache", ctx, tc.want).Return(nil).Once()

			assert.NoError(t, Prepare(ctx, m, tc.tx(t)))
			m.AssertExpectations(t)
		})
	}
}

func TestPrepareSkipsMalformedRecipient(t *testing.T) {
	asset := lockAsset("1000")
	asset["recipientPublicKey"] = "not-hex"
	tx := newTx(t, genesisPubKey, asset)
	assert.Equal(t, []string{genesisAddress, tx.ContractID()}, tx.Addresses())
}

func TestPrepareError(t *testing.T) {
	boom := errors.New("boom")
	m := new(mockCacher)
	m.On("Cache", mock.Anything, mock.Anything).Return(boom)

	err := Prepare(context.Background(), m, lockTx(t, "1000"))
	assert.ErrorIs(t, err, boom)
}
