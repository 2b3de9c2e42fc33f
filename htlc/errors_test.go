package htlc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionErrorFormat(t *testing.T) {
	e := &TransactionError{
		Kind:     KindSemantic,
		Err:      ErrWrongSecret,
		Message:  "Wrong secret.",
		DataPath: ".asset.secret",
		Actual:   "a",
		Expected: "b",
	}
	assert.Equal(t, "Wrong secret. (.asset.secret): got a, want b", e.Error())
	assert.ErrorIs(t, e, ErrWrongSecret)
	assert.Equal(t, "semantic", e.Kind.String())

	bare := &TransactionError{Kind: KindClassification, Err: ErrNoSubType, Message: "Couldn't match a sub type."}
	assert.Equal(t, "Couldn't match a sub type.", bare.Error())
}

func TestTransactionErrorsList(t *testing.T) {
	var none TransactionErrors
	assert.NoError(t, none.Err())

	errs := TransactionErrors{
		semanticError(ErrNotParticipant, "1", ".senderPublicKey", "not a participant"),
		semanticError(ErrTimedOut, "1", ".asset.time", "timed out"),
	}
	err := errs.Err()
	assert.ErrorIs(t, err, ErrNotParticipant)
	assert.ErrorIs(t, err, ErrTimedOut)
	assert.False(t, errors.Is(err, ErrWrongSecret))
	assert.Equal(t, "htlc: not a participant (.senderPublicKey); timed out (.asset.time)", err.Error())

	var terr *TransactionError
	assert.True(t, errors.As(err, &terr))
	assert.Equal(t, ".senderPublicKey", terr.DataPath)
}
