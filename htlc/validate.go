package htlc

import (
	"fmt"
	"strconv"

	"github.com/bitfsorg/libhtlc-go/hashlock"
	"github.com/bitfsorg/libhtlc-go/ledger"
)

// Validate checks tx without touching state and returns every failed check.
// Unlock and refund get only structural checks here; their remaining rules
// need the contract and are enforced by Apply.
func (e *Engine) Validate(tx *Transaction) TransactionErrors {
	if tx.Asset == nil {
		return TransactionErrors{noSubTypeError(tx)}
	}

	errs := e.schemas.validate(tx.ID, tx.AssetJSON())
	if lock, ok := tx.Asset.(*LockAsset); ok {
		errs = append(errs, e.validateLock(tx, lock)...)
	}
	return errs
}

func (e *Engine) validateLock(tx *Transaction, a *LockAsset) TransactionErrors {
	var errs TransactionErrors

	if a.Type != "" {
		want := hashlock.ContractAddress(a.Data, a.RecipientPublicKey, tx.SenderPublicKey, a.Time)
		if want != a.ContractID {
			terr := semanticError(ErrContractIDMismatch, tx.ID, ".asset.contractId", "Invalid contractId")
			terr.Actual, terr.Expected = a.ContractID, want
			errs = append(errs, terr)
		}
	}

	// Blocks may be replayed long after their locks expired, so only pending
	// transactions are held to the minimum lock time.
	if tx.Pending() && a.Time != 0 && e.Now()+e.params.MinLockTime > a.Time {
		terr := semanticError(ErrLockTimePassed, tx.ID, ".asset.time", "`time` is already passed.")
		terr.Actual = strconv.FormatInt(a.Time, 10)
		terr.Expected = fmt.Sprintf("> NOW + %d", e.params.MinLockTime)
		errs = append(errs, terr)
	}

	amount := "0"
	if a.Amount != nil {
		amount = a.Amount.Dec()
	}
	if !ledger.IsValidTransferAmount(amount, e.params.MaxTransactionAmount) {
		terr := semanticError(ErrInvalidAmount, tx.ID, ".asset.amount", "Amount must be a valid number in string format.")
		terr.Actual = amount
		errs = append(errs, terr)
	}

	if a.RecipientPublicKey == "" {
		errs = append(errs, semanticError(ErrMissingRecipient, tx.ID, ".asset.recipientPublicKey",
			"`recipientPublicKey` must be provided."))
	}

	return errs
}
