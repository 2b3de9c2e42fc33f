package htlc

import (
	"strconv"

	"github.com/bitfsorg/libhtlc-go/hashlock"
	"github.com/bitfsorg/libhtlc-go/ledger"
)

// applyUnlock redeems the contract with the revealed secret and pays its
// balance to the redeeming participant.
func (e *Engine) applyUnlock(st ledger.Store, tx *Transaction, a *UnlockAsset) TransactionErrors {
	contract, errs := loadResolvable(st, tx, a.ContractID)
	if contract == nil {
		return errs
	}
	c := contract.Asset

	if now := e.Now(); tx.Pending() && now > c.Time {
		terr := semanticError(ErrTimedOut, tx.ID, ".asset.time", "Contract is timed out.")
		terr.Actual = strconv.FormatInt(c.Time, 10)
		terr.Expected = "> " + strconv.FormatInt(now, 10)
		errs = append(errs, terr)
	}

	if !hashlock.VerifyKey(c.Hash, a.Secret, c.Type) {
		terr := semanticError(ErrWrongSecret, tx.ID, ".asset.secret", "Wrong secret.")
		label := hashlock.SchemeLabel(c.Type, a.Secret)
		terr.Actual = label + " == " + hashlock.HashKey(a.Secret, c.Type)
		terr.Expected = label + " == " + c.Hash
		errs = append(errs, terr)
	}

	secret := a.Secret
	return append(errs, e.settle(st, tx, contract, func(c *ledger.ContractAsset) { c.Key = secret })...)
}

// undoUnlock restores a redeemed contract. It does nothing unless the
// contract still carries the revealed key.
func (e *Engine) undoUnlock(st ledger.Store, tx *Transaction, a *UnlockAsset) TransactionErrors {
	contract, err := st.GetOrDefault(a.ContractID)
	if err != nil {
		return TransactionErrors{storeError(tx, ".asset.contractId", err)}
	}
	if contract.Asset == nil || contract.Asset.Key == "" {
		return nil
	}
	return e.unsettle(st, tx, contract, func(c *ledger.ContractAsset) { c.Key = "" })
}
