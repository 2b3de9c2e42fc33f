package htlc

import (
	"strconv"

	"github.com/bitfsorg/libhtlc-go/ledger"
)

// applyRefund returns an expired contract's balance to the sender. The
// refund data must equal the lock data verbatim; it acts as a second
// authorisation factor, not as a hash preimage.
func (e *Engine) applyRefund(st ledger.Store, tx *Transaction, a *RefundAsset) TransactionErrors {
	contract, errs := loadResolvable(st, tx, a.ContractID)
	if contract == nil {
		return errs
	}
	c := contract.Asset

	if now := e.Now(); now < c.Time {
		terr := semanticError(ErrNotTimedOut, tx.ID, ".asset.time", "Contract is not yet timed out.")
		terr.Actual = strconv.FormatInt(c.Time, 10)
		terr.Expected = "<= " + strconv.FormatInt(now, 10)
		errs = append(errs, terr)
	}

	if c.Hash != a.Data {
		terr := semanticError(ErrDataMismatch, tx.ID, ".asset.data", "`data` is not correct.")
		terr.Actual, terr.Expected = a.Data, c.Hash
		errs = append(errs, terr)
	}

	return append(errs, e.settle(st, tx, contract, func(c *ledger.ContractAsset) { c.TimedOut = true })...)
}

// undoRefund restores a refunded contract. It does nothing unless the
// contract is marked timed out.
func (e *Engine) undoRefund(st ledger.Store, tx *Transaction, a *RefundAsset) TransactionErrors {
	contract, err := st.GetOrDefault(a.ContractID)
	if err != nil {
		return TransactionErrors{storeError(tx, ".asset.contractId", err)}
	}
	if contract.Asset == nil || !contract.Asset.TimedOut {
		return nil
	}
	return e.unsettle(st, tx, contract, func(c *ledger.ContractAsset) { c.TimedOut = false })
}
