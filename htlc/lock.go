package htlc

import (
	"github.com/holiman/uint256"

	"github.com/bitfsorg/libhtlc-go/hashlock"
	"github.com/bitfsorg/libhtlc-go/ledger"
)

// applyLock moves the lock amount from the sender into a fresh contract
// account keyed by the derived contract id.
func (e *Engine) applyLock(st ledger.Store, tx *Transaction, a *LockAsset) TransactionErrors {
	var errs TransactionErrors

	contract, err := st.GetOrDefault(a.ContractID)
	if err != nil {
		return append(errs, storeError(tx, ".asset.contractId", err))
	}
	if contract.Exists() {
		terr := semanticError(ErrContractExists, tx.ID, ".asset.contractId", "`contractId` exists already.")
		terr.Actual = a.ContractID
		errs = append(errs, terr)
	}

	sender, err := st.GetOrDefault(tx.SenderID)
	if err != nil {
		return append(errs, storeError(tx, ".senderId", err))
	}
	amount := a.Amount
	if amount == nil {
		amount = new(uint256.Int)
	}
	if terr := e.debit(tx, sender, amount, ".asset.amount"); terr != nil {
		errs = append(errs, terr)
	}
	if err := st.Set(sender); err != nil {
		errs = append(errs, storeError(tx, ".senderId", err))
	}

	created := &ledger.Account{
		Address:   a.ContractID,
		PublicKey: hashlock.ContractPublicKey(a.Data, a.RecipientPublicKey, tx.SenderPublicKey, a.Time),
		Balance:   new(uint256.Int),
		Asset: &ledger.ContractAsset{
			SenderPublicKey:    tx.SenderPublicKey,
			RecipientPublicKey: a.RecipientPublicKey,
			Amount:             new(uint256.Int).Set(amount),
			Time:               a.Time,
			Hash:               a.Data,
			Type:               a.Type,
			Length:             a.SecretLength,
		},
	}
	if terr := e.credit(tx, created, amount, ".asset.amount"); terr != nil {
		errs = append(errs, terr)
	}
	if err := st.Set(created); err != nil {
		errs = append(errs, storeError(tx, ".asset.contractId", err))
	}
	return errs
}

// undoLock returns the amount to the sender and resets the contract to an
// empty account.
func (e *Engine) undoLock(st ledger.Store, tx *Transaction, a *LockAsset) TransactionErrors {
	var errs TransactionErrors
	amount := a.Amount
	if amount == nil {
		amount = new(uint256.Int)
	}

	contract, err := st.GetOrDefault(a.ContractID)
	if err != nil {
		return append(errs, storeError(tx, ".asset.contractId", err))
	}
	if terr := e.debit(tx, contract, amount, ".asset.amount"); terr != nil {
		errs = append(errs, terr)
	}
	if err := st.Set(ledger.NewAccount(contract.Address)); err != nil {
		errs = append(errs, storeError(tx, ".asset.contractId", err))
	}

	sender, err := st.GetOrDefault(tx.SenderID)
	if err != nil {
		return append(errs, storeError(tx, ".senderId", err))
	}
	if terr := e.credit(tx, sender, amount, ".asset.amount"); terr != nil {
		errs = append(errs, terr)
	}
	if err := st.Set(sender); err != nil {
		errs = append(errs, storeError(tx, ".senderId", err))
	}
	return errs
}
