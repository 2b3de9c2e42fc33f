package htlc

import (
	"strconv"

	"github.com/holiman/uint256"

	"github.com/bitfsorg/libhtlc-go/ledger"
)

// State is the lifecycle position of a contract account.
type State int

const (
	StateAbsent State = iota
	StateActive
	StateRedeemed
	StateRefunded
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "ACTIVE"
	case StateRedeemed:
		return "REDEEMED"
	case StateRefunded:
		return "REFUNDED"
	default:
		return "ABSENT"
	}
}

// ContractState reports where account is in the contract lifecycle.
func ContractState(account *ledger.Account) State {
	switch {
	case !account.Exists():
		return StateAbsent
	case account.Asset != nil && account.Asset.Key != "":
		return StateRedeemed
	case account.Asset != nil && account.Asset.TimedOut:
		return StateRefunded
	default:
		return StateActive
	}
}

// loadResolvable fetches the contract a redemption or refund targets and runs
// the checks both share: it must exist, tx must come from a participant, and
// it must not be resolved yet. A nil contract means it does not exist; the
// other failures are returned alongside the contract so the caller can keep
// collecting errors.
func loadResolvable(st ledger.Store, tx *Transaction, contractID string) (*ledger.Account, TransactionErrors) {
	contract, err := st.GetOrDefault(contractID)
	if err != nil {
		return nil, TransactionErrors{storeError(tx, ".asset.contractId", err)}
	}
	if !contract.Exists() {
		terr := semanticError(ErrContractNotFound, tx.ID, ".asset.contractId", "Contract doesn't exist.")
		terr.Actual = contractID
		return nil, TransactionErrors{terr}
	}
	if contract.Asset == nil {
		// An ordinary account at the contract address: every check below fails.
		contract.Asset = &ledger.ContractAsset{Amount: new(uint256.Int)}
	}
	if contract.Asset.Amount == nil {
		contract.Asset.Amount = new(uint256.Int)
	}

	var errs TransactionErrors
	c := contract.Asset
	if !contractParticipant(c, tx.SenderPublicKey) {
		terr := semanticError(ErrNotParticipant, tx.ID, ".senderPublicKey",
			"`senderPublicKey` is not a participant in this contract.")
		terr.Actual = tx.SenderPublicKey
		errs = append(errs, terr)
	}
	if c.Resolved() {
		terr := semanticError(ErrAlreadyResolved, tx.ID, ".asset.key", "Contract already resolved.")
		terr.Actual = c.Key
		if c.Key == "" {
			terr.DataPath = ".asset.timedOut"
			terr.Actual = strconv.FormatBool(c.TimedOut)
		}
		errs = append(errs, terr)
	}
	return contract, errs
}

// settle zeroes the contract, records the resolution via mark and pays the
// pre-settlement balance to the transaction sender.
func (e *Engine) settle(st ledger.Store, tx *Transaction, contract *ledger.Account, mark func(*ledger.ContractAsset)) TransactionErrors {
	var errs TransactionErrors

	// The contract must still hold what was locked.
	if contract.Balance == nil || contract.Balance.Lt(contract.Asset.Amount) {
		check := contract.Clone()
		if terr := e.debit(tx, check, contract.Asset.Amount, ".asset.amount"); terr != nil {
			errs = append(errs, terr)
		}
	}

	paid := new(uint256.Int)
	if contract.Balance != nil {
		paid.Set(contract.Balance)
	}
	contract.Balance = new(uint256.Int)
	mark(contract.Asset)
	if err := st.Set(contract); err != nil {
		errs = append(errs, storeError(tx, ".asset.contractId", err))
	}

	payee, err := st.GetOrDefault(tx.SenderID)
	if err != nil {
		return append(errs, storeError(tx, ".senderId", err))
	}
	if terr := e.credit(tx, payee, paid, ".amount"); terr != nil {
		errs = append(errs, terr)
	}
	if err := st.Set(payee); err != nil {
		errs = append(errs, storeError(tx, ".senderId", err))
	}
	return errs
}

// unsettle reverses settle: the payee returns the locked amount to the
// contract and the resolution marker is cleared by clear.
func (e *Engine) unsettle(st ledger.Store, tx *Transaction, contract *ledger.Account, clear func(*ledger.ContractAsset)) TransactionErrors {
	var errs TransactionErrors
	amount := contract.Asset.Amount
	if amount == nil {
		amount = new(uint256.Int)
	}

	payee, err := st.GetOrDefault(tx.SenderID)
	if err != nil {
		return append(errs, storeError(tx, ".senderId", err))
	}
	if terr := e.debit(tx, payee, amount, ".amount"); terr != nil {
		errs = append(errs, terr)
	}
	if err := st.Set(payee); err != nil {
		errs = append(errs, storeError(tx, ".senderId", err))
	}

	if terr := e.credit(tx, contract, amount, ".asset.amount"); terr != nil {
		errs = append(errs, terr)
	}
	clear(contract.Asset)
	if err := st.Set(contract); err != nil {
		errs = append(errs, storeError(tx, ".asset.contractId", err))
	}
	return errs
}
