package htlc

import "github.com/holiman/uint256"

// SubType identifies which HTLC operation a transaction performs. The
// numeric values are part of the ledger's wire vocabulary.
type SubType int

const (
	SubTypeLock    SubType = 0
	SubTypeUnknown SubType = 1
	SubTypeUnlock  SubType = 2
	SubTypeRefund  SubType = 3
)

func (s SubType) String() string {
	switch s {
	case SubTypeLock:
		return "LOCK"
	case SubTypeUnlock:
		return "UNLOCK"
	case SubTypeRefund:
		return "REFUND"
	default:
		return "UNKNOWN"
	}
}

// Asset is the sub-type specific payload of a transaction: one of
// *LockAsset, *UnlockAsset or *RefundAsset.
type Asset interface {
	SubType() SubType
	contractID() string
}

// LockAsset escrows Amount into a new contract account.
type LockAsset struct {
	ContractID         string
	RecipientPublicKey string
	Amount             *uint256.Int
	Type               string // hash scheme
	Time               int64  // expiry, network-epoch seconds
	Data               string // digest of the secret
	SecretLength       int
}

// UnlockAsset redeems a contract by revealing its secret.
type UnlockAsset struct {
	ContractID string
	Secret     string
}

// RefundAsset returns an expired contract's funds to its sender.
type RefundAsset struct {
	ContractID string
	Data       string // must equal the lock's Data
}

func (*LockAsset) SubType() SubType { return SubTypeLock }
func (*UnlockAsset) SubType() SubType { return SubTypeUnlock }
func (*RefundAsset) SubType() SubType { return SubTypeRefund }

func (a *LockAsset) contractID() string { return a.ContractID }
func (a *UnlockAsset) contractID() string { return a.ContractID }
func (a *RefundAsset) contractID() string { return a.ContractID }

// JSON views of the assets. They are what the schema validator checks and
// what MarshalJSON emits.

type lockJSON struct {
	ContractID         string `json:"contractId" validate:"required,address"`
	Amount             string `json:"amount" validate:"required,amount"`
	RecipientPublicKey string `json:"recipientPublicKey" validate:"max=64"`
	Type               string `json:"type" validate:"required,max=10"`
	Time               int64  `json:"time" validate:"min=1"`
	Data               string `json:"data" validate:"transferdata,max=64"`
	SecretLength       int    `json:"secretLength" validate:"min=6,max=64"`
}

type unlockJSON struct {
	ContractID string `json:"contractId" validate:"required,address"`
	Secret     string `json:"secret" validate:"required,transferdata,max=64"`
}

type refundJSON struct {
	ContractID string `json:"contractId" validate:"required,address"`
	Data       string `json:"data" validate:"required,transferdata,max=64"`
}

func (a *LockAsset) toJSON() *lockJSON {
	amount := "0"
	if a.Amount != nil {
		amount = a.Amount.Dec()
	}
	return &lockJSON{
		ContractID:         a.ContractID,
		Amount:             amount,
		RecipientPublicKey: a.RecipientPublicKey,
		Type:               a.Type,
		Time:               a.Time,
		Data:               a.Data,
		SecretLength:       a.SecretLength,
	}
}

func (a *UnlockAsset) toJSON() *unlockJSON {
	return &unlockJSON{ContractID: a.ContractID, Secret: a.Secret}
}

func (a *RefundAsset) toJSON() *refundJSON {
	return &refundJSON{ContractID: a.ContractID, Data: a.Data}
}
