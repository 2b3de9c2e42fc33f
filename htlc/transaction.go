package htlc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/holiman/uint256"

	"github.com/bitfsorg/libhtlc-go/hashlock"
	"github.com/bitfsorg/libhtlc-go/ledger"
)

// RawTransaction is the untyped envelope a transaction arrives in.
type RawTransaction struct {
	ID              string         `json:"id,omitempty"`
	BlockID         string         `json:"blockId,omitempty"`
	Type            int            `json:"type"`
	Timestamp       int64          `json:"timestamp"`
	SenderPublicKey string         `json:"senderPublicKey"`
	SenderID        string         `json:"senderId,omitempty"`
	Asset           map[string]any `json:"asset"`
}

// Transaction is a classified HTLC transaction. Asset is nil when the raw
// asset matched no sub type.
type Transaction struct {
	ID              string
	BlockID         string // empty while the transaction is pending
	Timestamp       int64
	SenderPublicKey string
	SenderID        string
	Fee             *uint256.Int
	Asset           Asset
}

// ParseTransaction decodes a JSON envelope and classifies it. lockFee is
// charged only when the transaction turns out to be a lock.
func ParseTransaction(data []byte, lockFee *uint256.Int) (*Transaction, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw RawTransaction
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTransaction, err)
	}
	return NewTransaction(&raw, lockFee)
}

// NewTransaction classifies raw and builds its typed asset. Lock fields that
// are missing or malformed fall back to zero values so that validation, not
// construction, reports them; a missing lock contractId is derived.
func NewTransaction(raw *RawTransaction, lockFee *uint256.Int) (*Transaction, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: nil transaction", ErrInvalidTransaction)
	}
	if raw.Type != 0 && raw.Type != TransactionType {
		return nil, fmt.Errorf("%w: type %d is not %d", ErrInvalidTransaction, raw.Type, TransactionType)
	}

	tx := &Transaction{
		ID:              raw.ID,
		BlockID:         raw.BlockID,
		Timestamp:       raw.Timestamp,
		SenderPublicKey: raw.SenderPublicKey,
		SenderID:        raw.SenderID,
		Fee:             new(uint256.Int),
	}
	if tx.SenderID == "" && tx.SenderPublicKey != "" {
		addr, err := hashlock.AddressFromPublicKey(tx.SenderPublicKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidTransaction, err)
		}
		tx.SenderID = addr
	}

	a := raw.Asset
	switch Classify(a) {
	case SubTypeLock:
		lock := &LockAsset{
			RecipientPublicKey: stringField(a, "recipientPublicKey"),
			Amount:             new(uint256.Int),
			Type:               stringField(a, "type"),
			Time:               intField(a, "time"),
			Data:               stringField(a, "data"),
			SecretLength:       int(intField(a, "secretLength")),
			ContractID:         stringField(a, "contractId"),
		}
		if amount, err := ledger.ParseAmount(stringField(a, "amount")); err == nil {
			lock.Amount = amount
		}
		if err := checkLockWidths(lock); err != nil {
			return nil, err
		}
		if lock.ContractID == "" {
			lock.ContractID = hashlock.ContractAddress(lock.Data, lock.RecipientPublicKey, tx.SenderPublicKey, lock.Time)
		}
		if lockFee != nil {
			tx.Fee.Set(lockFee)
		}
		tx.Asset = lock
	case SubTypeUnlock:
		tx.Asset = &UnlockAsset{
			ContractID: stringField(a, "contractId"),
			Secret:     stringField(a, "secret"),
		}
	case SubTypeRefund:
		tx.Asset = &RefundAsset{
			ContractID: stringField(a, "contractId"),
			Data:       stringField(a, "data"),
		}
	}

	if tx.ID == "" {
		tx.ID = tx.ComputeID()
	}
	return tx, nil
}

// SubType returns the classified sub type.
func (tx *Transaction) SubType() SubType {
	if tx.Asset == nil {
		return SubTypeUnknown
	}
	return tx.Asset.SubType()
}

// ContractID returns the contract the transaction operates on, or "".
func (tx *Transaction) ContractID() string {
	if tx.Asset == nil {
		return ""
	}
	return tx.Asset.contractID()
}

// Pending reports whether the transaction is not yet in a block.
func (tx *Transaction) Pending() bool {
	return tx.BlockID == ""
}

// AssetJSON returns the canonical JSON view of the asset; an unknown
// sub type yields an empty object.
func (tx *Transaction) AssetJSON() any {
	switch a := tx.Asset.(type) {
	case *LockAsset:
		return a.toJSON()
	case *UnlockAsset:
		return a.toJSON()
	case *RefundAsset:
		return a.toJSON()
	default:
		return struct{}{}
	}
}

// MarshalJSON emits the transaction envelope with its canonical asset.
func (tx *Transaction) MarshalJSON() ([]byte, error) {
	fee := "0"
	if tx.Fee != nil {
		fee = tx.Fee.Dec()
	}
	return json.Marshal(struct {
		ID              string `json:"id"`
		BlockID         string `json:"blockId,omitempty"`
		Type            int    `json:"type"`
		Timestamp       int64  `json:"timestamp"`
		SenderPublicKey string `json:"senderPublicKey"`
		SenderID        string `json:"senderId"`
		Fee             string `json:"fee"`
		Asset           any    `json:"asset"`
	}{
		ID:              tx.ID,
		BlockID:         tx.BlockID,
		Type:            TransactionType,
		Timestamp:       tx.Timestamp,
		SenderPublicKey: tx.SenderPublicKey,
		SenderID:        tx.SenderID,
		Fee:             fee,
		Asset:           tx.AssetJSON(),
	})
}

// checkLockWidths rejects lock fields that do not fit their fixed-width
// encodings in AssetBytes. Truncating them would give distinct locks the
// same bytes and id.
func checkLockWidths(lock *LockAsset) error {
	if !lock.Amount.IsUint64() {
		return fmt.Errorf("%w: amount %s does not fit in %d bytes", ErrInvalidTransaction, lock.Amount.Dec(), amountSize)
	}
	if lock.Time < 0 || lock.Time > math.MaxUint32 {
		return fmt.Errorf("%w: time %d does not fit in %d bytes", ErrInvalidTransaction, lock.Time, timeSize)
	}
	if lock.SecretLength < 0 || lock.SecretLength >= 1<<(8*secretLengthSize) {
		return fmt.Errorf("%w: secretLength %d does not fit in %d bytes", ErrInvalidTransaction, lock.SecretLength, secretLengthSize)
	}
	return nil
}

func stringField(asset map[string]any, key string) string {
	s, _ := asset[key].(string)
	return s
}

func intField(asset map[string]any, key string) int64 {
	switch v := asset[key].(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0
		}
		return n
	case float64:
		if v != float64(int64(v)) {
			return 0
		}
		return int64(v)
	case int:
		return int64(v)
	case int64:
		return v
	default:
		return 0
	}
}
