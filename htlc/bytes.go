package htlc

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"

	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"

	"github.com/bitfsorg/libhtlc-go/hashlock"
)

const (
	amountSize       = 8
	contractIDSize   = 8
	secretLengthSize = 3
	timeSize         = 4
	timestampSize    = 4
)

// AssetBytes returns the canonical byte encoding of the asset, used for
// transaction ids and signatures. The layout is fixed:
//
//	amount(8 BE, always) || contractId body(8 BE) || recipientPublicKey ||
//	type || data || secretLength(3 BE) || secret || time(4 BE)
//
// Every field after amount is empty when absent, zero or not part of the
// sub type.
func (tx *Transaction) AssetBytes() []byte {
	var (
		amount       uint64
		contractID   string
		recipient    string
		scheme       string
		data         string
		secretLength int
		secret       string
		lockTime     int64
	)
	switch a := tx.Asset.(type) {
	case *LockAsset:
		if a.Amount != nil {
			amount = a.Amount.Uint64()
		}
		contractID, recipient, scheme, data = a.ContractID, a.RecipientPublicKey, a.Type, a.Data
		secretLength, lockTime = a.SecretLength, a.Time
	case *UnlockAsset:
		contractID, secret = a.ContractID, a.Secret
	case *RefundAsset:
		contractID, data = a.ContractID, a.Data
	}

	buf := make([]byte, amountSize, amountSize+contractIDSize+len(recipient)+len(scheme)+
		len(data)+secretLengthSize+len(secret)+timeSize)
	binary.BigEndian.PutUint64(buf, amount)

	if contractID != "" {
		var body [contractIDSize]byte
		if n, err := hashlock.AddressNumber(contractID); err == nil {
			binary.BigEndian.PutUint64(body[:], n)
		}
		buf = append(buf, body[:]...)
	}
	buf = append(buf, recipient...)
	buf = append(buf, scheme...)
	buf = append(buf, data...)
	if secretLength != 0 {
		buf = append(buf, byte(secretLength>>16), byte(secretLength>>8), byte(secretLength))
	}
	buf = append(buf, secret...)
	if lockTime != 0 {
		buf = binary.BigEndian.AppendUint32(buf, uint32(lockTime))
	}
	return buf
}

// Bytes returns the bytes the transaction id is computed over:
//
//	type(1) || timestamp(4 LE) || senderPublicKey || asset bytes
func (tx *Transaction) Bytes() []byte {
	sender, err := hex.DecodeString(tx.SenderPublicKey)
	if err != nil {
		sender = []byte(tx.SenderPublicKey)
	}
	asset := tx.AssetBytes()

	buf := make([]byte, 0, 1+timestampSize+len(sender)+len(asset))
	buf = append(buf, TransactionType)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(tx.Timestamp))
	buf = append(buf, sender...)
	buf = append(buf, asset...)
	return buf
}

// ComputeID returns the ledger identifier of the transaction: the first
// 8 bytes of SHA256(Bytes()) read little-endian, in decimal.
func (tx *Transaction) ComputeID() string {
	digest := bsvhash.Sha256(tx.Bytes())
	return strconv.FormatUint(binary.LittleEndian.Uint64(digest[:8]), 10)
}
