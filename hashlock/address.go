package hashlock

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
)

const (
	// AddressSuffix terminates every ledger address.
	AddressSuffix = "L"

	// maxAddressDigits is the length of the largest uint64 in decimal.
	maxAddressDigits = 20
)

// contractKeyTag prefixes every contract pseudo-public-key, marking it as a
// key nobody holds a private key for.
var contractKeyTag = []byte{0x00, 0x01, 0x09, 0x09}

// ContractPublicKey derives the hex pseudo-public-key of the contract account
// created by a lock. It is a pure function of the lock's defining fields and
// the locking sender:
//
//	tag(4) || SHA256(data || recipientPublicKey || senderPublicKey || time)[4:32]
func ContractPublicKey(data, recipientPublicKey, senderPublicKey string, lockTime int64) string {
	preimage := data + recipientPublicKey + senderPublicKey + strconv.FormatInt(lockTime, 10)
	digest := bsvhash.Sha256([]byte(preimage))

	key := make([]byte, 0, len(digest))
	key = append(key, contractKeyTag...)
	key = append(key, digest[len(contractKeyTag):]...)
	return hex.EncodeToString(key)
}

// ContractAddress derives the ledger address of the contract account for a lock.
func ContractAddress(data, recipientPublicKey, senderPublicKey string, lockTime int64) string {
	addr, err := AddressFromPublicKey(ContractPublicKey(data, recipientPublicKey, senderPublicKey, lockTime))
	if err != nil {
		// ContractPublicKey always returns valid hex.
		panic(err)
	}
	return addr
}

// AddressFromPublicKey derives the ledger address of a hex public key: the
// first 8 bytes of SHA256(pubkey), read little-endian, in decimal, suffixed "L".
func AddressFromPublicKey(publicKey string) (string, error) {
	raw, err := hex.DecodeString(publicKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}
	digest := bsvhash.Sha256(raw)
	return strconv.FormatUint(binary.LittleEndian.Uint64(digest[:8]), 10) + AddressSuffix, nil
}

// AddressNumber returns the numeric body of a ledger address.
func AddressNumber(address string) (uint64, error) {
	body, ok := strings.CutSuffix(address, AddressSuffix)
	if !ok || body == "" || len(body) > maxAddressDigits {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	if len(body) > 1 && body[0] == '0' {
		return 0, fmt.Errorf("%w: leading zero in %q", ErrInvalidAddress, address)
	}
	for _, c := range body {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
		}
	}
	n, err := strconv.ParseUint(body, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	return n, nil
}

// IsAddress reports whether address is a well-formed ledger address.
func IsAddress(address string) bool {
	_, err := AddressNumber(address)
	return err == nil
}
