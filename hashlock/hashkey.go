package hashlock

import (
	"encoding/hex"

	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
)

// Hash schemes accepted in the lock asset `type` field.
const (
	// OpHash256 hashes the secret with a single SHA-256.
	OpHash256 = "OP_HASH256"

	// OpHash160 hashes the hex SHA-256 digest of the secret with RIPEMD-160.
	OpHash160 = "OP_HASH160"

	// DefaultScheme is used when a lock does not name a recognised scheme.
	DefaultScheme = OpHash256
)

// HashKey returns the hex digest of secret under the given scheme.
//
// For OP_HASH160 the RIPEMD-160 input is the ASCII hex form of the SHA-256
// digest, not its raw bytes. Any scheme other than OP_HASH160 hashes with
// OP_HASH256.
func HashKey(secret, scheme string) string {
	sha := hex.EncodeToString(bsvhash.Sha256([]byte(secret)))
	if scheme != OpHash160 {
		return sha
	}
	return hex.EncodeToString(bsvhash.Ripemd160([]byte(sha)))
}

// VerifyKey reports whether candidate hashes to expected under scheme.
func VerifyKey(expected, candidate, scheme string) bool {
	return HashKey(candidate, scheme) == expected
}

// SchemeLabel renders the hash expression used by scheme, for error messages.
func SchemeLabel(scheme, secret string) string {
	if scheme == OpHash160 {
		return "RIPEMD160(SHA256(" + secret + "))"
	}
	return "SHA256(" + secret + ")"
}
