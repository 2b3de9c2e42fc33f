package ledger

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// IsNumberString reports whether s is a non-empty string of decimal digits.
func IsNumberString(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ParseAmount parses a decimal amount string in base units.
func ParseAmount(s string) (*uint256.Int, error) {
	if !IsNumberString(s) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAmount, err)
	}
	return v, nil
}

// MustParseAmount is like ParseAmount but panics on error. For constants.
func MustParseAmount(s string) *uint256.Int {
	v, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return v
}

// IsValidTransferAmount reports whether s is a positive amount no greater than max.
func IsValidTransferAmount(s string, max *uint256.Int) bool {
	v, err := ParseAmount(s)
	if err != nil {
		return false
	}
	return !v.IsZero() && !v.Gt(max)
}

// FormatAmount renders base units as a fixed-point number with the given
// number of decimals, e.g. 150000000 with 8 decimals is "1.5".
func FormatAmount(v *uint256.Int, decimals int32) string {
	if v == nil {
		return "0"
	}
	return decimal.NewFromBigInt(v.ToBig(), -decimals).String()
}

// ParseFixedPoint converts a fixed-point string such as "1.5" into base units.
func ParseFixedPoint(s string, decimals int32) (*uint256.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAmount, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("%w: negative %q", ErrInvalidAmount, s)
	}
	units := d.Shift(decimals)
	if !units.Equal(units.Truncate(0)) {
		return nil, fmt.Errorf("%w: %q has more than %d decimals", ErrInvalidAmount, s, decimals)
	}
	v, overflow := uint256.FromBig(units.BigInt())
	if overflow {
		return nil, fmt.Errorf("%w: %q overflows", ErrInvalidAmount, s)
	}
	return v, nil
}
