package htlc

import (
	"encoding/json"
	"math"
)

// Classify infers the sub type from the shape of an untyped asset. A field
// counts as present when it is set to something other than nil, "", 0 or false.
//
// Refund is tested first: its fields are a subset of a lock's, told apart by
// the absence of amount, time and type. Anything else ambiguous is unknown.
func Classify(asset map[string]any) SubType {
	if asset == nil {
		return SubTypeUnknown
	}
	has := func(key string) bool { return present(asset[key]) }

	switch {
	case has("contractId") && has("data") && !has("amount") && !has("time") && !has("type"):
		return SubTypeRefund
	case has("contractId") && has("secret"):
		return SubTypeUnlock
	case has("type") && has("amount") && has("time"):
		return SubTypeLock
	default:
		return SubTypeUnknown
	}
}

func present(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	case json.Number:
		f, err := x.Float64()
		return err != nil || (f != 0 && !math.IsNaN(f))
	case float64:
		return x != 0 && !math.IsNaN(x)
	case float32:
		return x != 0
	case int:
		return x != 0
	case int64:
		return x != 0
	case int32:
		return x != 0
	case uint64:
		return x != 0
	case uint32:
		return x != 0
	default:
		return true
	}
}
