package htlc

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/bitfsorg/libhtlc-go/hashlock"
	"github.com/bitfsorg/libhtlc-go/ledger"
)

// maxTransferDataBytes bounds free-form asset strings in encoded bytes.
const maxTransferDataBytes = 64

// schemaValidator checks asset JSON views against the struct-tag schemas in
// asset.go. Besides the validator built-ins it knows three formats:
// address, amount and transferdata.
type schemaValidator struct {
	v *validator.Validate
}

func newSchemaValidator() *schemaValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	formats := map[string]func(string) bool{
		"address":      hashlock.IsAddress,
		"amount":       ledger.IsNumberString,
		"transferdata": isTransferData,
	}
	for tag, check := range formats {
		check := check
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		}); err != nil {
			panic(err)
		}
	}
	return &schemaValidator{v: v}
}

// validate returns one structural error per violated constraint.
func (s *schemaValidator) validate(id string, view any) TransactionErrors {
	err := s.v.Struct(view)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return TransactionErrors{{
			Kind:     KindStructural,
			Err:      ErrSchema,
			ID:       id,
			DataPath: ".asset",
			Message:  err.Error(),
		}}
	}

	out := make(TransactionErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, &TransactionError{
			Kind:     KindStructural,
			Err:      ErrSchema,
			ID:       id,
			DataPath: ".asset." + fe.Field(),
			Message:  schemaMessage(fe),
			Actual:   fmt.Sprint(fe.Value()),
		})
	}
	return out
}

func schemaMessage(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("should have required property '%s'", fe.Field())
	case "max":
		if isString {
			return fmt.Sprintf("should NOT be longer than %s characters", fe.Param())
		}
		return "should be <= " + fe.Param()
	case "min":
		if isString {
			return fmt.Sprintf("should NOT be shorter than %s characters", fe.Param())
		}
		return "should be >= " + fe.Param()
	case "address", "amount", "transferdata":
		return fmt.Sprintf("should match format %q", fe.Tag())
	default:
		return fmt.Sprintf("failed %q constraint", fe.Tag())
	}
}

// isTransferData accepts valid UTF-8 of at most 64 bytes without NUL characters.
func isTransferData(s string) bool {
	return len(s) <= maxTransferDataBytes && utf8.ValidString(s) && !strings.ContainsRune(s, 0)
}
