package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Wallian169/p2p-tg-bot/internal/errs"
)

// Validatable is implemented by transfer objects that know how to validate
// themselves.
//
// Typical pattern:
//   - Define a struct with validator tags (`validate:"required,max=200"`)
//   - Implement Validate() error that runs Struct(x) and/or returns
//     CustomValidationErrors for rules tags cannot express
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a field
// that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	if len(c) == 0 {
		return "Validation failed"
	}
	parts := make([]string, 0, len(c))
	for _, e := range c {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return "Validation failed: " + strings.Join(parts, "; ")
}

// Validate runs payload.Validate and converts a failure into a 400
// *errs.HTTPError carrying one FieldError per failing field.
func Validate(payload Validatable) error {
	err := payload.Validate()
	if err == nil {
		return nil
	}

	msg, fieldErrors := extractValidationError(err)
	if fieldErrors == nil {
		return errs.ValidationError(err)
	}
	return errs.NewBadRequestError(msg, true, nil, fieldErrors).WithCause(err)
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, e := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: e.Field,
				Error: e.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "", nil
	}

	for _, fe := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: fe.Field(),
			Error: FieldMessage(fe),
		})
	}

	return "Validation failed", fieldErrors
}

// FieldMessage renders a validator error as a user-facing message.
func FieldMessage(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return "is required"

	case "decimal_gt0":
		return fmt.Sprintf("%s must be greater than zero", field)

	case "decimal_amount":
		return amountMessage(field)

	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())

	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())

	case "uuid":
		return "must be a valid UUID"

	case "dive":
		return "some items are invalid"

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", field, fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s: %s", field, fe.Tag())
	}
}

// VarErrors validates value against tag and, on failure, returns the
// messages as custom errors attributed to field. Used by partial-update
// payloads whose fields are validated one by one.
func VarErrors(field string, value interface{}, tag string) CustomValidationErrors {
	err := Var(value, tag)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return CustomValidationErrors{{Field: field, Message: err.Error()}}
	}

	var out CustomValidationErrors
	for _, fe := range validationErrors {
		out = append(out, CustomValidationError{Field: field, Message: varMessage(field, fe)})
	}
	return out
}

// varMessage is FieldMessage for Var errors, which carry no field name.
func varMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "decimal_gt0":
		return fmt.Sprintf("%s must be greater than zero", field)
	case "decimal_amount":
		return amountMessage(field)
	case "required":
		return "is required"
	default:
		return FieldMessage(fe)
	}
}

func amountMessage(field string) string {
	return fmt.Sprintf("%s must have at most %d decimal places and be less than %s", field, AmountScale, AmountLimit.String())
}
