// Package validation contains the logic for validating
// transfer objects.
//
// It uses the `validator` library to enforce rules (required fields,
// lengths, closed sets, positive fixed-point amounts) defined in struct tags and
// extracts validation errors into field-identified errors a caller can
// return to its client.
package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator with the module's custom rules
// registered. It is safe for concurrent use.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Field errors use the JSON name clients see.
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})

		// Decimals are validated through their canonical string form.
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.String()
			}
			return nil
		}, decimal.Decimal{})

		_ = v.RegisterValidation("decimal_gt0", isPositiveDecimal)
		_ = v.RegisterValidation("decimal_amount", fitsAmountColumn)

		instance = v
	})
	return instance
}

// isPositiveDecimal reports whether the field, in decimal string form, is
// strictly greater than zero.
func isPositiveDecimal(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return d.IsPositive()
}

// AmountScale is the number of decimal places an amount column keeps.
// Amount columns are numeric(10,2).
const AmountScale = 2

// AmountLimit is the exclusive upper bound of an amount's magnitude.
var AmountLimit = decimal.New(1, 10-AmountScale)

// fitsAmountColumn reports whether the field has at most AmountScale
// decimal places and a magnitude below AmountLimit, so the store keeps it
// exactly.
func fitsAmountColumn(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	if !d.Equal(d.Round(AmountScale)) {
		return false
	}
	return d.Abs().LessThan(AmountLimit)
}

// Struct runs tag-based validation on s.
func Struct(s interface{}) error {
	return Validator().Struct(s)
}

// Var runs tag-based validation on a single value.
func Var(field interface{}, tag string) error {
	return Validator().Var(field, tag)
}
