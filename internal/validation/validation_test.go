package validation

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wallian169/p2p-tg-bot/internal/errs"
)

type price struct {
	Amount decimal.Decimal `json:"amount" validate:"decimal_gt0"`
	Label  string          `json:"label" validate:"required,max=5"`
}

func (p price) Validate() error {
	return Struct(p)
}

func TestDecimalGt0(t *testing.T) {
	tests := []struct {
		amount string
		valid  bool
	}{
		{"0.01", true},
		{"1", true},
		{"0", false},
		{"-0.01", false},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			err := Var(decimal.RequireFromString(tt.amount), "decimal_gt0")
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestDecimalAmount(t *testing.T) {
	tests := []struct {
		amount string
		valid  bool
	}{
		{"0.01", true},
		{"1.1", true},
		{"99999999.99", true},
		{"-99999999.99", true},
		{"0.004", false},
		{"100000000", false},
		{"1e12", false},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			err := Var(decimal.RequireFromString(tt.amount), "decimal_amount")
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}

	got := VarErrors("amount", decimal.RequireFromString("0.004"), "decimal_gt0,decimal_amount")
	require.Len(t, got, 1)
	assert.Equal(t, "amount must have at most 2 decimal places and be less than 100000000", got[0].Message)
}

func TestValidate_FieldErrors(t *testing.T) {
	err := Validate(price{Amount: decimal.Zero, Label: "too long"})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Validation failed", httpErr.Message)

	msg, ok := httpErr.Field("amount")
	require.True(t, ok)
	assert.Equal(t, "amount must be greater than zero", msg)

	msg, ok = httpErr.Field("label")
	require.True(t, ok)
	assert.Equal(t, "must not exceed 5 characters", msg)

	assert.NoError(t, Validate(price{Amount: decimal.NewFromInt(1), Label: "ok"}))
}

func TestVarErrors(t *testing.T) {
	assert.Nil(t, VarErrors("amount", decimal.NewFromInt(3), "decimal_gt0"))

	got := VarErrors("amount", decimal.Zero, "decimal_gt0")
	require.Len(t, got, 1)
	assert.Equal(t, CustomValidationError{Field: "amount", Message: "amount must be greater than zero"}, got[0])
	assert.Equal(t, "Validation failed: amount: amount must be greater than zero", got.Error())
}
