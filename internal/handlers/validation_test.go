package handlers

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type amountInput struct {
	Amount decimal.Decimal `validate:"decimalgt0"`
}

func TestRegisterMoneyRules(t *testing.T) {
	v := validator.New()
	require.NoError(t, registerMoneyRules(v))

	assert.NoError(t, v.Struct(amountInput{Amount: decimal.RequireFromString("0.01")}))
	assert.Error(t, v.Struct(amountInput{Amount: decimal.Zero}))
	assert.Error(t, v.Struct(amountInput{Amount: decimal.NewFromInt(-5)}))
}

func TestRegisterValidators_Idempotent(t *testing.T) {
	assert.NotPanics(t, RegisterValidators)
	assert.NotPanics(t, RegisterValidators)
}
