package domain_test

import (
	"testing"

	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsValidCurrencyCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"USD", true},
		{"USDT", true},
		{"WBTC2", true},
		{"ABCDEFGHIJ", true},
		{"US", false},
		{"ABCDEFGHIJK", false},
		{"usd", false},
		{"1INCH", false},
		{"US$", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.IsValidCurrencyCode(tt.code))
		})
	}
}
