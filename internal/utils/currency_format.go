package utils

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultPrecision is used when neither the catalogue nor ISO 4217 knows a currency.
const DefaultPrecision int32 = 2

// ISOPrecision returns the ISO 4217 minor-unit digits for a code, or DefaultPrecision.
func ISOPrecision(currencyCode string) int32 {
	cur := money.GetCurrency(strings.ToUpper(currencyCode))
	if cur == nil {
		return DefaultPrecision
	}
	return int32(cur.Fraction)
}

// ClampPrecision keeps precision within [0, domain.MaxPrecision].
func ClampPrecision(precision int32) int32 {
	if precision < 0 {
		return 0
	}
	if precision > domain.MaxPrecision {
		return domain.MaxPrecision
	}
	return precision
}

// FormatWithPrecision formats an amount with the given precision
// This is a convenience function when you only have the precision value
func FormatWithPrecision(amount decimal.Decimal, precision int32) string {
	return amount.StringFixed(ClampPrecision(precision))
}
