package models

import (
	"github.com/shopspring/decimal"
)

// CurrencyRate stores one directed conversion rate.
type CurrencyRate struct {
	CurrencyRateID   string          `db:"currency_rate_id"`
	FromCurrencyCode string          `db:"from_currency_code"` // FK -> Currency.currencyCode
	ToCurrencyCode   string          `db:"to_currency_code"`   // FK -> Currency.currencyCode
	Rate             decimal.Decimal `db:"rate"`
	IsActive         bool            `db:"is_active"`
	IsManual         bool            `db:"is_manual"`
	UpdatedBy        string          `db:"updated_by"`
	AuditFields
}
