package domain

import "github.com/shopspring/decimal"

// CurrencyRate is a directed conversion rate. A (from, to) row says nothing about
// (to, from): inverse rates are stored independently and may include a spread.
type CurrencyRate struct {
	CurrencyRateID   string          `json:"currencyRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	IsActive         bool            `json:"isActive"`
	IsManual         bool            `json:"isManual"`
	UpdatedBy        string          `json:"updatedBy"`
	AuditFields
}
