package domain

import "github.com/shopspring/decimal"

// BalanceComponentKind names one of the sources the balance is derived from.
type BalanceComponentKind string

const (
	ComponentApprovedDeposits BalanceComponentKind = "deposits"
	ComponentAllocatedSpend   BalanceComponentKind = "spent"
	ComponentReserved         BalanceComponentKind = "reserved"
)

// BalanceComponent is a per-currency sum of one balance source.
type BalanceComponent struct {
	Kind         BalanceComponentKind
	CurrencyCode string
	Amount       decimal.Decimal
}

// Balance is a derived view; nothing here is ever persisted.
type Balance struct {
	UserID       string          `json:"userID"`
	Total        decimal.Decimal `json:"total"`
	Available    decimal.Decimal `json:"available"`
	Reserved     decimal.Decimal `json:"reserved"`
	CurrencyCode string          `json:"currency"`
}
