package models

// InvestorAccount is the persisted per-user ledger settings row.
type InvestorAccount struct {
	UserID           string `db:"user_id"`
	BaseCurrencyCode string `db:"base_currency_code"`
	AuditFields
}
