package domain

// InvestorAccount holds per-user ledger settings. Balances are never stored here;
// they are derived from deposits and subscriptions on every read.
type InvestorAccount struct {
	UserID           string `json:"userID"`
	BaseCurrencyCode string `json:"baseCurrencyCode"`
	AuditFields
}
