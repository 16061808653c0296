package domain

import "github.com/shopspring/decimal"

// Holding is one portfolio row per (user, symbol). Rows are never deleted; quantity
// may reach zero and the row stays for audit continuity.
type Holding struct {
	PortfolioID  string          `json:"portfolioID"`
	UserID       string          `json:"userID"`
	Symbol       string          `json:"symbol"`
	Quantity     int64           `json:"quantity"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
	TotalCost    decimal.Decimal `json:"totalCost"`
	AuditFields
}
