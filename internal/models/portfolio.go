package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Holding is a row of the portfolios table.
type Holding struct {
	PortfolioID  string          `db:"portfolio_id"`
	UserID       string          `db:"user_id"`
	Symbol       string          `db:"symbol"`
	Quantity     int64           `db:"quantity"`
	AveragePrice decimal.Decimal `db:"average_price"`
	TotalCost    decimal.Decimal `db:"total_cost"`
	AuditFields
}

// StockTransaction is a row of the stock_transactions audit log.
type StockTransaction struct {
	StockTransactionID string          `db:"stock_transaction_id"`
	UserID             string          `db:"user_id"`
	Symbol             string          `db:"symbol"`
	SubscriptionID     sql.NullString  `db:"subscription_id"`
	Type               string          `db:"type"`
	Quantity           int64           `db:"quantity"`
	PricePerShare      decimal.Decimal `db:"price_per_share"`
	TotalAmount        decimal.Decimal `db:"total_amount"`
	Commission         decimal.Decimal `db:"commission"`
	Status             string          `db:"status"`
	TransactionDate    time.Time       `db:"transaction_date"`
	AuditFields
}
