package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockTransactionType is the kind of holding movement recorded in the log.
type StockTransactionType string

const (
	StockBuy        StockTransactionType = "buy"
	StockSell       StockTransactionType = "sell"
	StockAllocation StockTransactionType = "allocation"
)

// StockTransactionStatus is the settlement state of a log entry.
type StockTransactionStatus string

const (
	StockTxPending   StockTransactionStatus = "pending"
	StockTxCompleted StockTransactionStatus = "completed"
	StockTxFailed    StockTransactionStatus = "failed"
)

// StockTransaction is an append-only audit record. Completed rows are never updated.
type StockTransaction struct {
	StockTransactionID string                 `json:"stockTransactionID"`
	UserID             string                 `json:"userID"`
	Symbol             string                 `json:"symbol"`
	SubscriptionID     *string                `json:"subscriptionID,omitempty"`
	Type               StockTransactionType   `json:"type"`
	Quantity           int64                  `json:"quantity"`
	PricePerShare      decimal.Decimal        `json:"pricePerShare"`
	TotalAmount        decimal.Decimal        `json:"totalAmount"`
	Commission         decimal.Decimal        `json:"commission"`
	Status             StockTransactionStatus `json:"status"`
	TransactionDate    time.Time              `json:"transactionDate"`
	AuditFields
}
