package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type Subscription struct {
	SubscriptionID     string          `db:"subscription_id"`
	UserID             string          `db:"user_id"`
	IPOID              string          `db:"ipo_id"`
	Quantity           int64           `db:"quantity"`
	PricePerShare      decimal.Decimal `db:"price_per_share"`
	TotalAmount        decimal.Decimal `db:"total_amount"`
	Status             string          `db:"status"`
	StatusReason       sql.NullString  `db:"status_reason"`
	AllocationQuantity int64           `db:"allocation_quantity"`
	AllocationAmount   decimal.Decimal `db:"allocation_amount"`
	SubmittedAt        time.Time       `db:"submitted_at"`
	AuditFields
}
