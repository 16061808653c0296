package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type IPO struct {
	IPOID        string          `db:"ipo_id"`
	Symbol       string          `db:"symbol"`
	CompanyName  string          `db:"company_name"`
	CurrencyCode string          `db:"currency_code"`
	PriceMin     decimal.Decimal `db:"price_min"`
	PriceMax     decimal.Decimal `db:"price_max"`
	LotSize      int64           `db:"lot_size"`
	TotalShares  int64           `db:"total_shares"`
	StartDate    time.Time       `db:"start_date"`
	EndDate      time.Time       `db:"end_date"`
	ListingDate  sql.NullTime    `db:"listing_date"`
	Status       string          `db:"status"`
	AuditFields
}
