package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

type Deposit struct {
	DepositID       string          `db:"deposit_id"`
	UserID          string          `db:"user_id"`
	Amount          decimal.Decimal `db:"amount"`
	CurrencyCode    string          `db:"currency_code"`
	Method          string          `db:"method"`
	Status          string          `db:"status"`
	ReviewedBy      sql.NullString  `db:"reviewed_by"`
	ReviewedAt      sql.NullTime    `db:"reviewed_at"`
	RejectionReason sql.NullString  `db:"rejection_reason"`
	AuditFields
}
