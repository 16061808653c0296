package dto

import (
	"time"

	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDepositRequest is a user's funding submission.
type CreateDepositRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"decimalgt0"`
	CurrencyCode string          `json:"currencyCode" binding:"required,uppercase,min=3,max=10"`
	Method       string          `json:"method" binding:"required,max=50"`
}

// ReviewDepositRequest carries an admin decision on a pending deposit.
type ReviewDepositRequest struct {
	Decision domain.ReviewDecision `json:"decision" binding:"required,oneof=approve reject"`
	Reason   string                `json:"reason" binding:"required_if=Decision reject,max=500"`
}

// ListDepositsParams defines the query parameters for listing a user's deposits.
type ListDepositsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListPendingDepositsParams defines the query parameters of the review queue.
type ListPendingDepositsParams struct {
	Limit int `form:"limit,default=50" binding:"min=1,max=200"`
}

// DepositResponse defines the data returned for a deposit.
type DepositResponse struct {
	DepositID       string               `json:"depositID"`
	UserID          string               `json:"userID"`
	Amount          decimal.Decimal      `json:"amount"`
	CurrencyCode    string               `json:"currencyCode"`
	Method          string               `json:"method"`
	Status          domain.DepositStatus `json:"status"`
	ReviewedBy      *string              `json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time           `json:"reviewedAt,omitempty"`
	RejectionReason *string              `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`
	LastUpdatedAt   time.Time            `json:"lastUpdatedAt"`
}

// ListDepositsResponse wraps a page of deposits.
type ListDepositsResponse struct {
	Deposits  []DepositResponse `json:"deposits"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToDepositResponse converts a domain.Deposit to DepositResponse DTO.
func ToDepositResponse(d *domain.Deposit) DepositResponse {
	return DepositResponse{
		DepositID:       d.DepositID,
		UserID:          d.UserID,
		Amount:          d.Amount,
		CurrencyCode:    d.CurrencyCode,
		Method:          d.Method,
		Status:          d.Status,
		ReviewedBy:      d.ReviewedBy,
		ReviewedAt:      d.ReviewedAt,
		RejectionReason: d.RejectionReason,
		CreatedAt:       d.CreatedAt,
		LastUpdatedAt:   d.LastUpdatedAt,
	}
}

// ToListDepositResponse converts a slice of deposits.
func ToListDepositResponse(deposits []domain.Deposit) []DepositResponse {
	res := make([]DepositResponse, len(deposits))
	for i := range deposits {
		res[i] = ToDepositResponse(&deposits[i])
	}
	return res
}
