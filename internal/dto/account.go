package dto

import (
	"time"

	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	"github.com/SscSPs/ipo_ledger/internal/utils"
)

// SetBaseCurrencyRequest changes the currency balances are reported in.
type SetBaseCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,uppercase,min=3,max=10"`
}

// InvestorAccountResponse defines the data returned for an investor account.
type InvestorAccountResponse struct {
	UserID           string    `json:"userID"`
	BaseCurrencyCode string    `json:"baseCurrencyCode"`
	LastUpdatedAt    time.Time `json:"lastUpdatedAt"`
}

// ToInvestorAccountResponse converts a domain.InvestorAccount to its response DTO.
func ToInvestorAccountResponse(acc *domain.InvestorAccount) InvestorAccountResponse {
	return InvestorAccountResponse{
		UserID:           acc.UserID,
		BaseCurrencyCode: acc.BaseCurrencyCode,
		LastUpdatedAt:    acc.LastUpdatedAt,
	}
}

// BalanceResponse is the derived balance. Amounts are strings fixed to the
// base currency precision so clients never see float rounding.
type BalanceResponse struct {
	UserID       string `json:"userID"`
	CurrencyCode string `json:"currency"`
	Total        string `json:"total"`
	Reserved     string `json:"reserved"`
	Available    string `json:"available"`
}

// ToBalanceResponse formats a balance at the given precision.
func ToBalanceResponse(b *domain.Balance, precision int32) BalanceResponse {
	return BalanceResponse{
		UserID:       b.UserID,
		CurrencyCode: b.CurrencyCode,
		Total:        utils.FormatWithPrecision(b.Total, precision),
		Reserved:     utils.FormatWithPrecision(b.Reserved, precision),
		Available:    utils.FormatWithPrecision(b.Available, precision),
	}
}
