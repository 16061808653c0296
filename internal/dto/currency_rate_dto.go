package dto

import (
	"time"

	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertCurrencyRateRequest creates or replaces the directed (from, to) rate.
type UpsertCurrencyRateRequest struct {
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,min=3,max=10,uppercase"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,min=3,max=10,uppercase,nefield=FromCurrencyCode"`
	Rate             decimal.Decimal `json:"rate" binding:"decimalgt0"`
	IsActive         *bool           `json:"isActive"` // defaults to true
	IsManual         *bool           `json:"isManual"` // defaults to true
}

// CurrencyRateResponse defines the structure for API responses containing rate details.
type CurrencyRateResponse struct {
	CurrencyRateID   string          `json:"currencyRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	IsActive         bool            `json:"isActive"`
	IsManual         bool            `json:"isManual"`
	UpdatedBy        string          `json:"updatedBy"`
	CreatedAt        time.Time       `json:"createdAt"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
}

// ToCurrencyRateResponse converts a domain.CurrencyRate to CurrencyRateResponse DTO
func ToCurrencyRateResponse(rate *domain.CurrencyRate) CurrencyRateResponse {
	return CurrencyRateResponse{
		CurrencyRateID:   rate.CurrencyRateID,
		FromCurrencyCode: rate.FromCurrencyCode,
		ToCurrencyCode:   rate.ToCurrencyCode,
		Rate:             rate.Rate,
		IsActive:         rate.IsActive,
		IsManual:         rate.IsManual,
		UpdatedBy:        rate.UpdatedBy,
		CreatedAt:        rate.CreatedAt,
		LastUpdatedAt:    rate.LastUpdatedAt,
	}
}

// ToListCurrencyRateResponse converts a slice of domain.CurrencyRate to response DTOs.
func ToListCurrencyRateResponse(rates []domain.CurrencyRate) []CurrencyRateResponse {
	responses := make([]CurrencyRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToCurrencyRateResponse(&rates[i])
	}
	return responses
}

// ConvertResponse is the result of converting an amount between currencies.
type ConvertResponse struct {
	Amount           string `json:"amount"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Result           string          `json:"result"`
}
