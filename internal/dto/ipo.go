package dto

import (
	"time"

	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateIPORequest defines an offering. Status always starts as upcoming.
type CreateIPORequest struct {
	Symbol       string          `json:"symbol" binding:"required,max=20"`
	CompanyName  string          `json:"companyName" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,uppercase,min=3,max=10"`
	PriceMin     decimal.Decimal `json:"priceMin" binding:"decimalgt0"`
	PriceMax     decimal.Decimal `json:"priceMax" binding:"decimalgt0"`
	LotSize      int64           `json:"lotSize" binding:"required,gt=0"`
	TotalShares  int64           `json:"totalShares" binding:"required,gt=0"`
	StartDate    time.Time       `json:"startDate" binding:"required"`
	EndDate      time.Time       `json:"endDate" binding:"required,gtfield=StartDate"`
	ListingDate  *time.Time      `json:"listingDate"`
}

// ListIPOsParams filters the catalogue by status.
type ListIPOsParams struct {
	Status string `form:"status" binding:"omitempty,oneof=upcoming ongoing closed listed"`
}

// IPOResponse defines the data returned for an IPO.
type IPOResponse struct {
	IPOID        string           `json:"ipoID"`
	Symbol       string           `json:"symbol"`
	CompanyName  string           `json:"companyName"`
	CurrencyCode string           `json:"currencyCode"`
	PriceMin     decimal.Decimal  `json:"priceMin"`
	PriceMax     decimal.Decimal  `json:"priceMax"`
	LotSize      int64            `json:"lotSize"`
	TotalShares  int64            `json:"totalShares"`
	StartDate    time.Time        `json:"startDate"`
	EndDate      time.Time        `json:"endDate"`
	ListingDate  *time.Time       `json:"listingDate,omitempty"`
	Status       domain.IPOStatus `json:"status"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// ToIPOResponse converts a domain.IPO to IPOResponse DTO.
func ToIPOResponse(i *domain.IPO) IPOResponse {
	return IPOResponse{
		IPOID:        i.IPOID,
		Symbol:       i.Symbol,
		CompanyName:  i.CompanyName,
		CurrencyCode: i.CurrencyCode,
		PriceMin:     i.PriceMin,
		PriceMax:     i.PriceMax,
		LotSize:      i.LotSize,
		TotalShares:  i.TotalShares,
		StartDate:    i.StartDate,
		EndDate:      i.EndDate,
		ListingDate:  i.ListingDate,
		Status:       i.Status,
		CreatedAt:    i.CreatedAt,
	}
}

// ToListIPOResponse converts a slice of IPOs.
func ToListIPOResponse(ipos []domain.IPO) []IPOResponse {
	res := make([]IPOResponse, len(ipos))
	for i := range ipos {
		res[i] = ToIPOResponse(&ipos[i])
	}
	return res
}
