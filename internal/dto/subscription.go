package dto

import (
	"time"

	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSubscriptionRequest bids for shares of an IPO.
type CreateSubscriptionRequest struct {
	IPOID         string          `json:"ipoID" binding:"required"`
	Quantity      int64           `json:"quantity" binding:"required,gt=0"`
	PricePerShare decimal.Decimal `json:"pricePerShare" binding:"decimalgt0"`
}

// AmendSubscriptionRequest replaces quantity and price of a pending subscription.
type AmendSubscriptionRequest struct {
	Quantity      int64           `json:"quantity" binding:"required,gt=0"`
	PricePerShare decimal.Decimal `json:"pricePerShare" binding:"decimalgt0"`
}

// SubscriptionResponse defines the data returned for a subscription.
type SubscriptionResponse struct {
	SubscriptionID     string                    `json:"subscriptionID"`
	UserID             string                    `json:"userID"`
	IPOID              string                    `json:"ipoID"`
	Quantity           int64                     `json:"quantity"`
	PricePerShare      decimal.Decimal           `json:"pricePerShare"`
	TotalAmount        decimal.Decimal           `json:"totalAmount"`
	Status             domain.SubscriptionStatus `json:"status"`
	StatusReason       *string                   `json:"statusReason,omitempty"`
	AllocationQuantity int64                     `json:"allocationQuantity"`
	AllocationAmount   decimal.Decimal           `json:"allocationAmount"`
	SubmittedAt        time.Time                 `json:"submittedAt"`
	CreatedAt          time.Time                 `json:"createdAt"`
	LastUpdatedAt      time.Time                 `json:"lastUpdatedAt"`
}

// ToSubscriptionResponse converts a domain.Subscription to its response DTO.
func ToSubscriptionResponse(s *domain.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		SubscriptionID:     s.SubscriptionID,
		UserID:             s.UserID,
		IPOID:              s.IPOID,
		Quantity:           s.Quantity,
		PricePerShare:      s.PricePerShare,
		TotalAmount:        s.TotalAmount,
		Status:             s.Status,
		StatusReason:       s.StatusReason,
		AllocationQuantity: s.AllocationQuantity,
		AllocationAmount:   s.AllocationAmount,
		SubmittedAt:        s.SubmittedAt,
		CreatedAt:          s.CreatedAt,
		LastUpdatedAt:      s.LastUpdatedAt,
	}
}

// ToListSubscriptionResponse converts a slice of subscriptions.
func ToListSubscriptionResponse(subs []domain.Subscription) []SubscriptionResponse {
	res := make([]SubscriptionResponse, len(subs))
	for i := range subs {
		res[i] = ToSubscriptionResponse(&subs[i])
	}
	return res
}
