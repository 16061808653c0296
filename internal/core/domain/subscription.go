package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/ipo_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// SubscriptionStatus is the lifecycle state of an IPO subscription.
type SubscriptionStatus string

const (
	SubscriptionPending   SubscriptionStatus = "pending"
	SubscriptionConfirmed SubscriptionStatus = "confirmed"
	SubscriptionAllocated SubscriptionStatus = "allocated"
	SubscriptionRejected  SubscriptionStatus = "rejected"
)

// Reasons recorded when a subscription ends in the rejected state.
const (
	ReasonUserCancelled               = "user_cancelled"
	ReasonUnallocatedOversubscription = "unallocated_oversubscription"
)

// Subscription is a user's bid for shares of one IPO. While pending or confirmed its
// TotalAmount is reserved against the user's available balance.
type Subscription struct {
	SubscriptionID     string             `json:"subscriptionID"`
	UserID             string             `json:"userID"`
	IPOID              string             `json:"ipoID"`
	Quantity           int64              `json:"quantity"`
	PricePerShare      decimal.Decimal    `json:"pricePerShare"`
	TotalAmount        decimal.Decimal    `json:"totalAmount"`
	Status             SubscriptionStatus `json:"status"`
	StatusReason       *string            `json:"statusReason,omitempty"`
	AllocationQuantity int64              `json:"allocationQuantity"`
	AllocationAmount   decimal.Decimal    `json:"allocationAmount"`
	// SubmittedAt orders equal claims during allocation. Amending resets it.
	SubmittedAt time.Time `json:"submittedAt"`
	AuditFields
}

// IsReserving reports whether the subscription currently holds a reservation.
func (s *Subscription) IsReserving() bool {
	return s.Status == SubscriptionPending || s.Status == SubscriptionConfirmed
}

// Cancel withdraws a pending subscription on behalf of its owner.
func (s *Subscription) Cancel(userID string, now time.Time) error {
	if s.Status != SubscriptionPending {
		return fmt.Errorf("%w: subscription %s is %s", apperrors.ErrInvalidStateTransition, s.SubscriptionID, s.Status)
	}
	s.reject(ReasonUserCancelled, userID, now)
	return nil
}

// Confirm marks a pending subscription as confirmed by back office.
func (s *Subscription) Confirm(adminID string, now time.Time) error {
	if s.Status != SubscriptionPending {
		return fmt.Errorf("%w: subscription %s is %s", apperrors.ErrInvalidStateTransition, s.SubscriptionID, s.Status)
	}
	s.Status = SubscriptionConfirmed
	s.LastUpdatedAt = now
	s.LastUpdatedBy = adminID
	return nil
}

// Amend replaces quantity and price of a pending subscription. The amended order
// queues behind orders submitted before it.
func (s *Subscription) Amend(quantity int64, pricePerShare decimal.Decimal, userID string, now time.Time) error {
	if s.Status != SubscriptionPending {
		return fmt.Errorf("%w: subscription %s is %s", apperrors.ErrInvalidStateTransition, s.SubscriptionID, s.Status)
	}
	s.Quantity = quantity
	s.PricePerShare = pricePerShare
	s.TotalAmount = pricePerShare.Mul(decimal.NewFromInt(quantity))
	s.SubmittedAt = now
	s.LastUpdatedAt = now
	s.LastUpdatedBy = userID
	return nil
}

// ApplyAllocation records the allocation outcome. Zero shares rejects the subscription;
// either way the reservation is released because the status leaves pending/confirmed.
func (s *Subscription) ApplyAllocation(quantity int64, actor string, now time.Time) error {
	if !s.IsReserving() {
		return fmt.Errorf("%w: subscription %s is %s", apperrors.ErrInvalidStateTransition, s.SubscriptionID, s.Status)
	}
	if quantity < 0 || quantity > s.Quantity {
		return fmt.Errorf("%w: allocation %d outside [0, %d]", apperrors.ErrValidation, quantity, s.Quantity)
	}
	s.AllocationQuantity = quantity
	s.AllocationAmount = s.PricePerShare.Mul(decimal.NewFromInt(quantity))
	if quantity == 0 {
		s.reject(ReasonUnallocatedOversubscription, actor, now)
		return nil
	}
	s.Status = SubscriptionAllocated
	s.StatusReason = nil
	s.LastUpdatedAt = now
	s.LastUpdatedBy = actor
	return nil
}

func (s *Subscription) reject(reason, actor string, now time.Time) {
	s.Status = SubscriptionRejected
	s.StatusReason = &reason
	s.LastUpdatedAt = now
	s.LastUpdatedBy = actor
}
