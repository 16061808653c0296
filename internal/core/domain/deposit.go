package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ipo_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DepositStatus is the lifecycle state of a deposit.
type DepositStatus string

const (
	DepositPending  DepositStatus = "pending"
	DepositApproved DepositStatus = "approved"
	DepositRejected DepositStatus = "rejected"
)

// ReviewDecision is the reviewer's verdict on a pending deposit.
type ReviewDecision string

const (
	DecisionApprove ReviewDecision = "approve"
	DecisionReject  ReviewDecision = "reject"
)

// Deposit is a user's request to fund their account. Only approved deposits count
// towards the balance.
type Deposit struct {
	DepositID       string          `json:"depositID"`
	UserID          string          `json:"userID"`
	Amount          decimal.Decimal `json:"amount"`
	CurrencyCode    string          `json:"currencyCode"`
	Method          string          `json:"method"`
	Status          DepositStatus   `json:"status"`
	ReviewedBy      *string         `json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time      `json:"reviewedAt,omitempty"`
	RejectionReason *string         `json:"rejectionReason,omitempty"`
	AuditFields
}

// Review applies a reviewer decision. A deposit moves out of pending exactly once.
func (d *Deposit) Review(decision ReviewDecision, reason string, reviewerID string, now time.Time) error {
	if d.Status != DepositPending {
		return fmt.Errorf("%w: deposit %s is already %s", apperrors.ErrInvalidStateTransition, d.DepositID, d.Status)
	}

	switch decision {
	case DecisionApprove:
		d.Status = DepositApproved
		d.RejectionReason = nil
	case DecisionReject:
		reason = strings.TrimSpace(reason)
		if reason == "" {
			return fmt.Errorf("%w: rejection reason is required", apperrors.ErrValidation)
		}
		d.Status = DepositRejected
		d.RejectionReason = &reason
	default:
		return fmt.Errorf("%w: unknown review decision '%s'", apperrors.ErrValidation, decision)
	}

	d.ReviewedBy = &reviewerID
	d.ReviewedAt = &now
	d.LastUpdatedAt = now
	d.LastUpdatedBy = reviewerID
	return nil
}
