package services

import (
	"context"

	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	"github.com/SscSPs/ipo_ledger/internal/dto"
)

// DepositReaderSvc defines read operations for deposits
type DepositReaderSvc interface {
	// GetDeposit returns a deposit owned by userID; other users' deposits are not found.
	GetDeposit(ctx context.Context, depositID, userID string) (*domain.Deposit, error)

	// ListDepositsByUser returns a page of the user's deposits, newest first.
	ListDepositsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Deposit, *string, error)

	// ListPendingDeposits returns the oldest pending deposits for review.
	ListPendingDeposits(ctx context.Context, limit int) ([]domain.Deposit, error)
}

// DepositWriterSvc defines write operations for deposits
type DepositWriterSvc interface {
	// CreateDeposit records a pending deposit submitted by the user.
	CreateDeposit(ctx context.Context, userID string, req dto.CreateDepositRequest) (*domain.Deposit, error)

	// ReviewDeposit moves a pending deposit to approved or rejected. Reviewing a
	// deposit that is no longer pending fails with apperrors.ErrInvalidStateTransition.
	ReviewDeposit(ctx context.Context, depositID string, decision domain.ReviewDecision, reason, reviewerID string) (*domain.Deposit, error)
}

// DepositSvcFacade combines all deposit service interfaces
type DepositSvcFacade interface {
	DepositReaderSvc
	DepositWriterSvc
}
