package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ipo_ledger/internal/apperrors"
	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ipo_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ipo_ledger/internal/core/ports/services"
	"github.com/SscSPs/ipo_ledger/internal/dto"
	"github.com/SscSPs/ipo_ledger/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	defaultDepositPageSize = 20
	maxDepositPageSize     = 100
	defaultReviewQueueSize = 50
	maxReviewQueueSize     = 200
)

// depositService runs the deposit review state machine.
type depositService struct {
	BaseService
	depositRepo portsrepo.DepositRepositoryFacade
	currencySvc portssvc.CurrencyReaderSvc
}

// NewDepositService creates the deposit service.
func NewDepositService(txManager portsrepo.TransactionManager, depositRepo portsrepo.DepositRepositoryFacade, currencySvc portssvc.CurrencyReaderSvc, options ...ServiceOption) portssvc.DepositSvcFacade {
	return &depositService{
		BaseService: newBaseService(txManager, options),
		depositRepo: depositRepo,
		currencySvc: currencySvc,
	}
}

var _ portssvc.DepositSvcFacade = (*depositService)(nil)

func (s *depositService) CreateDeposit(ctx context.Context, userID string, req dto.CreateDepositRequest) (*domain.Deposit, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: deposit amount must be positive", apperrors.ErrValidation)
	}

	code := normalizeCode(req.CurrencyCode)
	if _, err := s.currencySvc.GetCurrencyByCode(ctx, code); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency code '%s' not found", apperrors.ErrValidation, code)
		}
		return nil, err
	}
	precision := s.currencySvc.Precision(ctx, code)
	if !req.Amount.Equal(req.Amount.Truncate(precision)) {
		return nil, fmt.Errorf("%w: %s allows at most %d decimal places", apperrors.ErrValidation, code, precision)
	}

	deposit := domain.Deposit{
		DepositID:    uuid.NewString(),
		UserID:       userID,
		Amount:       req.Amount,
		CurrencyCode: code,
		Method:       req.Method,
		Status:       domain.DepositPending,
		AuditFields:  domain.NewAuditFields(userID, s.CurrentTime()),
	}

	if err := s.depositRepo.SaveDeposit(ctx, deposit); err != nil {
		s.LogError(ctx, err, "Failed to save deposit", slog.String("deposit_id", deposit.DepositID))
		return nil, fmt.Errorf("failed to create deposit: %w", err)
	}

	s.LogInfo(ctx, "Deposit submitted", slog.String("deposit_id", deposit.DepositID),
		slog.String("amount", deposit.Amount.String()), slog.String("currency_code", code))
	s.Track(userID, "deposit_created", map[string]any{"amount": deposit.Amount.String(), "currency": code, "method": deposit.Method})
	return &deposit, nil
}

func (s *depositService) GetDeposit(ctx context.Context, depositID, userID string) (*domain.Deposit, error) {
	deposit, err := s.depositRepo.FindDepositByID(ctx, depositID)
	if err != nil {
		return nil, err
	}
	if deposit.UserID != userID {
		return nil, apperrors.NewNotFoundError("deposit " + depositID + " not found")
	}
	return deposit, nil
}

func (s *depositService) ListDepositsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Deposit, *string, error) {
	limit = pagination.Clamp(limit, defaultDepositPageSize, maxDepositPageSize)
	deposits, next, err := s.depositRepo.ListDepositsByUser(ctx, userID, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list deposits", slog.String("user_id", userID))
		return nil, nil, err
	}
	return deposits, next, nil
}

func (s *depositService) ListPendingDeposits(ctx context.Context, limit int) ([]domain.Deposit, error) {
	limit = pagination.Clamp(limit, defaultReviewQueueSize, maxReviewQueueSize)
	return s.depositRepo.ListDepositsByStatus(ctx, domain.DepositPending, limit)
}

// ReviewDeposit locks the deposit row, so two reviewers racing on the same deposit
// serialise and the second sees a terminal status.
func (s *depositService) ReviewDeposit(ctx context.Context, depositID string, decision domain.ReviewDecision, reason, reviewerID string) (*domain.Deposit, error) {
	var reviewed *domain.Deposit

	err := s.RunInTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		deposit, err := s.depositRepo.FindDepositByIDForUpdate(ctx, tx, depositID)
		if err != nil {
			return err
		}
		if err := deposit.Review(decision, reason, reviewerID, s.CurrentTime()); err != nil {
			return err
		}
		if err := s.depositRepo.UpdateDepositReview(ctx, tx, *deposit); err != nil {
			return err
		}
		reviewed = deposit
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrInvalidStateTransition) && !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to review deposit", slog.String("deposit_id", depositID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Deposit reviewed", slog.String("deposit_id", depositID), slog.String("status", string(reviewed.Status)))
	s.Track(reviewerID, "deposit_reviewed", map[string]any{
		"deposit_id": depositID,
		"status":     string(reviewed.Status),
		"amount":     reviewed.Amount.String(),
		"currency":   reviewed.CurrencyCode,
	})
	return reviewed, nil
}
