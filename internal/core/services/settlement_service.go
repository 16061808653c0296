package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ipo_ledger/internal/apperrors"
	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ipo_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ipo_ledger/internal/core/ports/services"
	"github.com/SscSPs/ipo_ledger/internal/utils/accounting"
	"github.com/SscSPs/ipo_ledger/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	defaultStockTxPageSize = 20
	maxStockTxPageSize     = 100
)

// settlementService applies allocations to portfolios. The stock transaction log is
// unique on subscription ID, so a subscription is credited at most once no matter how
// often settlement runs.
type settlementService struct {
	BaseService
	portfolioRepo portsrepo.PortfolioRepositoryFacade
	subRepo       portsrepo.SubscriptionRepositoryFacade
	ipoRepo       portsrepo.IPORepositoryFacade
}

// NewSettlementService creates the settlement applier.
func NewSettlementService(
	txManager portsrepo.TransactionManager,
	portfolioRepo portsrepo.PortfolioRepositoryFacade,
	subRepo portsrepo.SubscriptionRepositoryFacade,
	ipoRepo portsrepo.IPORepositoryFacade,
	options ...ServiceOption,
) portssvc.SettlementSvcFacade {
	return &settlementService{
		BaseService:   newBaseService(txManager, options),
		portfolioRepo: portfolioRepo,
		subRepo:       subRepo,
		ipoRepo:       ipoRepo,
	}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

func (s *settlementService) SettleSubscriptionTx(ctx context.Context, tx pgx.Tx, sub domain.Subscription, ipo domain.IPO, now time.Time) (bool, error) {
	if sub.Status != domain.SubscriptionAllocated || sub.AllocationQuantity <= 0 {
		return false, fmt.Errorf("%w: subscription %s is %s with %d shares allocated",
			apperrors.ErrInvalidStateTransition, sub.SubscriptionID, sub.Status, sub.AllocationQuantity)
	}

	subscriptionID := sub.SubscriptionID
	entry := domain.StockTransaction{
		StockTransactionID: uuid.NewString(),
		UserID:             sub.UserID,
		Symbol:             ipo.Symbol,
		SubscriptionID:     &subscriptionID,
		Type:               domain.StockBuy,
		Quantity:           sub.AllocationQuantity,
		PricePerShare:      sub.PricePerShare,
		TotalAmount:        sub.AllocationAmount,
		Commission:         decimal.Zero,
		Status:             domain.StockTxCompleted,
		TransactionDate:    now,
		AuditFields:        domain.NewAuditFields(domain.SystemActor, now),
	}

	inserted, err := s.portfolioRepo.InsertStockTransaction(ctx, tx, entry)
	if err != nil {
		return false, err
	}
	if !inserted {
		s.LogDebug(ctx, "Subscription already settled", slog.String("subscription_id", subscriptionID))
		return false, nil
	}

	holding, err := s.portfolioRepo.FindHoldingForUpdate(ctx, tx, sub.UserID, ipo.Symbol)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return false, err
		}
		holding = &domain.Holding{
			PortfolioID:  uuid.NewString(),
			UserID:       sub.UserID,
			Symbol:       ipo.Symbol,
			AveragePrice: decimal.Zero,
			TotalCost:    decimal.Zero,
			AuditFields:  domain.NewAuditFields(domain.SystemActor, now),
		}
	}

	updated, err := accounting.ApplyBuy(*holding, sub.AllocationQuantity, sub.PricePerShare, entry.Commission)
	if err != nil {
		return false, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = domain.SystemActor

	if err := s.portfolioRepo.UpsertHolding(ctx, tx, updated); err != nil {
		return false, err
	}

	s.LogDebug(ctx, "Subscription settled", slog.String("subscription_id", subscriptionID),
		slog.String("symbol", ipo.Symbol), slog.Int64("quantity", sub.AllocationQuantity),
		slog.String("average_price", updated.AveragePrice.String()))
	return true, nil
}

// SettleIPO repairs an IPO whose allocated rows were not all credited. Rows that
// already have a log entry are skipped.
func (s *settlementService) SettleIPO(ctx context.Context, ipoID, adminID string) (int, error) {
	now := s.CurrentTime()
	settled := 0

	err := s.RunInTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		settled = 0
		ipo, err := s.ipoRepo.FindIPOByIDInTx(ctx, tx, ipoID)
		if err != nil {
			return err
		}
		if ipo.Status != domain.IPOClosed && ipo.Status != domain.IPOListed {
			return fmt.Errorf("%w: ipo %s is %s", apperrors.ErrInvalidStateTransition, ipo.Symbol, ipo.Status)
		}

		subs, err := s.subRepo.ListAllocatedByIPO(ctx, tx, ipoID)
		if err != nil {
			return err
		}
		for _, sub := range subs {
			ok, err := s.SettleSubscriptionTx(ctx, tx, sub, *ipo, now)
			if err != nil {
				return fmt.Errorf("failed to settle subscription %s: %w", sub.SubscriptionID, err)
			}
			if ok {
				settled++
			}
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Settlement failed", slog.String("ipo_id", ipoID))
		return 0, err
	}

	s.LogInfo(ctx, "IPO settlement applied", slog.String("ipo_id", ipoID), slog.Int("settled", settled))
	s.Track(adminID, "ipo_settled", map[string]any{"ipo_id": ipoID, "settled": settled})
	return settled, nil
}

func (s *settlementService) GetPortfolio(ctx context.Context, userID string) ([]domain.Holding, error) {
	holdings, err := s.portfolioRepo.ListHoldingsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list holdings", slog.String("user_id", userID))
		return nil, err
	}
	if holdings == nil {
		return []domain.Holding{}, nil
	}
	return holdings, nil
}

func (s *settlementService) ListStockTransactions(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.StockTransaction, *string, error) {
	limit = pagination.Clamp(limit, defaultStockTxPageSize, maxStockTxPageSize)
	return s.portfolioRepo.ListStockTransactionsByUser(ctx, userID, limit, nextToken)
}
