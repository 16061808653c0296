package services

import (
	"context"
	"time"

	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	"github.com/SscSPs/ipo_ledger/internal/dto"
	"github.com/jackc/pgx/v5"
)

// IPOSvcFacade manages the IPO catalogue.
type IPOSvcFacade interface {
	CreateIPO(ctx context.Context, req dto.CreateIPORequest, adminID string) (*domain.IPO, error)
	GetIPO(ctx context.Context, ipoID string) (*domain.IPO, error)
	ListIPOs(ctx context.Context, status *domain.IPOStatus) ([]domain.IPO, error)
}

// SubscriptionReaderSvc defines read operations for subscriptions
type SubscriptionReaderSvc interface {
	// GetSubscription returns a subscription owned by userID.
	GetSubscription(ctx context.Context, subscriptionID, userID string) (*domain.Subscription, error)
	ListSubscriptionsByUser(ctx context.Context, userID string) ([]domain.Subscription, error)
}

// SubscriptionWriterSvc defines the reservation operations. Each runs in one
// serializable transaction holding the user's advisory lock.
type SubscriptionWriterSvc interface {
	// Subscribe reserves quantity*price against the user's available balance.
	Subscribe(ctx context.Context, userID string, req dto.CreateSubscriptionRequest) (*domain.Subscription, error)

	// Cancel rejects a pending subscription, releasing its reservation.
	Cancel(ctx context.Context, subscriptionID, userID string) (*domain.Subscription, error)

	// Amend replaces quantity and price of a pending subscription.
	Amend(ctx context.Context, subscriptionID, userID string, req dto.AmendSubscriptionRequest) (*domain.Subscription, error)

	// Confirm marks a pending subscription as confirmed by an administrator.
	Confirm(ctx context.Context, subscriptionID, adminID string) (*domain.Subscription, error)
}

// SubscriptionSvcFacade combines all subscription service interfaces
type SubscriptionSvcFacade interface {
	SubscriptionReaderSvc
	SubscriptionWriterSvc
}

// AllocationSvcFacade closes IPOs and distributes their shares.
type AllocationSvcFacade interface {
	// RunAllocationSweep opens due IPOs, closes and allocates every ongoing IPO past its
	// end date, and lists closed IPOs past their listing date. Running it twice is safe.
	RunAllocationSweep(ctx context.Context, now time.Time) (*domain.SweepReport, error)

	// CloseAndAllocate processes one IPO in a single transaction. When another run already
	// closed it the summary is marked Skipped and nothing changes.
	CloseAndAllocate(ctx context.Context, ipoID string, now time.Time) (*domain.AllocationSummary, error)
}

// SettlementSvcFacade turns allocations into holdings.
type SettlementSvcFacade interface {
	// SettleSubscriptionTx records the buy and updates the holding inside tx. It reports
	// false when the subscription was settled before.
	SettleSubscriptionTx(ctx context.Context, tx pgx.Tx, subscription domain.Subscription, ipo domain.IPO, now time.Time) (bool, error)

	// SettleIPO re-applies settlement to every allocated subscription of a closed IPO
	// and returns how many were newly settled.
	SettleIPO(ctx context.Context, ipoID, adminID string) (int, error)

	GetPortfolio(ctx context.Context, userID string) ([]domain.Holding, error)
	ListStockTransactions(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.StockTransaction, *string, error)
}
