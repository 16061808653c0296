package repositories

import (
	"context"

	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// SubscriptionReader defines read operations for subscriptions
type SubscriptionReader interface {
	FindSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.Subscription, error)
	ListSubscriptionsByUser(ctx context.Context, userID string) ([]domain.Subscription, error)
}

// SubscriptionWriter defines write operations for subscriptions. All of them run inside tx.
type SubscriptionWriter interface {
	// LockUser takes a transaction-scoped advisory lock serialising one user's reservations.
	LockUser(ctx context.Context, tx pgx.Tx, userID string) error

	// HasOpenSubscription reports whether the user holds a pending or confirmed row for the IPO.
	HasOpenSubscription(ctx context.Context, tx pgx.Tx, userID, ipoID string) (bool, error)

	// InsertSubscription returns apperrors.ErrDuplicateSubscription on the open-subscription index.
	InsertSubscription(ctx context.Context, tx pgx.Tx, subscription domain.Subscription) error

	FindSubscriptionByIDForUpdate(ctx context.Context, tx pgx.Tx, subscriptionID string) (*domain.Subscription, error)
	UpdateSubscription(ctx context.Context, tx pgx.Tx, subscription domain.Subscription) error

	// ListReservingByIPOForUpdate locks every pending/confirmed row of the IPO in subscription order.
	ListReservingByIPOForUpdate(ctx context.Context, tx pgx.Tx, ipoID string) ([]domain.Subscription, error)

	// ListAllocatedByIPO returns the allocated rows of the IPO.
	ListAllocatedByIPO(ctx context.Context, tx pgx.Tx, ipoID string) ([]domain.Subscription, error)
}

// SubscriptionRepositoryFacade combines all subscription repository interfaces
type SubscriptionRepositoryFacade interface {
	SubscriptionReader
	SubscriptionWriter
}

// SubscriptionRepositoryWithTx extends SubscriptionRepositoryFacade with transaction capabilities
type SubscriptionRepositoryWithTx interface {
	SubscriptionRepositoryFacade
	TransactionManager
}
