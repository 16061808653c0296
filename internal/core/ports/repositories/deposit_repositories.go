package repositories

import (
	"context"

	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// DepositReader defines read operations for deposits
type DepositReader interface {
	FindDepositByID(ctx context.Context, depositID string) (*domain.Deposit, error)

	// ListDepositsByUser returns newest first with cursor pagination.
	ListDepositsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Deposit, *string, error)

	// ListDepositsByStatus returns oldest first, the order a review queue is worked in.
	ListDepositsByStatus(ctx context.Context, status domain.DepositStatus, limit int) ([]domain.Deposit, error)
}

// DepositWriter defines write operations for deposits
type DepositWriter interface {
	SaveDeposit(ctx context.Context, deposit domain.Deposit) error

	// FindDepositByIDForUpdate locks the deposit row for the rest of tx.
	FindDepositByIDForUpdate(ctx context.Context, tx pgx.Tx, depositID string) (*domain.Deposit, error)

	// UpdateDepositReview persists the reviewed fields of a locked deposit.
	UpdateDepositReview(ctx context.Context, tx pgx.Tx, deposit domain.Deposit) error
}

// DepositRepositoryFacade combines all deposit repository interfaces
type DepositRepositoryFacade interface {
	DepositReader
	DepositWriter
}

// DepositRepositoryWithTx extends DepositRepositoryFacade with transaction capabilities
type DepositRepositoryWithTx interface {
	DepositRepositoryFacade
	TransactionManager
}
