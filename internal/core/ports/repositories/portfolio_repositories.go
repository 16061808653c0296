package repositories

import (
	"context"

	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// PortfolioReader defines read operations for holdings and the stock transaction log
type PortfolioReader interface {
	ListHoldingsByUser(ctx context.Context, userID string) ([]domain.Holding, error)
	ListStockTransactionsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.StockTransaction, *string, error)
}

// PortfolioWriter defines write operations used by settlement. All of them run inside tx.
type PortfolioWriter interface {
	// InsertStockTransaction appends to the log. It reports false when a row for the same
	// subscription already exists, in which case nothing was written.
	InsertStockTransaction(ctx context.Context, tx pgx.Tx, st domain.StockTransaction) (bool, error)

	// FindHoldingForUpdate locks the (user, symbol) row; apperrors.ErrNotFound if there is none.
	FindHoldingForUpdate(ctx context.Context, tx pgx.Tx, userID, symbol string) (*domain.Holding, error)

	// UpsertHolding writes the holding keyed on (user, symbol).
	UpsertHolding(ctx context.Context, tx pgx.Tx, holding domain.Holding) error
}

// PortfolioRepositoryFacade combines all portfolio repository interfaces
type PortfolioRepositoryFacade interface {
	PortfolioReader
	PortfolioWriter
}

// PortfolioRepositoryWithTx extends PortfolioRepositoryFacade with transaction capabilities
type PortfolioRepositoryWithTx interface {
	PortfolioRepositoryFacade
	TransactionManager
}
