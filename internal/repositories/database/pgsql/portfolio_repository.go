package pgsql

import (
	"context"
	"net/http"
	"strconv"

	"github.com/SscSPs/ipo_ledger/internal/apperrors"
	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ipo_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/ipo_ledger/internal/models"
	"github.com/SscSPs/ipo_ledger/internal/utils/mapping"
	"github.com/SscSPs/ipo_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPortfolioRepository persists holdings and the stock transaction log.
type PgxPortfolioRepository struct {
	BaseRepository
}

func newPgxPortfolioRepository(pool *pgxpool.Pool) *PgxPortfolioRepository {
	return &PgxPortfolioRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PortfolioRepositoryWithTx = (*PgxPortfolioRepository)(nil)

const holdingColumns = `
	portfolio_id, user_id, symbol, quantity, average_price, total_cost,
	created_at, created_by, last_updated_at, last_updated_by`

const stockTransactionColumns = `
	stock_transaction_id, user_id, symbol, subscription_id, type, quantity, price_per_share,
	total_amount, commission, status, transaction_date,
	created_at, created_by, last_updated_at, last_updated_by`

func scanHolding(row pgx.Row) (models.Holding, error) {
	var m models.Holding
	err := row.Scan(
		&m.PortfolioID, &m.UserID, &m.Symbol, &m.Quantity, &m.AveragePrice, &m.TotalCost,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func scanStockTransaction(row pgx.Row) (models.StockTransaction, error) {
	var m models.StockTransaction
	err := row.Scan(
		&m.StockTransactionID, &m.UserID, &m.Symbol, &m.SubscriptionID, &m.Type, &m.Quantity, &m.PricePerShare,
		&m.TotalAmount, &m.Commission, &m.Status, &m.TransactionDate,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// InsertStockTransaction appends to the log. The unique subscription_id makes a
// replay of the same settlement a no-op.
func (r *PgxPortfolioRepository) InsertStockTransaction(ctx context.Context, tx pgx.Tx, st domain.StockTransaction) (bool, error) {
	m := mapping.ToModelStockTransaction(st)
	query := `INSERT INTO stock_transactions (` + stockTransactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (subscription_id) DO NOTHING;`

	tag, err := tx.Exec(ctx, query,
		m.StockTransactionID, m.UserID, m.Symbol, m.SubscriptionID, m.Type, m.Quantity, m.PricePerShare,
		m.TotalAmount, m.Commission, m.Status, m.TransactionDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return false, mapError(err, "failed to insert stock transaction "+m.StockTransactionID)
	}
	return tag.RowsAffected() == 1, nil
}

// FindHoldingForUpdate locks the holding row of (user, symbol).
func (r *PgxPortfolioRepository) FindHoldingForUpdate(ctx context.Context, tx pgx.Tx, userID, symbol string) (*domain.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM portfolios WHERE user_id = $1 AND symbol = $2 FOR UPDATE`
	m, err := scanHolding(tx.QueryRow(ctx, query, userID, symbol))
	if err != nil {
		return nil, mapError(err, "holding "+symbol+" not found for user "+userID)
	}
	d := mapping.ToDomainHolding(m)
	return &d, nil
}

// UpsertHolding writes quantity and cost computed by the caller.
func (r *PgxPortfolioRepository) UpsertHolding(ctx context.Context, tx pgx.Tx, holding domain.Holding) error {
	m := mapping.ToModelHolding(holding)
	query := `INSERT INTO portfolios (` + holdingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id, symbol) DO UPDATE SET
			quantity = EXCLUDED.quantity,
			average_price = EXCLUDED.average_price,
			total_cost = EXCLUDED.total_cost,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;`

	_, err := tx.Exec(ctx, query,
		m.PortfolioID, m.UserID, m.Symbol, m.Quantity, m.AveragePrice, m.TotalCost,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "failed to upsert holding "+m.Symbol+" for user "+m.UserID)
	}
	return nil
}

// ListHoldingsByUser lists every holding row of a user, zero-quantity rows included.
func (r *PgxPortfolioRepository) ListHoldingsByUser(ctx context.Context, userID string) ([]domain.Holding, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+holdingColumns+` FROM portfolios WHERE user_id = $1 ORDER BY symbol`, userID)
	if err != nil {
		return nil, mapError(err, "failed to list holdings for user "+userID)
	}
	defer rows.Close()

	ms := []models.Holding{}
	for rows.Next() {
		m, err := scanHolding(rows)
		if err != nil {
			return nil, mapError(err, "failed to scan holding")
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating holdings")
	}
	return mapping.ToDomainHoldingSlice(ms), nil
}

// ListStockTransactionsByUser lists the user's log newest first using cursor pagination.
func (r *PgxPortfolioRepository) ListStockTransactionsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.StockTransaction, *string, error) {
	limit = pagination.Clamp(limit, 20, 100)
	args := []any{userID}
	query := `SELECT ` + stockTransactionColumns + ` FROM stock_transactions WHERE user_id = $1`

	if nextToken != nil && *nextToken != "" {
		lastDate, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(http.StatusBadRequest, "invalid nextToken", apperrors.ErrValidation)
		}
		query += ` AND (transaction_date, stock_transaction_id) < ($2, $3)`
		args = append(args, lastDate, lastID)
	}
	query += ` ORDER BY transaction_date DESC, stock_transaction_id DESC LIMIT $` + strconv.Itoa(len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, mapError(err, "failed to list stock transactions for user "+userID)
	}
	defer rows.Close()

	ms := []models.StockTransaction{}
	for rows.Next() {
		m, err := scanStockTransaction(rows)
		if err != nil {
			return nil, nil, mapError(err, "failed to scan stock transaction")
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, mapError(err, "error iterating stock transactions")
	}

	var next *string
	if len(ms) > limit {
		last := ms[limit-1]
		token := pagination.EncodeToken(last.TransactionDate, last.StockTransactionID)
		next = &token
		ms = ms[:limit]
	}
	return mapping.ToDomainStockTransactionSlice(ms), next, nil
}
