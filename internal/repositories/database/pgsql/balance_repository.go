package pgsql

import (
	"context"

	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ipo_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxBalanceRepository derives balance inputs from deposits and subscriptions.
// There is no balance table.
type PgxBalanceRepository struct {
	BaseRepository
}

func newPgxBalanceRepository(pool *pgxpool.Pool) *PgxBalanceRepository {
	return &PgxBalanceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.BalanceReader = (*PgxBalanceRepository)(nil)

// balanceComponentsQuery runs as one statement so the three sums share a snapshot.
// $2 is the subscription whose reservation is left out, '' for none.
const balanceComponentsQuery = `
	SELECT 'deposits' AS kind, d.currency_code, COALESCE(SUM(d.amount), 0)
	FROM deposits d
	WHERE d.user_id = $1 AND d.status = 'approved'
	GROUP BY d.currency_code

	UNION ALL

	SELECT 'spent' AS kind, i.currency_code, COALESCE(SUM(s.allocation_amount), 0)
	FROM ipo_subscriptions s
	JOIN ipos i ON i.ipo_id = s.ipo_id
	WHERE s.user_id = $1 AND s.status = 'allocated'
	GROUP BY i.currency_code

	UNION ALL

	SELECT 'reserved' AS kind, i.currency_code, COALESCE(SUM(s.total_amount), 0)
	FROM ipo_subscriptions s
	JOIN ipos i ON i.ipo_id = s.ipo_id
	WHERE s.user_id = $1 AND s.status IN ('pending', 'confirmed') AND s.subscription_id <> $2
	GROUP BY i.currency_code`

// SumBalanceComponents reads all components from the pool.
func (r *PgxBalanceRepository) SumBalanceComponents(ctx context.Context, userID string) ([]domain.BalanceComponent, error) {
	return r.sumComponents(ctx, r.Pool, userID, "")
}

// SumBalanceComponentsInTx reads all components inside tx.
func (r *PgxBalanceRepository) SumBalanceComponentsInTx(ctx context.Context, tx pgx.Tx, userID, excludeSubscriptionID string) ([]domain.BalanceComponent, error) {
	return r.sumComponents(ctx, tx, userID, excludeSubscriptionID)
}

func (r *PgxBalanceRepository) sumComponents(ctx context.Context, q querier, userID, excludeSubscriptionID string) ([]domain.BalanceComponent, error) {
	rows, err := q.Query(ctx, balanceComponentsQuery, userID, excludeSubscriptionID)
	if err != nil {
		return nil, mapError(err, "failed to sum balance components for user "+userID)
	}
	defer rows.Close()

	components := []domain.BalanceComponent{}
	for rows.Next() {
		var (
			kind     string
			currency string
			amount   decimal.Decimal
		)
		if err := rows.Scan(&kind, &currency, &amount); err != nil {
			return nil, mapError(err, "failed to scan balance component")
		}
		components = append(components, domain.BalanceComponent{
			Kind:         domain.BalanceComponentKind(kind),
			CurrencyCode: currency,
			Amount:       amount,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating balance components")
	}
	return components, nil
}
