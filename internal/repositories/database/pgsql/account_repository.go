package pgsql

import (
	"context"

	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ipo_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/ipo_ledger/internal/models"
	"github.com/SscSPs/ipo_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxInvestorAccountRepository persists per-user ledger settings.
type PgxInvestorAccountRepository struct {
	BaseRepository
}

func newPgxInvestorAccountRepository(pool *pgxpool.Pool) *PgxInvestorAccountRepository {
	return &PgxInvestorAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InvestorAccountRepositoryFacade = (*PgxInvestorAccountRepository)(nil)

// FindInvestorAccount retrieves the account settings of a user.
func (r *PgxInvestorAccountRepository) FindInvestorAccount(ctx context.Context, userID string) (*domain.InvestorAccount, error) {
	query := `
		SELECT user_id, base_currency_code, created_at, created_by, last_updated_at, last_updated_by
		FROM investor_accounts
		WHERE user_id = $1;
	`
	var m models.InvestorAccount
	err := r.Pool.QueryRow(ctx, query, userID).Scan(
		&m.UserID,
		&m.BaseCurrencyCode,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapError(err, "investor account for user "+userID+" not found")
	}

	d := mapping.ToDomainInvestorAccount(m)
	return &d, nil
}

// SaveInvestorAccount inserts the account or updates its base currency.
func (r *PgxInvestorAccountRepository) SaveInvestorAccount(ctx context.Context, account domain.InvestorAccount) error {
	m := mapping.ToModelInvestorAccount(account)
	query := `
		INSERT INTO investor_accounts (user_id, base_currency_code, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			base_currency_code = EXCLUDED.base_currency_code,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID, m.BaseCurrencyCode, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "failed to save investor account for user "+m.UserID)
	}
	return nil
}
