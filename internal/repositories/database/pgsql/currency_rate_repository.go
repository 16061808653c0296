package pgsql

import (
	"context"
	"strings"

	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ipo_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/ipo_ledger/internal/models"
	"github.com/SscSPs/ipo_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxCurrencyRateRepository stores directed currency rates.
type PgxCurrencyRateRepository struct {
	BaseRepository
}

func newPgxCurrencyRateRepository(pool *pgxpool.Pool) *PgxCurrencyRateRepository {
	return &PgxCurrencyRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CurrencyRateRepositoryFacade = (*PgxCurrencyRateRepository)(nil)

const currencyRateColumns = `
	currency_rate_id, from_currency_code, to_currency_code, rate, is_active, is_manual, updated_by,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCurrencyRate(row pgx.Row) (models.CurrencyRate, error) {
	var m models.CurrencyRate
	err := row.Scan(
		&m.CurrencyRateID, &m.FromCurrencyCode, &m.ToCurrencyCode,
		&m.Rate, &m.IsActive, &m.IsManual, &m.UpdatedBy,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// UpsertCurrencyRate inserts or updates the (from, to) pair. On update the original
// ID and creation audit are kept.
func (r *PgxCurrencyRateRepository) UpsertCurrencyRate(ctx context.Context, rate domain.CurrencyRate) (*domain.CurrencyRate, error) {
	m := mapping.ToModelCurrencyRate(rate)
	m.FromCurrencyCode = strings.ToUpper(m.FromCurrencyCode)
	m.ToCurrencyCode = strings.ToUpper(m.ToCurrencyCode)

	query := `
		INSERT INTO currency_rates (` + currencyRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (from_currency_code, to_currency_code) DO UPDATE SET
			rate = EXCLUDED.rate,
			is_active = EXCLUDED.is_active,
			is_manual = EXCLUDED.is_manual,
			updated_by = EXCLUDED.updated_by,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		RETURNING ` + currencyRateColumns + `;`

	stored, err := scanCurrencyRate(r.Pool.QueryRow(ctx, query,
		m.CurrencyRateID, m.FromCurrencyCode, m.ToCurrencyCode,
		m.Rate, m.IsActive, m.IsManual, m.UpdatedBy,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	))
	if err != nil {
		return nil, mapError(err, "failed to upsert currency rate "+m.FromCurrencyCode+"->"+m.ToCurrencyCode)
	}

	d := mapping.ToDomainCurrencyRate(stored)
	return &d, nil
}

// FindActiveRate retrieves the active directed rate for a pair.
func (r *PgxCurrencyRateRepository) FindActiveRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.CurrencyRate, error) {
	return r.findRate(ctx, fromCurrencyCode, toCurrencyCode, true)
}

// FindRate retrieves the directed rate for a pair whether or not it is active.
func (r *PgxCurrencyRateRepository) FindRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.CurrencyRate, error) {
	return r.findRate(ctx, fromCurrencyCode, toCurrencyCode, false)
}

func (r *PgxCurrencyRateRepository) findRate(ctx context.Context, fromCurrency, toCurrency string, activeOnly bool) (*domain.CurrencyRate, error) {
	fromCurrency = strings.ToUpper(fromCurrency)
	toCurrency = strings.ToUpper(toCurrency)

	query := `SELECT ` + currencyRateColumns + `
		FROM currency_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2`
	if activeOnly {
		query += ` AND is_active`
	}

	m, err := scanCurrencyRate(r.Pool.QueryRow(ctx, query, fromCurrency, toCurrency))
	if err != nil {
		return nil, mapError(err, "currency rate "+fromCurrency+"->"+toCurrency+" not found")
	}

	d := mapping.ToDomainCurrencyRate(m)
	return &d, nil
}

// ListCurrencyRates retrieves all stored rates.
func (r *PgxCurrencyRateRepository) ListCurrencyRates(ctx context.Context) ([]domain.CurrencyRate, error) {
	query := `SELECT ` + currencyRateColumns + ` FROM currency_rates ORDER BY from_currency_code, to_currency_code`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, mapError(err, "failed to list currency rates")
	}
	defer rows.Close()

	rates := []domain.CurrencyRate{}
	for rows.Next() {
		m, err := scanCurrencyRate(rows)
		if err != nil {
			return nil, mapError(err, "failed to scan currency rate")
		}
		rates = append(rates, mapping.ToDomainCurrencyRate(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating currency rates")
	}
	return rates, nil
}
