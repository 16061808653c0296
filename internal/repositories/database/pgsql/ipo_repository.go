package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ipo_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/ipo_ledger/internal/models"
	"github.com/SscSPs/ipo_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxIPORepository persists IPOs and drives their time-based status changes.
type PgxIPORepository struct {
	BaseRepository
}

func newPgxIPORepository(pool *pgxpool.Pool) *PgxIPORepository {
	return &PgxIPORepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.IPORepositoryWithTx = (*PgxIPORepository)(nil)

const ipoColumns = `
	ipo_id, symbol, company_name, currency_code, price_min, price_max, lot_size, total_shares,
	start_date, end_date, listing_date, status,
	created_at, created_by, last_updated_at, last_updated_by`

func scanIPO(row pgx.Row) (models.IPO, error) {
	var m models.IPO
	err := row.Scan(
		&m.IPOID, &m.Symbol, &m.CompanyName, &m.CurrencyCode, &m.PriceMin, &m.PriceMax, &m.LotSize, &m.TotalShares,
		&m.StartDate, &m.EndDate, &m.ListingDate, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// SaveIPO inserts a new IPO.
func (r *PgxIPORepository) SaveIPO(ctx context.Context, ipo domain.IPO) error {
	m := mapping.ToModelIPO(ipo)
	query := `INSERT INTO ipos (` + ipoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);`

	_, err := r.Pool.Exec(ctx, query,
		m.IPOID, m.Symbol, m.CompanyName, m.CurrencyCode, m.PriceMin, m.PriceMax, m.LotSize, m.TotalShares,
		m.StartDate, m.EndDate, m.ListingDate, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "failed to insert ipo "+m.Symbol)
	}
	return nil
}

// FindIPOByID retrieves an IPO by ID.
func (r *PgxIPORepository) FindIPOByID(ctx context.Context, ipoID string) (*domain.IPO, error) {
	return r.findIPO(ctx, r.Pool, ipoID, "")
}

// FindIPOByIDForShare reads the IPO with a shared row lock held until tx ends.
func (r *PgxIPORepository) FindIPOByIDForShare(ctx context.Context, tx pgx.Tx, ipoID string) (*domain.IPO, error) {
	return r.findIPO(ctx, tx, ipoID, " FOR SHARE")
}

// FindIPOByIDInTx reads the IPO inside tx.
func (r *PgxIPORepository) FindIPOByIDInTx(ctx context.Context, tx pgx.Tx, ipoID string) (*domain.IPO, error) {
	return r.findIPO(ctx, tx, ipoID, "")
}

func (r *PgxIPORepository) findIPO(ctx context.Context, q querier, ipoID, lockClause string) (*domain.IPO, error) {
	query := `SELECT ` + ipoColumns + ` FROM ipos WHERE ipo_id = $1` + lockClause
	m, err := scanIPO(q.QueryRow(ctx, query, ipoID))
	if err != nil {
		return nil, mapError(err, "ipo "+ipoID+" not found")
	}
	d := mapping.ToDomainIPO(m)
	return &d, nil
}

// ListIPOs lists IPOs by start date, optionally filtered by status.
func (r *PgxIPORepository) ListIPOs(ctx context.Context, status *domain.IPOStatus) ([]domain.IPO, error) {
	query := `SELECT ` + ipoColumns + ` FROM ipos`
	args := []any{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, string(*status))
	}
	query += ` ORDER BY start_date DESC, ipo_id`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "failed to list ipos")
	}
	defer rows.Close()

	ms := []models.IPO{}
	for rows.Next() {
		m, err := scanIPO(rows)
		if err != nil {
			return nil, mapError(err, "failed to scan ipo")
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating ipos")
	}
	return mapping.ToDomainIPOSlice(ms), nil
}

// ListIPOIDsDueForClose returns ongoing IPOs past their end date, oldest first.
func (r *PgxIPORepository) ListIPOIDsDueForClose(ctx context.Context, now time.Time) ([]string, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT ipo_id FROM ipos WHERE status = $1 AND end_date < $2 ORDER BY end_date, ipo_id`,
		string(domain.IPOOngoing), now,
	)
	if err != nil {
		return nil, mapError(err, "failed to list ipos due for close")
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, mapError(err, "failed to scan ipo ids")
	}
	return ids, nil
}

// OpenDueIPOs flips upcoming IPOs whose start date has been reached to ongoing.
func (r *PgxIPORepository) OpenDueIPOs(ctx context.Context, now time.Time, actor string) (int64, error) {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE ipos SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE status = $4 AND start_date <= $2`,
		string(domain.IPOOngoing), now, actor, string(domain.IPOUpcoming),
	)
	if err != nil {
		return 0, mapError(err, "failed to open due ipos")
	}
	return tag.RowsAffected(), nil
}

// CloseIPO is the compare-and-set that makes allocation run at most once per IPO.
func (r *PgxIPORepository) CloseIPO(ctx context.Context, tx pgx.Tx, ipoID string, now time.Time, actor string) (bool, error) {
	tag, err := tx.Exec(ctx, `
		UPDATE ipos SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE ipo_id = $4 AND status = $5 AND end_date < $2`,
		string(domain.IPOClosed), now, actor, ipoID, string(domain.IPOOngoing),
	)
	if err != nil {
		return false, mapError(err, "failed to close ipo "+ipoID)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkListedIPOs flips closed IPOs whose listing date has been reached to listed.
func (r *PgxIPORepository) MarkListedIPOs(ctx context.Context, now time.Time, actor string) (int64, error) {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE ipos SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE status = $4 AND listing_date IS NOT NULL AND listing_date <= $2`,
		string(domain.IPOListed), now, actor, string(domain.IPOClosed),
	)
	if err != nil {
		return 0, mapError(err, "failed to mark listed ipos")
	}
	return tag.RowsAffected(), nil
}
