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

// PgxDepositRepository persists deposits.
type PgxDepositRepository struct {
	BaseRepository
}

func newPgxDepositRepository(pool *pgxpool.Pool) *PgxDepositRepository {
	return &PgxDepositRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DepositRepositoryWithTx = (*PgxDepositRepository)(nil)

const depositColumns = `
	deposit_id, user_id, amount, currency_code, method, status,
	reviewed_by, reviewed_at, rejection_reason,
	created_at, created_by, last_updated_at, last_updated_by`

func scanDeposit(row pgx.Row) (models.Deposit, error) {
	var m models.Deposit
	err := row.Scan(
		&m.DepositID, &m.UserID, &m.Amount, &m.CurrencyCode, &m.Method, &m.Status,
		&m.ReviewedBy, &m.ReviewedAt, &m.RejectionReason,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func collectDeposits(rows pgx.Rows) ([]models.Deposit, error) {
	defer rows.Close()
	out := []models.Deposit{}
	for rows.Next() {
		m, err := scanDeposit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SaveDeposit inserts a new deposit.
func (r *PgxDepositRepository) SaveDeposit(ctx context.Context, deposit domain.Deposit) error {
	m := mapping.ToModelDeposit(deposit)
	query := `INSERT INTO deposits (` + depositColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`

	_, err := r.Pool.Exec(ctx, query,
		m.DepositID, m.UserID, m.Amount, m.CurrencyCode, m.Method, m.Status,
		m.ReviewedBy, m.ReviewedAt, m.RejectionReason,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "failed to insert deposit "+m.DepositID)
	}
	return nil
}

// FindDepositByID retrieves a deposit by ID.
func (r *PgxDepositRepository) FindDepositByID(ctx context.Context, depositID string) (*domain.Deposit, error) {
	return r.findDeposit(ctx, r.Pool, depositID, "")
}

// FindDepositByIDForUpdate retrieves and row-locks a deposit inside tx.
func (r *PgxDepositRepository) FindDepositByIDForUpdate(ctx context.Context, tx pgx.Tx, depositID string) (*domain.Deposit, error) {
	return r.findDeposit(ctx, tx, depositID, " FOR UPDATE")
}

func (r *PgxDepositRepository) findDeposit(ctx context.Context, q querier, depositID, lockClause string) (*domain.Deposit, error) {
	query := `SELECT ` + depositColumns + ` FROM deposits WHERE deposit_id = $1` + lockClause
	m, err := scanDeposit(q.QueryRow(ctx, query, depositID))
	if err != nil {
		return nil, mapError(err, "deposit "+depositID+" not found")
	}
	d := mapping.ToDomainDeposit(m)
	return &d, nil
}

// UpdateDepositReview writes the review outcome. The status guard makes a second
// writer that skipped the row lock fail instead of overwriting a terminal state.
func (r *PgxDepositRepository) UpdateDepositReview(ctx context.Context, tx pgx.Tx, deposit domain.Deposit) error {
	m := mapping.ToModelDeposit(deposit)
	query := `
		UPDATE deposits
		SET status = $1, reviewed_by = $2, reviewed_at = $3, rejection_reason = $4,
			last_updated_at = $5, last_updated_by = $6
		WHERE deposit_id = $7 AND status = $8;
	`
	tag, err := tx.Exec(ctx, query,
		m.Status, m.ReviewedBy, m.ReviewedAt, m.RejectionReason,
		m.LastUpdatedAt, m.LastUpdatedBy,
		m.DepositID, string(domain.DepositPending),
	)
	if err != nil {
		return mapError(err, "failed to update deposit "+m.DepositID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(0, "deposit "+m.DepositID+" is no longer pending", apperrors.ErrInvalidStateTransition)
	}
	return nil
}

// ListDepositsByUser lists a user's deposits newest first using cursor pagination.
func (r *PgxDepositRepository) ListDepositsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Deposit, *string, error) {
	limit = pagination.Clamp(limit, 20, 100)
	args := []any{userID}
	query := `SELECT ` + depositColumns + ` FROM deposits WHERE user_id = $1`

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(http.StatusBadRequest, "invalid nextToken", apperrors.ErrValidation)
		}
		query += ` AND (created_at, deposit_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastID)
	}
	// Fetch one extra row to learn whether another page exists.
	query += ` ORDER BY created_at DESC, deposit_id DESC LIMIT $` + strconv.Itoa(len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, mapError(err, "failed to list deposits for user "+userID)
	}
	ms, err := collectDeposits(rows)
	if err != nil {
		return nil, nil, mapError(err, "failed to scan deposits for user "+userID)
	}

	var next *string
	if len(ms) > limit {
		last := ms[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.DepositID)
		next = &token
		ms = ms[:limit]
	}
	return mapping.ToDomainDepositSlice(ms), next, nil
}

// ListDepositsByStatus lists deposits in a status, oldest first.
func (r *PgxDepositRepository) ListDepositsByStatus(ctx context.Context, status domain.DepositStatus, limit int) ([]domain.Deposit, error) {
	limit = pagination.Clamp(limit, 50, 500)
	query := `SELECT ` + depositColumns + ` FROM deposits WHERE status = $1 ORDER BY created_at, deposit_id LIMIT $2`

	rows, err := r.Pool.Query(ctx, query, string(status), limit)
	if err != nil {
		return nil, mapError(err, "failed to list deposits by status")
	}
	ms, err := collectDeposits(rows)
	if err != nil {
		return nil, mapError(err, "failed to scan deposits")
	}
	return mapping.ToDomainDepositSlice(ms), nil
}
