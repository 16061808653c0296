package pgsql

import (
	"context"

	"github.com/SscSPs/ipo_ledger/internal/apperrors"
	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ipo_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/ipo_ledger/internal/models"
	"github.com/SscSPs/ipo_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// openSubscriptionIndex is the partial unique index on (user_id, ipo_id) for reserving rows.
const openSubscriptionIndex = "uq_ipo_subscriptions_open"

// PgxSubscriptionRepository persists IPO subscriptions.
type PgxSubscriptionRepository struct {
	BaseRepository
}

func newPgxSubscriptionRepository(pool *pgxpool.Pool) *PgxSubscriptionRepository {
	return &PgxSubscriptionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SubscriptionRepositoryWithTx = (*PgxSubscriptionRepository)(nil)

const subscriptionColumns = `
	subscription_id, user_id, ipo_id, quantity, price_per_share, total_amount, status, status_reason,
	allocation_quantity, allocation_amount, submitted_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanSubscription(row pgx.Row) (models.Subscription, error) {
	var m models.Subscription
	err := row.Scan(
		&m.SubscriptionID, &m.UserID, &m.IPOID, &m.Quantity, &m.PricePerShare, &m.TotalAmount, &m.Status, &m.StatusReason,
		&m.AllocationQuantity, &m.AllocationAmount, &m.SubmittedAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxSubscriptionRepository) querySubscriptions(ctx context.Context, q querier, query string, args ...any) ([]domain.Subscription, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "failed to query subscriptions")
	}
	defer rows.Close()

	ms := []models.Subscription{}
	for rows.Next() {
		m, err := scanSubscription(rows)
		if err != nil {
			return nil, mapError(err, "failed to scan subscription")
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "error iterating subscriptions")
	}
	return mapping.ToDomainSubscriptionSlice(ms), nil
}

// LockUser serialises reservation changes of one user for the lifetime of tx.
func (r *PgxSubscriptionRepository) LockUser(ctx context.Context, tx pgx.Tx, userID string) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('user:' || $1))`, userID); err != nil {
		return mapError(err, "failed to lock user "+userID)
	}
	return nil
}

// HasOpenSubscription checks for a pending or confirmed subscription of the user on the IPO.
func (r *PgxSubscriptionRepository) HasOpenSubscription(ctx context.Context, tx pgx.Tx, userID, ipoID string) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM ipo_subscriptions
			WHERE user_id = $1 AND ipo_id = $2 AND status IN ('pending', 'confirmed')
		)`, userID, ipoID,
	).Scan(&exists)
	if err != nil {
		return false, mapError(err, "failed to check open subscriptions")
	}
	return exists, nil
}

// InsertSubscription inserts a new subscription row.
func (r *PgxSubscriptionRepository) InsertSubscription(ctx context.Context, tx pgx.Tx, subscription domain.Subscription) error {
	m := mapping.ToModelSubscription(subscription)
	query := `INSERT INTO ipo_subscriptions (` + subscriptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);`

	_, err := tx.Exec(ctx, query,
		m.SubscriptionID, m.UserID, m.IPOID, m.Quantity, m.PricePerShare, m.TotalAmount, m.Status, m.StatusReason,
		m.AllocationQuantity, m.AllocationAmount, m.SubmittedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, openSubscriptionIndex) {
			return apperrors.NewAppError(0, "user already has an open subscription for ipo "+m.IPOID, apperrors.ErrDuplicateSubscription)
		}
		return mapError(err, "failed to insert subscription "+m.SubscriptionID)
	}
	return nil
}

// FindSubscriptionByID retrieves a subscription by ID.
func (r *PgxSubscriptionRepository) FindSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.Subscription, error) {
	return r.findSubscription(ctx, r.Pool, subscriptionID, "")
}

// FindSubscriptionByIDForUpdate retrieves and row-locks a subscription inside tx.
func (r *PgxSubscriptionRepository) FindSubscriptionByIDForUpdate(ctx context.Context, tx pgx.Tx, subscriptionID string) (*domain.Subscription, error) {
	return r.findSubscription(ctx, tx, subscriptionID, " FOR UPDATE")
}

func (r *PgxSubscriptionRepository) findSubscription(ctx context.Context, q querier, subscriptionID, lockClause string) (*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM ipo_subscriptions WHERE subscription_id = $1` + lockClause
	m, err := scanSubscription(q.QueryRow(ctx, query, subscriptionID))
	if err != nil {
		return nil, mapError(err, "subscription "+subscriptionID+" not found")
	}
	d := mapping.ToDomainSubscription(m)
	return &d, nil
}

// UpdateSubscription writes the mutable fields of a subscription.
func (r *PgxSubscriptionRepository) UpdateSubscription(ctx context.Context, tx pgx.Tx, subscription domain.Subscription) error {
	m := mapping.ToModelSubscription(subscription)
	tag, err := tx.Exec(ctx, `
		UPDATE ipo_subscriptions
		SET quantity = $1, price_per_share = $2, total_amount = $3, status = $4, status_reason = $5,
			allocation_quantity = $6, allocation_amount = $7, submitted_at = $8, last_updated_at = $9, last_updated_by = $10
		WHERE subscription_id = $11`,
		m.Quantity, m.PricePerShare, m.TotalAmount, m.Status, m.StatusReason,
		m.AllocationQuantity, m.AllocationAmount, m.SubmittedAt, m.LastUpdatedAt, m.LastUpdatedBy,
		m.SubscriptionID,
	)
	if err != nil {
		return mapError(err, "failed to update subscription "+m.SubscriptionID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("subscription " + m.SubscriptionID + " not found")
	}
	return nil
}

// ListSubscriptionsByUser lists a user's subscriptions newest first.
func (r *PgxSubscriptionRepository) ListSubscriptionsByUser(ctx context.Context, userID string) ([]domain.Subscription, error) {
	return r.querySubscriptions(ctx, r.Pool,
		`SELECT `+subscriptionColumns+` FROM ipo_subscriptions WHERE user_id = $1 ORDER BY created_at DESC, subscription_id`,
		userID,
	)
}

// ListReservingByIPOForUpdate locks all pending/confirmed rows of an IPO.
func (r *PgxSubscriptionRepository) ListReservingByIPOForUpdate(ctx context.Context, tx pgx.Tx, ipoID string) ([]domain.Subscription, error) {
	return r.querySubscriptions(ctx, tx,
		`SELECT `+subscriptionColumns+` FROM ipo_subscriptions
		WHERE ipo_id = $1 AND status IN ('pending', 'confirmed')
		ORDER BY submitted_at, subscription_id
		FOR UPDATE`,
		ipoID,
	)
}

// ListAllocatedByIPO returns allocated rows of an IPO.
func (r *PgxSubscriptionRepository) ListAllocatedByIPO(ctx context.Context, tx pgx.Tx, ipoID string) ([]domain.Subscription, error) {
	return r.querySubscriptions(ctx, tx,
		`SELECT `+subscriptionColumns+` FROM ipo_subscriptions
		WHERE ipo_id = $1 AND status = 'allocated'
		ORDER BY created_at, subscription_id`,
		ipoID,
	)
}
