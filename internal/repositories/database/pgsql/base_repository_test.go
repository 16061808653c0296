package pgsql

import (
	"context"
	"fmt"
	"testing"

	"github.com/SscSPs/ipo_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"no rows", pgx.ErrNoRows, apperrors.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), apperrors.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "currencies_pkey"}, apperrors.ErrDuplicate},
		{"serialization failure", &pgconn.PgError{Code: pgSerializationFailure}, apperrors.ErrConflict},
		{"deadlock", &pgconn.PgError{Code: pgDeadlockDetected}, apperrors.ErrConflict},
		{"deadline", context.DeadlineExceeded, apperrors.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapError(tt.err, "op"), tt.wantErr)
		})
	}
}

func TestMapError_Internal(t *testing.T) {
	err := mapError(&pgconn.PgError{Code: "42P01"}, "op")
	code, status := apperrors.Classify(err)
	assert.Equal(t, apperrors.CodeInternal, code)
	assert.Equal(t, 500, status)
	assert.False(t, apperrors.IsRetryable(err))

	assert.True(t, apperrors.IsRetryable(mapError(&pgconn.PgError{Code: pgSerializationFailure}, "op")))
	assert.NoError(t, mapError(nil, "op"))
}

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "uq_open_subscription"})
	assert.True(t, isUniqueViolation(err, "uq_open_subscription"))
	assert.True(t, isUniqueViolation(err, ""))
	assert.False(t, isUniqueViolation(err, "other"))
	assert.False(t, isUniqueViolation(assert.AnError, ""))
}
