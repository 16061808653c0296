package services

import (
	"context"
	"log/slog"
	"time"

	portsrepo "github.com/SscSPs/ipo_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ipo_ledger/internal/core/ports/services"
	"github.com/SscSPs/ipo_ledger/internal/middleware"
	"github.com/jackc/pgx/v5"
)

// BaseService provides common functionality for all services
type BaseService struct {
	TxManager portsrepo.TransactionManager
	// TxTimeout bounds every transaction opened by RunInTx. Zero means no extra bound.
	TxTimeout time.Duration
	Tracker   portssvc.EventTracker
	Now       func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// CurrentTime returns the service clock, time.Now unless overridden.
func (s *BaseService) CurrentTime() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Track forwards an analytics event when a tracker is configured.
func (s *BaseService) Track(distinctID, event string, properties map[string]any) {
	if s.Tracker == nil {
		return
	}
	s.Tracker.Enqueue(distinctID, event, properties)
}

// RunInTx runs fn inside a serializable transaction bounded by TxTimeout. fn's
// error rolls everything back; otherwise the transaction is committed.
func (s *BaseService) RunInTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	if s.TxTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.TxTimeout)
		defer cancel()
	}

	tx, err := s.TxManager.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored after a successful commit.
	defer func() { _ = s.TxManager.Rollback(ctx, tx) }()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	return s.TxManager.Commit(ctx, tx)
}

// ServiceOption configures the shared parts of a service.
type ServiceOption func(*BaseService)

// WithTxTimeout bounds each transaction a service opens.
func WithTxTimeout(d time.Duration) ServiceOption {
	return func(s *BaseService) {
		s.TxTimeout = d
	}
}

// WithEventTracker adds an analytics sink.
func WithEventTracker(t portssvc.EventTracker) ServiceOption {
	return func(s *BaseService) {
		s.Tracker = t
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.Now = now
	}
}

func newBaseService(txManager portsrepo.TransactionManager, options []ServiceOption) BaseService {
	base := BaseService{TxManager: txManager}
	for _, option := range options {
		option(&base)
	}
	return base
}
