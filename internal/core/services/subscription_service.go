package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ipo_ledger/internal/apperrors"
	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ipo_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ipo_ledger/internal/core/ports/services"
	"github.com/SscSPs/ipo_ledger/internal/dto"
	"github.com/SscSPs/ipo_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// subscriptionService is the reservation manager. Every mutation runs in a
// serializable transaction that first takes the user's advisory lock, so the
// balance check and the write that depends on it cannot interleave with another
// reservation change of the same user.
type subscriptionService struct {
	BaseService
	subRepo    portsrepo.SubscriptionRepositoryFacade
	ipoRepo    portsrepo.IPORepositoryFacade
	balanceSvc portssvc.BalanceSvcFacade
	rateSvc    portssvc.CurrencyRateReaderSvc
}

// NewSubscriptionService creates the subscription reservation manager.
func NewSubscriptionService(
	txManager portsrepo.TransactionManager,
	subRepo portsrepo.SubscriptionRepositoryFacade,
	ipoRepo portsrepo.IPORepositoryFacade,
	balanceSvc portssvc.BalanceSvcFacade,
	rateSvc portssvc.CurrencyRateReaderSvc,
	options ...ServiceOption,
) portssvc.SubscriptionSvcFacade {
	return &subscriptionService{
		BaseService: newBaseService(txManager, options),
		subRepo:     subRepo,
		ipoRepo:     ipoRepo,
		balanceSvc:  balanceSvc,
		rateSvc:     rateSvc,
	}
}

var _ portssvc.SubscriptionSvcFacade = (*subscriptionService)(nil)

func (s *subscriptionService) Subscribe(ctx context.Context, userID string, req dto.CreateSubscriptionRequest) (*domain.Subscription, error) {
	now := s.CurrentTime()
	var created domain.Subscription

	err := s.RunInTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.subRepo.LockUser(ctx, tx, userID); err != nil {
			return err
		}

		ipo, err := s.ipoRepo.FindIPOByIDForShare(ctx, tx, req.IPOID)
		if err != nil {
			return err
		}
		if err := ipo.ValidateOrder(req.Quantity, req.PricePerShare, now); err != nil {
			return err
		}

		open, err := s.subRepo.HasOpenSubscription(ctx, tx, userID, ipo.IPOID)
		if err != nil {
			return err
		}
		if open {
			return fmt.Errorf("%w: user already has an open subscription for %s", apperrors.ErrDuplicateSubscription, ipo.Symbol)
		}

		orderValue := accounting.OrderValue(req.Quantity, req.PricePerShare)
		if err := s.ensureAvailable(ctx, tx, userID, "", orderValue, ipo.CurrencyCode); err != nil {
			return err
		}

		created = domain.Subscription{
			SubscriptionID:   uuid.NewString(),
			UserID:           userID,
			IPOID:            ipo.IPOID,
			Quantity:         req.Quantity,
			PricePerShare:    req.PricePerShare,
			TotalAmount:      orderValue,
			Status:           domain.SubscriptionPending,
			AllocationAmount: decimal.Zero,
			SubmittedAt:      now,
			AuditFields:      domain.NewAuditFields(userID, now),
		}
		return s.subRepo.InsertSubscription(ctx, tx, created)
	})
	if err != nil {
		s.logFailure(ctx, err, "Subscription rejected", slog.String("ipo_id", req.IPOID))
		return nil, err
	}

	s.LogInfo(ctx, "Subscription created", slog.String("subscription_id", created.SubscriptionID),
		slog.String("ipo_id", created.IPOID), slog.Int64("quantity", created.Quantity),
		slog.String("total_amount", created.TotalAmount.String()))
	s.Track(userID, "subscription_created", map[string]any{
		"subscription_id": created.SubscriptionID,
		"ipo_id":          created.IPOID,
		"quantity":        created.Quantity,
		"total_amount":    created.TotalAmount.String(),
	})
	return &created, nil
}

func (s *subscriptionService) Cancel(ctx context.Context, subscriptionID, userID string) (*domain.Subscription, error) {
	now := s.CurrentTime()
	var cancelled *domain.Subscription

	err := s.RunInTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.subRepo.LockUser(ctx, tx, userID); err != nil {
			return err
		}
		sub, err := s.findOwnedForUpdate(ctx, tx, subscriptionID, userID)
		if err != nil {
			return err
		}
		if err := sub.Cancel(userID, now); err != nil {
			return err
		}
		if err := s.subRepo.UpdateSubscription(ctx, tx, *sub); err != nil {
			return err
		}
		cancelled = sub
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Subscription cancel failed", slog.String("subscription_id", subscriptionID))
		return nil, err
	}

	s.LogInfo(ctx, "Subscription cancelled", slog.String("subscription_id", subscriptionID))
	s.Track(userID, "subscription_cancelled", map[string]any{"subscription_id": subscriptionID, "ipo_id": cancelled.IPOID})
	return cancelled, nil
}

// Amend re-runs the order checks against the new terms. The balance check leaves
// out the row's current reservation, which the new one replaces.
func (s *subscriptionService) Amend(ctx context.Context, subscriptionID, userID string, req dto.AmendSubscriptionRequest) (*domain.Subscription, error) {
	now := s.CurrentTime()
	var amended *domain.Subscription

	err := s.RunInTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.subRepo.LockUser(ctx, tx, userID); err != nil {
			return err
		}
		sub, err := s.findOwnedForUpdate(ctx, tx, subscriptionID, userID)
		if err != nil {
			return err
		}
		if err := sub.Amend(req.Quantity, req.PricePerShare, userID, now); err != nil {
			return err
		}

		ipo, err := s.ipoRepo.FindIPOByIDForShare(ctx, tx, sub.IPOID)
		if err != nil {
			return err
		}
		if err := ipo.ValidateOrder(sub.Quantity, sub.PricePerShare, now); err != nil {
			return err
		}
		if err := s.ensureAvailable(ctx, tx, userID, sub.SubscriptionID, sub.TotalAmount, ipo.CurrencyCode); err != nil {
			return err
		}

		if err := s.subRepo.UpdateSubscription(ctx, tx, *sub); err != nil {
			return err
		}
		amended = sub
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Subscription amend failed", slog.String("subscription_id", subscriptionID))
		return nil, err
	}

	s.LogInfo(ctx, "Subscription amended", slog.String("subscription_id", subscriptionID),
		slog.Int64("quantity", amended.Quantity), slog.String("total_amount", amended.TotalAmount.String()))
	s.Track(userID, "subscription_amended", map[string]any{"subscription_id": subscriptionID, "quantity": amended.Quantity})
	return amended, nil
}

// Confirm does not change the reserved amount, so it only locks the row.
func (s *subscriptionService) Confirm(ctx context.Context, subscriptionID, adminID string) (*domain.Subscription, error) {
	now := s.CurrentTime()
	var confirmed *domain.Subscription

	err := s.RunInTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sub, err := s.subRepo.FindSubscriptionByIDForUpdate(ctx, tx, subscriptionID)
		if err != nil {
			return err
		}
		if err := sub.Confirm(adminID, now); err != nil {
			return err
		}
		if err := s.subRepo.UpdateSubscription(ctx, tx, *sub); err != nil {
			return err
		}
		confirmed = sub
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Subscription confirm failed", slog.String("subscription_id", subscriptionID))
		return nil, err
	}

	s.LogInfo(ctx, "Subscription confirmed", slog.String("subscription_id", subscriptionID))
	s.Track(adminID, "subscription_confirmed", map[string]any{"subscription_id": subscriptionID})
	return confirmed, nil
}

func (s *subscriptionService) GetSubscription(ctx context.Context, subscriptionID, userID string) (*domain.Subscription, error) {
	sub, err := s.subRepo.FindSubscriptionByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.UserID != userID {
		return nil, apperrors.NewNotFoundError("subscription " + subscriptionID + " not found")
	}
	return sub, nil
}

func (s *subscriptionService) ListSubscriptionsByUser(ctx context.Context, userID string) ([]domain.Subscription, error) {
	subs, err := s.subRepo.ListSubscriptionsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list subscriptions", slog.String("user_id", userID))
		return nil, err
	}
	if subs == nil {
		return []domain.Subscription{}, nil
	}
	return subs, nil
}

func (s *subscriptionService) findOwnedForUpdate(ctx context.Context, tx pgx.Tx, subscriptionID, userID string) (*domain.Subscription, error) {
	sub, err := s.subRepo.FindSubscriptionByIDForUpdate(ctx, tx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.UserID != userID {
		return nil, apperrors.NewNotFoundError("subscription " + subscriptionID + " not found")
	}
	return sub, nil
}

// ensureAvailable converts the order value from the IPO currency into the user's
// base currency and compares it with the available balance read inside tx.
func (s *subscriptionService) ensureAvailable(ctx context.Context, tx pgx.Tx, userID, excludeSubscriptionID string, orderValue decimal.Decimal, ipoCurrency string) error {
	balance, err := s.balanceSvc.GetBalanceInTx(ctx, tx, userID, excludeSubscriptionID)
	if err != nil {
		return err
	}
	required, err := s.rateSvc.Convert(ctx, orderValue, ipoCurrency, balance.CurrencyCode)
	if err != nil {
		return err
	}
	if balance.Available.LessThan(required) {
		return fmt.Errorf("%w: available %s %s, required %s", apperrors.ErrInsufficientBalance,
			balance.Available.String(), balance.CurrencyCode, required.String())
	}
	return nil
}

// logFailure keeps expected business rejections at debug level.
func (s *subscriptionService) logFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	code, _ := apperrors.Classify(err)
	if code == apperrors.CodeInternal || errors.Is(err, apperrors.ErrConflict) {
		s.LogError(ctx, err, msg, keyvals...)
		return
	}
	s.LogDebug(ctx, msg, append(keyvals, slog.String("reason", err.Error()))...)
}
