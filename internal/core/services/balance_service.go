package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ipo_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ipo_ledger/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// balanceService is the ledger. There is no stored balance: every call sums approved
// deposits, allocated spend and open reservations from one snapshot.
type balanceService struct {
	BaseService
	balanceRepo portsrepo.BalanceReader
	accountSvc  portssvc.AccountReaderSvc
	rateSvc     portssvc.CurrencyRateReaderSvc
}

// NewBalanceService creates the balance ledger.
func NewBalanceService(balanceRepo portsrepo.BalanceReader, accountSvc portssvc.AccountReaderSvc, rateSvc portssvc.CurrencyRateReaderSvc, options ...ServiceOption) portssvc.BalanceSvcFacade {
	return &balanceService{
		BaseService: newBaseService(nil, options),
		balanceRepo: balanceRepo,
		accountSvc:  accountSvc,
		rateSvc:     rateSvc,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

func (s *balanceService) GetBalance(ctx context.Context, userID string) (*domain.Balance, error) {
	base, err := s.accountSvc.BaseCurrency(ctx, userID)
	if err != nil {
		return nil, err
	}
	components, err := s.balanceRepo.SumBalanceComponents(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum balance components", slog.String("user_id", userID))
		return nil, err
	}
	return s.derive(ctx, userID, base, components)
}

func (s *balanceService) GetBalanceInTx(ctx context.Context, tx pgx.Tx, userID, excludeSubscriptionID string) (*domain.Balance, error) {
	base, err := s.accountSvc.BaseCurrency(ctx, userID)
	if err != nil {
		return nil, err
	}
	components, err := s.balanceRepo.SumBalanceComponentsInTx(ctx, tx, userID, excludeSubscriptionID)
	if err != nil {
		return nil, err
	}
	return s.derive(ctx, userID, base, components)
}

// derive converts each per-currency sum into the base currency.
// available = total - reserved and is reported as is, even when negative.
func (s *balanceService) derive(ctx context.Context, userID, baseCurrency string, components []domain.BalanceComponent) (*domain.Balance, error) {
	balance := &domain.Balance{
		UserID:       userID,
		CurrencyCode: baseCurrency,
		Total:        decimal.Zero,
		Reserved:     decimal.Zero,
	}

	for _, c := range components {
		amount, err := s.rateSvc.Convert(ctx, c.Amount, c.CurrencyCode, baseCurrency)
		if err != nil {
			return nil, fmt.Errorf("failed to convert %s %s balance to %s: %w", c.Kind, c.CurrencyCode, baseCurrency, err)
		}
		switch c.Kind {
		case domain.ComponentApprovedDeposits:
			balance.Total = balance.Total.Add(amount)
		case domain.ComponentAllocatedSpend:
			balance.Total = balance.Total.Sub(amount)
		case domain.ComponentReserved:
			balance.Reserved = balance.Reserved.Add(amount)
		default:
			return nil, fmt.Errorf("unknown balance component '%s'", c.Kind)
		}
	}

	balance.Available = balance.Total.Sub(balance.Reserved)
	if balance.Available.IsNegative() {
		s.LogInfo(ctx, "Available balance is negative", slog.String("user_id", userID), slog.String("available", balance.Available.String()))
	}
	return balance, nil
}
