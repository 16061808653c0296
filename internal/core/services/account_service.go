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
)

// accountService manages per-user ledger settings.
type accountService struct {
	BaseService
	accountRepo         portsrepo.InvestorAccountRepositoryFacade
	currencySvc         portssvc.CurrencyReaderSvc
	defaultBaseCurrency string
}

// NewAccountService creates the investor account service. defaultBaseCurrency applies
// to users that never chose one.
func NewAccountService(repo portsrepo.InvestorAccountRepositoryFacade, currencySvc portssvc.CurrencyReaderSvc, defaultBaseCurrency string, options ...ServiceOption) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService:         newBaseService(nil, options),
		accountRepo:         repo,
		currencySvc:         currencySvc,
		defaultBaseCurrency: normalizeCode(defaultBaseCurrency),
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) GetInvestorAccount(ctx context.Context, userID string) (*domain.InvestorAccount, error) {
	account, err := s.accountRepo.FindInvestorAccount(ctx, userID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to find investor account", slog.String("user_id", userID))
		return nil, err
	}
	return &domain.InvestorAccount{UserID: userID, BaseCurrencyCode: s.defaultBaseCurrency}, nil
}

func (s *accountService) BaseCurrency(ctx context.Context, userID string) (string, error) {
	account, err := s.GetInvestorAccount(ctx, userID)
	if err != nil {
		return "", err
	}
	return account.BaseCurrencyCode, nil
}

func (s *accountService) SetBaseCurrency(ctx context.Context, userID, currencyCode string) (*domain.InvestorAccount, error) {
	code := normalizeCode(currencyCode)
	if _, err := s.currencySvc.GetCurrencyByCode(ctx, code); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency code '%s' not found", apperrors.ErrValidation, code)
		}
		return nil, err
	}

	account, err := s.GetInvestorAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.CurrentTime()
	if account.CreatedAt.IsZero() {
		account.AuditFields = domain.NewAuditFields(userID, now)
	}
	account.BaseCurrencyCode = code
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	if err := s.accountRepo.SaveInvestorAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to save investor account", slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Base currency changed", slog.String("currency_code", code))
	return account, nil
}
