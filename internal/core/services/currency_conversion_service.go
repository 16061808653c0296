package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/ipo_ledger/internal/apperrors"
	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ipo_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ipo_ledger/internal/core/ports/services"
	"github.com/SscSPs/ipo_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// currencyRateService converts amounts with directed, independently stored rates.
// USD->TRY and TRY->USD are separate rows; one is never derived from the other.
type currencyRateService struct {
	BaseService
	rateRepo    portsrepo.CurrencyRateRepositoryFacade
	currencySvc portssvc.CurrencySvcFacade
}

// NewCurrencyRateService creates the currency conversion service.
func NewCurrencyRateService(rateRepo portsrepo.CurrencyRateRepositoryFacade, currencySvc portssvc.CurrencySvcFacade, options ...ServiceOption) portssvc.CurrencyRateSvcFacade {
	return &currencyRateService{
		BaseService: newBaseService(nil, options),
		rateRepo:    rateRepo,
		currencySvc: currencySvc,
	}
}

var _ portssvc.CurrencyRateSvcFacade = (*currencyRateService)(nil)

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *currencyRateService) Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error) {
	fromCode, toCode = normalizeCode(fromCode), normalizeCode(toCode)
	if fromCode == toCode {
		return amount, nil
	}

	rate, err := s.rateRepo.FindActiveRate(ctx, fromCode, toCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, apperrors.NewAppError(0,
				fmt.Sprintf("no active rate from %s to %s", fromCode, toCode), apperrors.ErrRateNotFound)
		}
		s.LogError(ctx, err, "Failed to look up currency rate", slog.String("from", fromCode), slog.String("to", toCode))
		return decimal.Zero, err
	}

	precision := s.currencySvc.Precision(ctx, toCode)
	return amount.Mul(rate.Rate).Round(precision), nil
}

func (s *currencyRateService) GetCurrencyRate(ctx context.Context, fromCode, toCode string) (*domain.CurrencyRate, error) {
	fromCode, toCode = normalizeCode(fromCode), normalizeCode(toCode)
	if !domain.IsValidCurrencyCode(fromCode) || !domain.IsValidCurrencyCode(toCode) {
		return nil, fmt.Errorf("%w: invalid currency code", apperrors.ErrValidation)
	}
	rate, err := s.rateRepo.FindRate(ctx, fromCode, toCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(0, fmt.Sprintf("no rate from %s to %s", fromCode, toCode), apperrors.ErrRateNotFound)
		}
		return nil, err
	}
	return rate, nil
}

func (s *currencyRateService) ListCurrencyRates(ctx context.Context) ([]domain.CurrencyRate, error) {
	rates, err := s.rateRepo.ListCurrencyRates(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currency rates")
		return nil, err
	}
	if rates == nil {
		return []domain.CurrencyRate{}, nil
	}
	return rates, nil
}

func (s *currencyRateService) UpsertCurrencyRate(ctx context.Context, req dto.UpsertCurrencyRateRequest, adminUserID string) (*domain.CurrencyRate, error) {
	fromCode, toCode := normalizeCode(req.FromCurrencyCode), normalizeCode(req.ToCurrencyCode)
	if !req.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: rate must be positive", apperrors.ErrValidation)
	}
	if fromCode == toCode {
		return nil, fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrValidation)
	}

	for _, code := range []string{fromCode, toCode} {
		if _, err := s.currencySvc.GetCurrencyByCode(ctx, code); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: currency code '%s' not found", apperrors.ErrValidation, code)
			}
			return nil, fmt.Errorf("failed to validate currency '%s': %w", code, err)
		}
	}

	isActive, isManual := true, true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	if req.IsManual != nil {
		isManual = *req.IsManual
	}

	rate := domain.CurrencyRate{
		CurrencyRateID:   uuid.NewString(),
		FromCurrencyCode: fromCode,
		ToCurrencyCode:   toCode,
		Rate:             req.Rate,
		IsActive:         isActive,
		IsManual:         isManual,
		UpdatedBy:        adminUserID,
		AuditFields:      domain.NewAuditFields(adminUserID, s.CurrentTime()),
	}

	stored, err := s.rateRepo.UpsertCurrencyRate(ctx, rate)
	if err != nil {
		s.LogError(ctx, err, "Failed to upsert currency rate", slog.String("from", fromCode), slog.String("to", toCode))
		return nil, fmt.Errorf("failed to upsert currency rate: %w", err)
	}

	s.LogInfo(ctx, "Currency rate upserted",
		slog.String("from", fromCode), slog.String("to", toCode), slog.String("rate", stored.Rate.String()))
	s.Track(adminUserID, "currency_rate_upserted", map[string]any{"from": fromCode, "to": toCode, "rate": stored.Rate.String()})
	return stored, nil
}
