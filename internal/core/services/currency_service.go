package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ipo_ledger/internal/apperrors"
	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ipo_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ipo_ledger/internal/core/ports/services"
	"github.com/SscSPs/ipo_ledger/internal/dto"
	"github.com/SscSPs/ipo_ledger/internal/utils"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	precisionCacheSize = 256
	precisionCacheTTL  = 10 * time.Minute
)

type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
	precisions   *expirable.LRU[string, int32]
}

// NewCurrencyService creates the currency catalogue service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade, options ...ServiceOption) portssvc.CurrencySvcFacade {
	return &currencyService{
		BaseService:  newBaseService(nil, options),
		currencyRepo: currencyRepo,
		precisions:   expirable.NewLRU[string, int32](precisionCacheSize, nil, precisionCacheTTL),
	}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if !domain.IsValidCurrencyCode(code) {
		return nil, fmt.Errorf("%w: currency code must be %d to %d letters or digits", apperrors.ErrValidation, domain.MinCurrencyCodeLen, domain.MaxCurrencyCodeLen)
	}

	precision := utils.ISOPrecision(code)
	if req.Precision != nil {
		if *req.Precision < 0 || *req.Precision > domain.MaxPrecision {
			return nil, fmt.Errorf("%w: precision must be between 0 and %d", apperrors.ErrValidation, domain.MaxPrecision)
		}
		precision = *req.Precision
	}

	currency := domain.Currency{
		CurrencyCode: code,
		Symbol:       req.Symbol,
		Name:         req.Name,
		Precision:    precision,
		AuditFields:  domain.NewAuditFields(creatorUserID, s.CurrentTime()),
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		s.LogError(ctx, err, "Failed to save currency", slog.String("currency_code", code))
		return nil, fmt.Errorf("failed to create currency in service: %w", err)
	}
	s.precisions.Add(code, precision)

	s.LogInfo(ctx, "Currency created", slog.String("currency_code", code), slog.Int("precision", int(precision)))
	return &currency, nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(currencyCode))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get currency", slog.String("currency_code", currencyCode))
		}
		return nil, err
	}
	s.precisions.Add(currency.CurrencyCode, currency.Precision)
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, fmt.Errorf("failed to list currencies in service: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

// Precision never fails. Lookup errors other than not-found are logged and the
// ISO fallback is used without caching it.
func (s *currencyService) Precision(ctx context.Context, currencyCode string) int32 {
	code := strings.ToUpper(currencyCode)
	if p, ok := s.precisions.Get(code); ok {
		return p
	}

	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	switch {
	case err == nil:
		p := utils.ClampPrecision(currency.Precision)
		s.precisions.Add(code, p)
		return p
	case errors.Is(err, apperrors.ErrNotFound):
		p := utils.ISOPrecision(code)
		s.precisions.Add(code, p)
		return p
	default:
		s.LogError(ctx, err, "Failed to look up currency precision, using ISO fallback", slog.String("currency_code", code))
		return utils.ISOPrecision(code)
	}
}
