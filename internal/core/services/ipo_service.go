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
)

type ipoService struct {
	BaseService
	ipoRepo     portsrepo.IPORepositoryFacade
	currencySvc portssvc.CurrencyReaderSvc
}

// NewIPOService creates the IPO catalogue service.
func NewIPOService(ipoRepo portsrepo.IPORepositoryFacade, currencySvc portssvc.CurrencyReaderSvc, options ...ServiceOption) portssvc.IPOSvcFacade {
	return &ipoService{
		BaseService: newBaseService(nil, options),
		ipoRepo:     ipoRepo,
		currencySvc: currencySvc,
	}
}

var _ portssvc.IPOSvcFacade = (*ipoService)(nil)

// CreateIPO stores a new offering as upcoming; the allocation sweep opens it once
// its start date has passed.
func (s *ipoService) CreateIPO(ctx context.Context, req dto.CreateIPORequest, adminID string) (*domain.IPO, error) {
	code := normalizeCode(req.CurrencyCode)
	if _, err := s.currencySvc.GetCurrencyByCode(ctx, code); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency code '%s' not found", apperrors.ErrValidation, code)
		}
		return nil, err
	}

	ipo := domain.IPO{
		IPOID:        uuid.NewString(),
		Symbol:       strings.ToUpper(strings.TrimSpace(req.Symbol)),
		CompanyName:  strings.TrimSpace(req.CompanyName),
		CurrencyCode: code,
		PriceMin:     req.PriceMin,
		PriceMax:     req.PriceMax,
		LotSize:      req.LotSize,
		TotalShares:  req.TotalShares,
		StartDate:    req.StartDate.UTC(),
		EndDate:      req.EndDate.UTC(),
		Status:       domain.IPOUpcoming,
		AuditFields:  domain.NewAuditFields(adminID, s.CurrentTime()),
	}
	if req.ListingDate != nil {
		listing := req.ListingDate.UTC()
		ipo.ListingDate = &listing
	}
	if err := ipo.Validate(); err != nil {
		return nil, err
	}

	if err := s.ipoRepo.SaveIPO(ctx, ipo); err != nil {
		s.LogError(ctx, err, "Failed to save IPO", slog.String("symbol", ipo.Symbol))
		return nil, fmt.Errorf("failed to create ipo: %w", err)
	}

	s.LogInfo(ctx, "IPO created", slog.String("ipo_id", ipo.IPOID), slog.String("symbol", ipo.Symbol),
		slog.Int64("total_shares", ipo.TotalShares), slog.Int64("lot_size", ipo.LotSize))
	s.Track(adminID, "ipo_created", map[string]any{"ipo_id": ipo.IPOID, "symbol": ipo.Symbol})
	return &ipo, nil
}

func (s *ipoService) GetIPO(ctx context.Context, ipoID string) (*domain.IPO, error) {
	return s.ipoRepo.FindIPOByID(ctx, ipoID)
}

func (s *ipoService) ListIPOs(ctx context.Context, status *domain.IPOStatus) ([]domain.IPO, error) {
	ipos, err := s.ipoRepo.ListIPOs(ctx, status)
	if err != nil {
		s.LogError(ctx, err, "Failed to list IPOs")
		return nil, err
	}
	if ipos == nil {
		return []domain.IPO{}, nil
	}
	return ipos, nil
}
