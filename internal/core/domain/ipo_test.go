package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/ipo_ledger/internal/apperrors"
	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var (
	windowStart = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2026, 5, 5, 17, 0, 0, 0, time.UTC)
)

func newOngoingIPO() domain.IPO {
	return domain.IPO{
		IPOID:        "ipo-1",
		Symbol:       "ACME",
		CompanyName:  "Acme Corp",
		CurrencyCode: "USD",
		PriceMin:     decimal.NewFromInt(10),
		PriceMax:     decimal.NewFromInt(12),
		LotSize:      100,
		TotalShares:  1000,
		StartDate:    windowStart,
		EndDate:      windowEnd,
		Status:       domain.IPOOngoing,
	}
}

func TestIPO_ValidateOrder(t *testing.T) {
	inWindow := windowStart.Add(24 * time.Hour)

	tests := []struct {
		name     string
		status   domain.IPOStatus
		now      time.Time
		quantity int64
		price    decimal.Decimal
		wantErr  error
	}{
		{"valid order", domain.IPOOngoing, inWindow, 200, decimal.NewFromInt(11), nil},
		{"band edges are inclusive", domain.IPOOngoing, windowEnd, 100, decimal.NewFromInt(12), nil},
		{"before window", domain.IPOOngoing, windowStart.Add(-time.Minute), 100, decimal.NewFromInt(11), apperrors.ErrOutsideSubscriptionWindow},
		{"after window", domain.IPOOngoing, windowEnd.Add(time.Second), 100, decimal.NewFromInt(11), apperrors.ErrOutsideSubscriptionWindow},
		{"not ongoing", domain.IPOUpcoming, inWindow, 100, decimal.NewFromInt(11), apperrors.ErrOutsideSubscriptionWindow},
		{"not a lot multiple", domain.IPOOngoing, inWindow, 150, decimal.NewFromInt(11), apperrors.ErrInvalidLotSize},
		{"zero quantity", domain.IPOOngoing, inWindow, 0, decimal.NewFromInt(11), apperrors.ErrInvalidLotSize},
		{"negative quantity", domain.IPOOngoing, inWindow, -100, decimal.NewFromInt(11), apperrors.ErrInvalidLotSize},
		{"below band", domain.IPOOngoing, inWindow, 100, decimal.RequireFromString("9.99"), apperrors.ErrPriceOutOfRange},
		{"above band", domain.IPOOngoing, inWindow, 100, decimal.RequireFromString("12.01"), apperrors.ErrPriceOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ipo := newOngoingIPO()
			ipo.Status = tt.status
			err := ipo.ValidateOrder(tt.quantity, tt.price, tt.now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestIPO_Validate(t *testing.T) {
	valid := newOngoingIPO()
	assert.NoError(t, valid.Validate())

	inverted := newOngoingIPO()
	inverted.PriceMax = decimal.NewFromInt(5)
	assert.ErrorIs(t, inverted.Validate(), apperrors.ErrValidation)

	noLot := newOngoingIPO()
	noLot.LotSize = 0
	assert.ErrorIs(t, noLot.Validate(), apperrors.ErrValidation)

	badWindow := newOngoingIPO()
	badWindow.EndDate = badWindow.StartDate
	assert.ErrorIs(t, badWindow.Validate(), apperrors.ErrValidation)

	earlyListing := newOngoingIPO()
	listing := windowEnd.Add(-time.Hour)
	earlyListing.ListingDate = &listing
	assert.ErrorIs(t, earlyListing.Validate(), apperrors.ErrValidation)
}
