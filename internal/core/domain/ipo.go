package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/ipo_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// IPOStatus is driven by time and by the allocation sweep, never by users.
type IPOStatus string

const (
	IPOUpcoming IPOStatus = "upcoming"
	IPOOngoing  IPOStatus = "ongoing"
	IPOClosed   IPOStatus = "closed"
	IPOListed   IPOStatus = "listed"
)

// IPO is a public offering open for subscriptions between StartDate and EndDate.
type IPO struct {
	IPOID        string          `json:"ipoID"`
	Symbol       string          `json:"symbol"`
	CompanyName  string          `json:"companyName"`
	CurrencyCode string          `json:"currencyCode"`
	PriceMin     decimal.Decimal `json:"priceMin"`
	PriceMax     decimal.Decimal `json:"priceMax"`
	LotSize      int64           `json:"lotSize"`
	TotalShares  int64           `json:"totalShares"`
	StartDate    time.Time       `json:"startDate"`
	EndDate      time.Time       `json:"endDate"`
	ListingDate  *time.Time      `json:"listingDate,omitempty"`
	Status       IPOStatus       `json:"status"`
	AuditFields
}

// Validate checks the static shape of an offering.
func (i *IPO) Validate() error {
	switch {
	case i.Symbol == "":
		return fmt.Errorf("%w: symbol is required", apperrors.ErrValidation)
	case i.LotSize <= 0:
		return fmt.Errorf("%w: lot size must be positive", apperrors.ErrValidation)
	case i.TotalShares <= 0:
		return fmt.Errorf("%w: total shares must be positive", apperrors.ErrValidation)
	case !i.PriceMin.IsPositive():
		return fmt.Errorf("%w: minimum price must be positive", apperrors.ErrValidation)
	case i.PriceMax.LessThan(i.PriceMin):
		return fmt.Errorf("%w: maximum price must not be below minimum price", apperrors.ErrValidation)
	case !i.EndDate.After(i.StartDate):
		return fmt.Errorf("%w: end date must be after start date", apperrors.ErrValidation)
	case i.ListingDate != nil && i.ListingDate.Before(i.EndDate):
		return fmt.Errorf("%w: listing date must not be before end date", apperrors.ErrValidation)
	}
	return nil
}

// IsOpenAt reports whether subscriptions are accepted at the given instant.
func (i *IPO) IsOpenAt(now time.Time) bool {
	return i.Status == IPOOngoing && !now.Before(i.StartDate) && !now.After(i.EndDate)
}

// ValidateOrder checks a subscription request against the offering terms.
func (i *IPO) ValidateOrder(quantity int64, pricePerShare decimal.Decimal, now time.Time) error {
	if !i.IsOpenAt(now) {
		return fmt.Errorf("%w: ipo %s is %s, window %s to %s", apperrors.ErrOutsideSubscriptionWindow,
			i.Symbol, i.Status, i.StartDate.Format(time.RFC3339), i.EndDate.Format(time.RFC3339))
	}
	if quantity <= 0 || quantity%i.LotSize != 0 {
		return fmt.Errorf("%w: quantity %d must be a positive multiple of %d", apperrors.ErrInvalidLotSize, quantity, i.LotSize)
	}
	if pricePerShare.LessThan(i.PriceMin) || pricePerShare.GreaterThan(i.PriceMax) {
		return fmt.Errorf("%w: price %s outside band [%s, %s]", apperrors.ErrPriceOutOfRange,
			pricePerShare.String(), i.PriceMin.String(), i.PriceMax.String())
	}
	return nil
}
