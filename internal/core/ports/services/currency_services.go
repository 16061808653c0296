package services

import (
	"context"

	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	"github.com/SscSPs/ipo_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all available currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)

	// Precision returns the minor-unit digits of a currency. Codes missing from the
	// catalogue fall back to ISO 4217, then to two digits.
	Precision(ctx context.Context, currencyCode string) int32
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// CreateCurrency persists a new currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}

// CurrencyRateReaderSvc defines read operations for directed currency rates
type CurrencyRateReaderSvc interface {
	// Convert multiplies amount by the active (from, to) rate and rounds to the target
	// currency precision. Identical codes return amount unchanged.
	Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error)

	// GetCurrencyRate retrieves the stored (from, to) rate, active or not.
	GetCurrencyRate(ctx context.Context, fromCode, toCode string) (*domain.CurrencyRate, error)

	// ListCurrencyRates retrieves every stored rate.
	ListCurrencyRates(ctx context.Context) ([]domain.CurrencyRate, error)
}

// CurrencyRateWriterSvc defines write operations for currency rates
type CurrencyRateWriterSvc interface {
	// UpsertCurrencyRate inserts or replaces the (from, to) rate. The inverse pair is untouched.
	UpsertCurrencyRate(ctx context.Context, req dto.UpsertCurrencyRateRequest, adminUserID string) (*domain.CurrencyRate, error)
}

// CurrencyRateSvcFacade combines all currency rate service interfaces
type CurrencyRateSvcFacade interface {
	CurrencyRateReaderSvc
	CurrencyRateWriterSvc
}
