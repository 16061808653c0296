package repositories

import (
	"context"

	"github.com/SscSPs/ipo_ledger/internal/core/domain"
)

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// FindCurrencyByCode retrieves a specific currency by its code.
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all available currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for currency data
type CurrencyWriter interface {
	// SaveCurrency persists a new currency.
	SaveCurrency(ctx context.Context, currency domain.Currency) error
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}

// CurrencyRateReader defines read operations for directed currency rates
type CurrencyRateReader interface {
	// FindActiveRate returns the active (from, to) rate. The inverse pair is never consulted.
	FindActiveRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.CurrencyRate, error)

	// FindRate returns the (from, to) rate regardless of its active flag.
	FindRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.CurrencyRate, error)

	// ListCurrencyRates returns every stored rate ordered by pair.
	ListCurrencyRates(ctx context.Context) ([]domain.CurrencyRate, error)
}

// CurrencyRateWriter defines write operations for currency rates
type CurrencyRateWriter interface {
	// UpsertCurrencyRate inserts the pair or updates the existing row, returning the stored row.
	UpsertCurrencyRate(ctx context.Context, rate domain.CurrencyRate) (*domain.CurrencyRate, error)
}

// CurrencyRateRepositoryFacade combines all currency rate repository interfaces
type CurrencyRateRepositoryFacade interface {
	CurrencyRateReader
	CurrencyRateWriter
}
