package services

import (
	"context"

	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReaderSvc defines read operations for investor account settings
type AccountReaderSvc interface {
	// GetInvestorAccount returns the user's settings. Users without a stored row get
	// an unsaved account in the configured default base currency.
	GetInvestorAccount(ctx context.Context, userID string) (*domain.InvestorAccount, error)

	// BaseCurrency returns the currency the user's balance is reported in.
	BaseCurrency(ctx context.Context, userID string) (string, error)
}

// AccountWriterSvc defines write operations for investor account settings
type AccountWriterSvc interface {
	// SetBaseCurrency changes the reporting currency. The currency must exist.
	SetBaseCurrency(ctx context.Context, userID, currencyCode string) (*domain.InvestorAccount, error)
}

// AccountSvcFacade combines all investor account service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}

// BalanceSvcFacade derives balances from deposits and subscriptions. Nothing is cached.
type BalanceSvcFacade interface {
	// GetBalance returns total, reserved and available in the user's base currency.
	GetBalance(ctx context.Context, userID string) (*domain.Balance, error)

	// GetBalanceInTx computes the balance inside tx, ignoring the reservation of
	// excludeSubscriptionID when it is not empty.
	GetBalanceInTx(ctx context.Context, tx pgx.Tx, userID, excludeSubscriptionID string) (*domain.Balance, error)
}
