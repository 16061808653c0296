package repositories

import (
	"context"

	"github.com/SscSPs/ipo_ledger/internal/core/domain"
)

// InvestorAccountReader defines read operations for investor accounts
type InvestorAccountReader interface {
	// FindInvestorAccount returns apperrors.ErrNotFound when the user has no row yet.
	FindInvestorAccount(ctx context.Context, userID string) (*domain.InvestorAccount, error)
}

// InvestorAccountWriter defines write operations for investor accounts
type InvestorAccountWriter interface {
	// SaveInvestorAccount inserts or updates the user's account settings.
	SaveInvestorAccount(ctx context.Context, account domain.InvestorAccount) error
}

// InvestorAccountRepositoryFacade combines all investor account repository interfaces
type InvestorAccountRepositoryFacade interface {
	InvestorAccountReader
	InvestorAccountWriter
}
