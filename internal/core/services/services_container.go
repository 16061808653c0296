package services

import (
	portsrepo "github.com/SscSPs/ipo_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ipo_ledger/internal/core/ports/services"
	"github.com/SscSPs/ipo_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, tracker portssvc.EventTracker) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	options := []ServiceOption{
		WithTxTimeout(cfg.DBTxTimeout),
		WithEventTracker(tracker),
	}

	// Currency services come first; everything that touches money depends on them.
	container.Currency = NewCurrencyService(repos.CurrencyRepo, options...)
	container.CurrencyRate = NewCurrencyRateService(repos.CurrencyRateRepo, container.Currency, options...)
	container.Account = NewAccountService(repos.AccountRepo, container.Currency, cfg.BaseCurrency, options...)
	container.Balance = NewBalanceService(repos.BalanceRepo, container.Account, container.CurrencyRate, options...)

	container.Deposit = NewDepositService(repos.TxManager, repos.DepositRepo, container.Currency, options...)
	container.IPO = NewIPOService(repos.IPORepo, container.Currency, options...)
	container.Subscription = NewSubscriptionService(
		repos.TxManager,
		repos.SubscriptionRepo,
		repos.IPORepo,
		container.Balance,
		container.CurrencyRate,
		options...,
	)

	// Settlement runs inside the allocation transaction, so allocation needs it first.
	container.Settlement = NewSettlementService(repos.TxManager, repos.PortfolioRepo, repos.SubscriptionRepo, repos.IPORepo, options...)
	container.Allocation = NewAllocationService(repos.TxManager, repos.IPORepo, repos.SubscriptionRepo, container.Settlement, options...)

	return container
}
