package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager        TransactionManager
	CurrencyRepo     CurrencyRepositoryFacade
	CurrencyRateRepo CurrencyRateRepositoryFacade
	AccountRepo      InvestorAccountRepositoryFacade
	BalanceRepo      BalanceReader
	DepositRepo      DepositRepositoryFacade
	IPORepo          IPORepositoryFacade
	SubscriptionRepo SubscriptionRepositoryFacade
	PortfolioRepo    PortfolioRepositoryFacade
}
