package pgsql

import (
	portsrepo "github.com/SscSPs/ipo_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:        &BaseRepository{Pool: dbPool},
		CurrencyRepo:     newPgxCurrencyRepository(dbPool),
		CurrencyRateRepo: newPgxCurrencyRateRepository(dbPool),
		AccountRepo:      newPgxInvestorAccountRepository(dbPool),
		BalanceRepo:      newPgxBalanceRepository(dbPool),
		DepositRepo:      newPgxDepositRepository(dbPool),
		IPORepo:          newPgxIPORepository(dbPool),
		SubscriptionRepo: newPgxSubscriptionRepository(dbPool),
		PortfolioRepo:    newPgxPortfolioRepository(dbPool),
	}
}
