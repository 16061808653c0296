package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// fakeTx stands in for a database transaction. Repositories are mocked, so none of
// its methods are ever called. name keeps two transactions apart in mock matching.
type fakeTx struct {
	pgx.Tx
	name string
}

// --- Mock TransactionManager ---
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTxManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

// expectTx sets up a transaction that is begun once and always rolled back by the
// deferred call. commit controls whether a commit is expected.
func expectTx(m *MockTxManager, tx pgx.Tx, commit bool) {
	m.On("Begin", mock.Anything).Return(tx, nil).Once()
	m.On("Rollback", mock.Anything, tx).Return(nil).Once()
	if commit {
		m.On("Commit", mock.Anything, tx).Return(nil).Once()
	}
}

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	return m.Called(ctx, currency).Error(0)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Mock CurrencyRateRepository ---
type MockCurrencyRateRepository struct {
	mock.Mock
}

func (m *MockCurrencyRateRepository) FindActiveRate(ctx context.Context, from, to string) (*domain.CurrencyRate, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyRate), args.Error(1)
}

func (m *MockCurrencyRateRepository) FindRate(ctx context.Context, from, to string) (*domain.CurrencyRate, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyRate), args.Error(1)
}

func (m *MockCurrencyRateRepository) ListCurrencyRates(ctx context.Context) ([]domain.CurrencyRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyRate), args.Error(1)
}

func (m *MockCurrencyRateRepository) UpsertCurrencyRate(ctx context.Context, rate domain.CurrencyRate) (*domain.CurrencyRate, error) {
	args := m.Called(ctx, rate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyRate), args.Error(1)
}

// --- Mock InvestorAccountRepository ---
type MockInvestorAccountRepository struct {
	mock.Mock
}

func (m *MockInvestorAccountRepository) FindInvestorAccount(ctx context.Context, userID string) (*domain.InvestorAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvestorAccount), args.Error(1)
}

func (m *MockInvestorAccountRepository) SaveInvestorAccount(ctx context.Context, account domain.InvestorAccount) error {
	return m.Called(ctx, account).Error(0)
}

// --- Mock BalanceReader ---
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) SumBalanceComponents(ctx context.Context, userID string) ([]domain.BalanceComponent, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceComponent), args.Error(1)
}

func (m *MockBalanceRepository) SumBalanceComponentsInTx(ctx context.Context, tx pgx.Tx, userID, excludeSubscriptionID string) ([]domain.BalanceComponent, error) {
	args := m.Called(ctx, tx, userID, excludeSubscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceComponent), args.Error(1)
}

// --- Mock DepositRepository ---
type MockDepositRepository struct {
	mock.Mock
}

func (m *MockDepositRepository) FindDepositByID(ctx context.Context, depositID string) (*domain.Deposit, error) {
	args := m.Called(ctx, depositID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deposit), args.Error(1)
}

func (m *MockDepositRepository) ListDepositsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Deposit, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Deposit), next, args.Error(2)
}

func (m *MockDepositRepository) ListDepositsByStatus(ctx context.Context, status domain.DepositStatus, limit int) ([]domain.Deposit, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Deposit), args.Error(1)
}

func (m *MockDepositRepository) SaveDeposit(ctx context.Context, deposit domain.Deposit) error {
	return m.Called(ctx, deposit).Error(0)
}

func (m *MockDepositRepository) FindDepositByIDForUpdate(ctx context.Context, tx pgx.Tx, depositID string) (*domain.Deposit, error) {
	args := m.Called(ctx, tx, depositID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deposit), args.Error(1)
}

func (m *MockDepositRepository) UpdateDepositReview(ctx context.Context, tx pgx.Tx, deposit domain.Deposit) error {
	return m.Called(ctx, tx, deposit).Error(0)
}

// --- Mock IPORepository ---
type MockIPORepository struct {
	mock.Mock
}

func (m *MockIPORepository) FindIPOByID(ctx context.Context, ipoID string) (*domain.IPO, error) {
	args := m.Called(ctx, ipoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IPO), args.Error(1)
}

func (m *MockIPORepository) ListIPOs(ctx context.Context, status *domain.IPOStatus) ([]domain.IPO, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IPO), args.Error(1)
}

func (m *MockIPORepository) ListIPOIDsDueForClose(ctx context.Context, now time.Time) ([]string, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockIPORepository) SaveIPO(ctx context.Context, ipo domain.IPO) error {
	return m.Called(ctx, ipo).Error(0)
}

func (m *MockIPORepository) FindIPOByIDForShare(ctx context.Context, tx pgx.Tx, ipoID string) (*domain.IPO, error) {
	args := m.Called(ctx, tx, ipoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IPO), args.Error(1)
}

func (m *MockIPORepository) FindIPOByIDInTx(ctx context.Context, tx pgx.Tx, ipoID string) (*domain.IPO, error) {
	args := m.Called(ctx, tx, ipoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IPO), args.Error(1)
}

func (m *MockIPORepository) OpenDueIPOs(ctx context.Context, now time.Time, actor string) (int64, error) {
	args := m.Called(ctx, now, actor)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIPORepository) CloseIPO(ctx context.Context, tx pgx.Tx, ipoID string, now time.Time, actor string) (bool, error) {
	args := m.Called(ctx, tx, ipoID, now, actor)
	return args.Bool(0), args.Error(1)
}

func (m *MockIPORepository) MarkListedIPOs(ctx context.Context, now time.Time, actor string) (int64, error) {
	args := m.Called(ctx, now, actor)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock SubscriptionRepository ---
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.Subscription, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) ListSubscriptionsByUser(ctx context.Context, userID string) ([]domain.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) LockUser(ctx context.Context, tx pgx.Tx, userID string) error {
	return m.Called(ctx, tx, userID).Error(0)
}

func (m *MockSubscriptionRepository) HasOpenSubscription(ctx context.Context, tx pgx.Tx, userID, ipoID string) (bool, error) {
	args := m.Called(ctx, tx, userID, ipoID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubscriptionRepository) InsertSubscription(ctx context.Context, tx pgx.Tx, subscription domain.Subscription) error {
	return m.Called(ctx, tx, subscription).Error(0)
}

func (m *MockSubscriptionRepository) FindSubscriptionByIDForUpdate(ctx context.Context, tx pgx.Tx, subscriptionID string) (*domain.Subscription, error) {
	args := m.Called(ctx, tx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) UpdateSubscription(ctx context.Context, tx pgx.Tx, subscription domain.Subscription) error {
	return m.Called(ctx, tx, subscription).Error(0)
}

func (m *MockSubscriptionRepository) ListReservingByIPOForUpdate(ctx context.Context, tx pgx.Tx, ipoID string) ([]domain.Subscription, error) {
	args := m.Called(ctx, tx, ipoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) ListAllocatedByIPO(ctx context.Context, tx pgx.Tx, ipoID string) ([]domain.Subscription, error) {
	args := m.Called(ctx, tx, ipoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Subscription), args.Error(1)
}

// --- Mock PortfolioRepository ---
type MockPortfolioRepository struct {
	mock.Mock
}

func (m *MockPortfolioRepository) ListHoldingsByUser(ctx context.Context, userID string) ([]domain.Holding, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Holding), args.Error(1)
}

func (m *MockPortfolioRepository) ListStockTransactionsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.StockTransaction, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.StockTransaction), next, args.Error(2)
}

func (m *MockPortfolioRepository) InsertStockTransaction(ctx context.Context, tx pgx.Tx, st domain.StockTransaction) (bool, error) {
	args := m.Called(ctx, tx, st)
	return args.Bool(0), args.Error(1)
}

func (m *MockPortfolioRepository) FindHoldingForUpdate(ctx context.Context, tx pgx.Tx, userID, symbol string) (*domain.Holding, error) {
	args := m.Called(ctx, tx, userID, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Holding), args.Error(1)
}

func (m *MockPortfolioRepository) UpsertHolding(ctx context.Context, tx pgx.Tx, holding domain.Holding) error {
	return m.Called(ctx, tx, holding).Error(0)
}

// --- Mock EventTracker ---
type MockEventTracker struct {
	mock.Mock
}

func (m *MockEventTracker) Enqueue(distinctID string, event string, properties map[string]any) {
	m.Called(distinctID, event, properties)
}
