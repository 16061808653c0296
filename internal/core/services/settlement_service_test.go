package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/ipo_ledger/internal/apperrors"
	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/ipo_ledger/internal/core/ports/services"
	"github.com/SscSPs/ipo_ledger/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---

type SettlementServiceTestSuite struct {
	suite.Suite
	mockTx            *MockTxManager
	mockPortfolioRepo *MockPortfolioRepository
	mockSubRepo       *MockSubscriptionRepository
	mockIPORepo       *MockIPORepository
	service           portssvc.SettlementSvcFacade
	ctx               context.Context
	now               time.Time
	tx                *fakeTx
}

func (suite *SettlementServiceTestSuite) SetupTest() {
	suite.mockTx = new(MockTxManager)
	suite.mockPortfolioRepo = new(MockPortfolioRepository)
	suite.mockSubRepo = new(MockSubscriptionRepository)
	suite.mockIPORepo = new(MockIPORepository)
	suite.now = time.Date(2026, 6, 20, 0, 5, 0, 0, time.UTC)
	suite.tx = &fakeTx{}
	suite.service = services.NewSettlementService(suite.mockTx, suite.mockPortfolioRepo, suite.mockSubRepo, suite.mockIPORepo,
		services.WithClock(func() time.Time { return suite.now }))
	suite.ctx = context.Background()
}

func allocatedSubscription(id string, quantity int64, price string) domain.Subscription {
	p := decimal.RequireFromString(price)
	return domain.Subscription{
		SubscriptionID:     id,
		UserID:             "user-1",
		IPOID:              "ipo-1",
		Quantity:           quantity,
		PricePerShare:      p,
		TotalAmount:        p.Mul(decimal.NewFromInt(quantity)),
		Status:             domain.SubscriptionAllocated,
		AllocationQuantity: quantity,
		AllocationAmount:   p.Mul(decimal.NewFromInt(quantity)),
	}
}

// --- Test Cases ---

func (suite *SettlementServiceTestSuite) TestSettleSubscriptionTx_NewHolding() {
	ipo := *closedIPO("ipo-1", 1000, 10)
	sub := allocatedSubscription("sub-1", 100, "10")

	suite.mockPortfolioRepo.On("InsertStockTransaction", mock.Anything, suite.tx, mock.MatchedBy(func(st domain.StockTransaction) bool {
		return *st.SubscriptionID == "sub-1" && st.Type == domain.StockBuy && st.Status == domain.StockTxCompleted &&
			st.Quantity == 100 && st.TotalAmount.Equal(decimal.NewFromInt(1000)) && st.Commission.IsZero()
	})).Return(true, nil).Once()
	suite.mockPortfolioRepo.On("FindHoldingForUpdate", mock.Anything, suite.tx, "user-1", "ACME").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPortfolioRepo.On("UpsertHolding", mock.Anything, suite.tx, mock.MatchedBy(func(h domain.Holding) bool {
		return h.Quantity == 100 && h.AveragePrice.Equal(decimal.NewFromInt(10)) && h.TotalCost.Equal(decimal.NewFromInt(1000)) &&
			h.PortfolioID != ""
	})).Return(nil).Once()

	settled, err := suite.service.SettleSubscriptionTx(suite.ctx, suite.tx, sub, ipo, suite.now)

	suite.Require().NoError(err)
	suite.True(settled)
	suite.mockPortfolioRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestSettleSubscriptionTx_WeightedAverage() {
	ipo := *closedIPO("ipo-1", 1000, 10)
	sub := allocatedSubscription("sub-2", 100, "12")
	existing := &domain.Holding{
		PortfolioID:  "pf-1",
		UserID:       "user-1",
		Symbol:       "ACME",
		Quantity:     100,
		AveragePrice: decimal.NewFromInt(10),
		TotalCost:    decimal.NewFromInt(1000),
	}

	suite.mockPortfolioRepo.On("InsertStockTransaction", mock.Anything, suite.tx, mock.Anything).Return(true, nil).Once()
	suite.mockPortfolioRepo.On("FindHoldingForUpdate", mock.Anything, suite.tx, "user-1", "ACME").Return(existing, nil).Once()
	suite.mockPortfolioRepo.On("UpsertHolding", mock.Anything, suite.tx, mock.MatchedBy(func(h domain.Holding) bool {
		return h.PortfolioID == "pf-1" && h.Quantity == 200 && h.AveragePrice.Equal(decimal.NewFromInt(11)) &&
			h.TotalCost.Equal(decimal.NewFromInt(2200)) && h.LastUpdatedBy == domain.SystemActor
	})).Return(nil).Once()

	settled, err := suite.service.SettleSubscriptionTx(suite.ctx, suite.tx, sub, ipo, suite.now)

	suite.Require().NoError(err)
	suite.True(settled)
	suite.mockPortfolioRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestSettleSubscriptionTx_AlreadySettled() {
	ipo := *closedIPO("ipo-1", 1000, 10)
	sub := allocatedSubscription("sub-1", 100, "10")
	suite.mockPortfolioRepo.On("InsertStockTransaction", mock.Anything, suite.tx, mock.Anything).Return(false, nil).Once()

	settled, err := suite.service.SettleSubscriptionTx(suite.ctx, suite.tx, sub, ipo, suite.now)

	suite.Require().NoError(err)
	suite.False(settled)
	suite.mockPortfolioRepo.AssertNotCalled(suite.T(), "FindHoldingForUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockPortfolioRepo.AssertNotCalled(suite.T(), "UpsertHolding", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestSettleSubscriptionTx_RequiresAllocation() {
	ipo := *closedIPO("ipo-1", 1000, 10)
	sub := allocatedSubscription("sub-1", 100, "10")
	sub.Status = domain.SubscriptionRejected
	sub.AllocationQuantity = 0

	_, err := suite.service.SettleSubscriptionTx(suite.ctx, suite.tx, sub, ipo, suite.now)

	suite.ErrorIs(err, apperrors.ErrInvalidStateTransition)
	suite.mockPortfolioRepo.AssertNotCalled(suite.T(), "InsertStockTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestSettleIPO_SettlesOnlyMissingRows() {
	expectTx(suite.mockTx, suite.tx, true)
	suite.mockIPORepo.On("FindIPOByIDInTx", mock.Anything, suite.tx, "ipo-1").Return(closedIPO("ipo-1", 1000, 10), nil).Once()
	suite.mockSubRepo.On("ListAllocatedByIPO", mock.Anything, suite.tx, "ipo-1").Return([]domain.Subscription{
		allocatedSubscription("sub-1", 100, "10"),
		allocatedSubscription("sub-2", 50, "10"),
	}, nil).Once()
	suite.mockPortfolioRepo.On("InsertStockTransaction", mock.Anything, suite.tx, mock.MatchedBy(func(st domain.StockTransaction) bool {
		return *st.SubscriptionID == "sub-1"
	})).Return(false, nil).Once()
	suite.mockPortfolioRepo.On("InsertStockTransaction", mock.Anything, suite.tx, mock.MatchedBy(func(st domain.StockTransaction) bool {
		return *st.SubscriptionID == "sub-2"
	})).Return(true, nil).Once()
	suite.mockPortfolioRepo.On("FindHoldingForUpdate", mock.Anything, suite.tx, "user-1", "ACME").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPortfolioRepo.On("UpsertHolding", mock.Anything, suite.tx, mock.Anything).Return(nil).Once()

	settled, err := suite.service.SettleIPO(suite.ctx, "ipo-1", "admin-1")

	suite.Require().NoError(err)
	suite.Equal(1, settled)
	suite.mockPortfolioRepo.AssertExpectations(suite.T())
	suite.mockTx.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestSettleIPO_OngoingIPOIsRejected() {
	ongoing := closedIPO("ipo-1", 1000, 10)
	ongoing.Status = domain.IPOOngoing

	expectTx(suite.mockTx, suite.tx, false)
	suite.mockIPORepo.On("FindIPOByIDInTx", mock.Anything, suite.tx, "ipo-1").Return(ongoing, nil).Once()

	_, err := suite.service.SettleIPO(suite.ctx, "ipo-1", "admin-1")

	suite.ErrorIs(err, apperrors.ErrInvalidStateTransition)
	suite.mockSubRepo.AssertNotCalled(suite.T(), "ListAllocatedByIPO", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestListStockTransactions_DefaultLimit() {
	suite.mockPortfolioRepo.On("ListStockTransactionsByUser", mock.Anything, "user-1", 20, (*string)(nil)).
		Return([]domain.StockTransaction{}, nil, nil).Once()

	txs, next, err := suite.service.ListStockTransactions(suite.ctx, "user-1", 0, nil)

	suite.Require().NoError(err)
	suite.Empty(txs)
	suite.Nil(next)
}

func (suite *SettlementServiceTestSuite) TestGetPortfolio_NilBecomesEmpty() {
	suite.mockPortfolioRepo.On("ListHoldingsByUser", mock.Anything, "user-1").Return(nil, nil).Once()

	holdings, err := suite.service.GetPortfolio(suite.ctx, "user-1")

	suite.Require().NoError(err)
	suite.NotNil(holdings)
}

// --- Run Suite ---

func TestSettlementService(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}
