package services_test

import (
	"context"
	"errors"
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

type AllocationServiceTestSuite struct {
	suite.Suite
	mockTx            *MockTxManager
	mockIPORepo       *MockIPORepository
	mockSubRepo       *MockSubscriptionRepository
	mockPortfolioRepo *MockPortfolioRepository
	service           portssvc.AllocationSvcFacade
	ctx               context.Context
	now               time.Time
}

func (suite *AllocationServiceTestSuite) SetupTest() {
	suite.mockTx = new(MockTxManager)
	suite.mockIPORepo = new(MockIPORepository)
	suite.mockSubRepo = new(MockSubscriptionRepository)
	suite.mockPortfolioRepo = new(MockPortfolioRepository)
	suite.now = time.Date(2026, 6, 20, 0, 5, 0, 0, time.UTC)

	settlementSvc := services.NewSettlementService(suite.mockTx, suite.mockPortfolioRepo, suite.mockSubRepo, suite.mockIPORepo)
	suite.service = services.NewAllocationService(suite.mockTx, suite.mockIPORepo, suite.mockSubRepo, settlementSvc)
	suite.ctx = context.Background()
}

func closedIPO(id string, totalShares, lotSize int64) *domain.IPO {
	return &domain.IPO{
		IPOID:        id,
		Symbol:       "ACME",
		CurrencyCode: "USD",
		PriceMin:     decimal.NewFromInt(10),
		PriceMax:     decimal.NewFromInt(10),
		LotSize:      lotSize,
		TotalShares:  totalShares,
		Status:       domain.IPOClosed,
	}
}

func reservingSubscription(id, userID string, quantity int64, submittedAt time.Time) domain.Subscription {
	price := decimal.NewFromInt(10)
	return domain.Subscription{
		SubscriptionID: id,
		UserID:         userID,
		IPOID:          "ipo-1",
		Quantity:       quantity,
		PricePerShare:  price,
		TotalAmount:    price.Mul(decimal.NewFromInt(quantity)),
		Status:         domain.SubscriptionConfirmed,
		SubmittedAt:    submittedAt,
		AuditFields:    domain.AuditFields{CreatedAt: submittedAt},
	}
}

// expectSettlement lets every allocated subscription settle into a fresh holding.
func (suite *AllocationServiceTestSuite) expectSettlement(tx *fakeTx) {
	suite.mockPortfolioRepo.On("InsertStockTransaction", mock.Anything, tx, mock.Anything).Return(true, nil)
	suite.mockPortfolioRepo.On("FindHoldingForUpdate", mock.Anything, tx, mock.Anything, "ACME").Return(nil, apperrors.ErrNotFound)
	suite.mockPortfolioRepo.On("UpsertHolding", mock.Anything, tx, mock.Anything).Return(nil)
}

// --- Test Cases ---

func (suite *AllocationServiceTestSuite) TestCloseAndAllocate_Oversubscribed() {
	tx := &fakeTx{}
	expectTx(suite.mockTx, tx, true)
	suite.mockIPORepo.On("CloseIPO", mock.Anything, tx, "ipo-1", suite.now, domain.SystemActor).Return(true, nil).Once()
	suite.mockIPORepo.On("FindIPOByIDInTx", mock.Anything, tx, "ipo-1").Return(closedIPO("ipo-1", 1000, 10), nil).Once()
	suite.mockSubRepo.On("ListReservingByIPOForUpdate", mock.Anything, tx, "ipo-1").Return([]domain.Subscription{
		reservingSubscription("sub-a", "user-a", 600, suite.now.Add(-2*time.Hour)),
		reservingSubscription("sub-b", "user-b", 600, suite.now.Add(-time.Hour)),
	}, nil).Once()
	suite.mockSubRepo.On("UpdateSubscription", mock.Anything, tx, mock.MatchedBy(func(s domain.Subscription) bool {
		return s.Status == domain.SubscriptionAllocated && s.AllocationQuantity == 500 &&
			s.AllocationAmount.Equal(decimal.NewFromInt(5000))
	})).Return(nil).Twice()
	suite.expectSettlement(tx)

	summary, err := suite.service.CloseAndAllocate(suite.ctx, "ipo-1", suite.now)

	suite.Require().NoError(err)
	suite.False(summary.Skipped)
	suite.True(summary.Oversubscribed)
	suite.Equal(int64(1200), summary.Demand)
	suite.Equal(int64(1000), summary.Allocated)
	suite.Equal(2, summary.Settled)
	suite.Equal(0, summary.Rejected)
	suite.mockSubRepo.AssertExpectations(suite.T())
	suite.mockPortfolioRepo.AssertNumberOfCalls(suite.T(), "UpsertHolding", 2)
	suite.mockTx.AssertExpectations(suite.T())
}

func (suite *AllocationServiceTestSuite) TestCloseAndAllocate_ZeroShareRowsAreRejected() {
	tx := &fakeTx{}
	expectTx(suite.mockTx, tx, true)
	suite.mockIPORepo.On("CloseIPO", mock.Anything, tx, "ipo-1", suite.now, domain.SystemActor).Return(true, nil).Once()
	suite.mockIPORepo.On("FindIPOByIDInTx", mock.Anything, tx, "ipo-1").Return(closedIPO("ipo-1", 100, 100), nil).Once()
	suite.mockSubRepo.On("ListReservingByIPOForUpdate", mock.Anything, tx, "ipo-1").Return([]domain.Subscription{
		reservingSubscription("sub-a", "user-a", 100, suite.now.Add(-2*time.Hour)),
		reservingSubscription("sub-b", "user-b", 100, suite.now.Add(-time.Hour)),
	}, nil).Once()
	suite.mockSubRepo.On("UpdateSubscription", mock.Anything, tx, mock.MatchedBy(func(s domain.Subscription) bool {
		return s.SubscriptionID == "sub-a" && s.Status == domain.SubscriptionAllocated && s.AllocationQuantity == 100
	})).Return(nil).Once()
	suite.mockSubRepo.On("UpdateSubscription", mock.Anything, tx, mock.MatchedBy(func(s domain.Subscription) bool {
		return s.SubscriptionID == "sub-b" && s.Status == domain.SubscriptionRejected &&
			*s.StatusReason == domain.ReasonUnallocatedOversubscription
	})).Return(nil).Once()
	suite.expectSettlement(tx)

	summary, err := suite.service.CloseAndAllocate(suite.ctx, "ipo-1", suite.now)

	suite.Require().NoError(err)
	suite.Equal(1, summary.Rejected)
	suite.Equal(1, summary.Settled)
	suite.mockSubRepo.AssertExpectations(suite.T())
}

func (suite *AllocationServiceTestSuite) TestCloseAndAllocate_AmendedOrderLosesTieBreak() {
	tx := &fakeTx{}
	expectTx(suite.mockTx, tx, true)
	suite.mockIPORepo.On("CloseIPO", mock.Anything, tx, "ipo-1", suite.now, domain.SystemActor).Return(true, nil).Once()
	suite.mockIPORepo.On("FindIPOByIDInTx", mock.Anything, tx, "ipo-1").Return(closedIPO("ipo-1", 100, 100), nil).Once()

	// sub-a was placed first but amended after sub-b was placed.
	amended := reservingSubscription("sub-a", "user-a", 100, suite.now.Add(-30*time.Minute))
	amended.CreatedAt = suite.now.Add(-3 * time.Hour)
	suite.mockSubRepo.On("ListReservingByIPOForUpdate", mock.Anything, tx, "ipo-1").Return([]domain.Subscription{
		amended,
		reservingSubscription("sub-b", "user-b", 100, suite.now.Add(-time.Hour)),
	}, nil).Once()
	suite.mockSubRepo.On("UpdateSubscription", mock.Anything, tx, mock.MatchedBy(func(s domain.Subscription) bool {
		return s.SubscriptionID == "sub-b" && s.Status == domain.SubscriptionAllocated && s.AllocationQuantity == 100
	})).Return(nil).Once()
	suite.mockSubRepo.On("UpdateSubscription", mock.Anything, tx, mock.MatchedBy(func(s domain.Subscription) bool {
		return s.SubscriptionID == "sub-a" && s.Status == domain.SubscriptionRejected
	})).Return(nil).Once()
	suite.expectSettlement(tx)

	summary, err := suite.service.CloseAndAllocate(suite.ctx, "ipo-1", suite.now)

	suite.Require().NoError(err)
	suite.Equal(1, summary.Settled)
	suite.Equal(1, summary.Rejected)
	suite.mockSubRepo.AssertExpectations(suite.T())
}

func (suite *AllocationServiceTestSuite) TestCloseAndAllocate_AlreadyClosedIsSkipped() {
	tx := &fakeTx{}
	expectTx(suite.mockTx, tx, true)
	suite.mockIPORepo.On("CloseIPO", mock.Anything, tx, "ipo-1", suite.now, domain.SystemActor).Return(false, nil).Once()

	summary, err := suite.service.CloseAndAllocate(suite.ctx, "ipo-1", suite.now)

	suite.Require().NoError(err)
	suite.True(summary.Skipped)
	suite.mockSubRepo.AssertNotCalled(suite.T(), "ListReservingByIPOForUpdate", mock.Anything, mock.Anything, mock.Anything)
	suite.mockPortfolioRepo.AssertNotCalled(suite.T(), "InsertStockTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AllocationServiceTestSuite) TestCloseAndAllocate_NoDemand() {
	tx := &fakeTx{}
	expectTx(suite.mockTx, tx, true)
	suite.mockIPORepo.On("CloseIPO", mock.Anything, tx, "ipo-1", suite.now, domain.SystemActor).Return(true, nil).Once()
	suite.mockIPORepo.On("FindIPOByIDInTx", mock.Anything, tx, "ipo-1").Return(closedIPO("ipo-1", 1000, 10), nil).Once()
	suite.mockSubRepo.On("ListReservingByIPOForUpdate", mock.Anything, tx, "ipo-1").Return([]domain.Subscription{}, nil).Once()

	summary, err := suite.service.CloseAndAllocate(suite.ctx, "ipo-1", suite.now)

	suite.Require().NoError(err)
	suite.Equal(int64(0), summary.Demand)
	suite.Equal(0, summary.Subscriptions)
	suite.False(summary.Oversubscribed)
	suite.mockSubRepo.AssertNotCalled(suite.T(), "UpdateSubscription", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AllocationServiceTestSuite) TestRunAllocationSweep_FailureDoesNotStopOthers() {
	failing, working := &fakeTx{name: "failing"}, &fakeTx{name: "working"}
	suite.mockIPORepo.On("OpenDueIPOs", mock.Anything, suite.now, domain.SystemActor).Return(int64(1), nil).Once()
	suite.mockIPORepo.On("ListIPOIDsDueForClose", mock.Anything, suite.now).Return([]string{"ipo-bad", "ipo-1"}, nil).Once()

	suite.mockTx.On("Begin", mock.Anything).Return(failing, nil).Once()
	suite.mockTx.On("Rollback", mock.Anything, failing).Return(nil).Once()
	suite.mockIPORepo.On("CloseIPO", mock.Anything, failing, "ipo-bad", suite.now, domain.SystemActor).
		Return(false, errors.New("serialization failure")).Once()

	suite.mockTx.On("Begin", mock.Anything).Return(working, nil).Once()
	suite.mockTx.On("Rollback", mock.Anything, working).Return(nil).Once()
	suite.mockTx.On("Commit", mock.Anything, working).Return(nil).Once()
	suite.mockIPORepo.On("CloseIPO", mock.Anything, working, "ipo-1", suite.now, domain.SystemActor).Return(true, nil).Once()
	suite.mockIPORepo.On("FindIPOByIDInTx", mock.Anything, working, "ipo-1").Return(closedIPO("ipo-1", 1000, 10), nil).Once()
	suite.mockSubRepo.On("ListReservingByIPOForUpdate", mock.Anything, working, "ipo-1").Return([]domain.Subscription{
		reservingSubscription("sub-a", "user-a", 100, suite.now.Add(-time.Hour)),
	}, nil).Once()
	suite.mockSubRepo.On("UpdateSubscription", mock.Anything, working, mock.Anything).Return(nil).Once()
	suite.expectSettlement(working)

	suite.mockIPORepo.On("MarkListedIPOs", mock.Anything, suite.now, domain.SystemActor).Return(int64(0), nil).Once()

	report, err := suite.service.RunAllocationSweep(suite.ctx, suite.now)

	suite.Require().NoError(err)
	suite.Equal(1, report.Opened)
	suite.Require().Len(report.Closed, 1)
	suite.Equal("ipo-1", report.Closed[0].IPOID)
	suite.Contains(report.Failed, "ipo-bad")
	suite.mockTx.AssertNotCalled(suite.T(), "Commit", mock.Anything, failing)
	suite.mockIPORepo.AssertExpectations(suite.T())
}

func (suite *AllocationServiceTestSuite) TestRunAllocationSweep_SkippedIPOsAreNotReported() {
	tx := &fakeTx{}
	suite.mockIPORepo.On("OpenDueIPOs", mock.Anything, suite.now, domain.SystemActor).Return(int64(0), nil).Once()
	suite.mockIPORepo.On("ListIPOIDsDueForClose", mock.Anything, suite.now).Return([]string{"ipo-1"}, nil).Once()
	expectTx(suite.mockTx, tx, true)
	suite.mockIPORepo.On("CloseIPO", mock.Anything, tx, "ipo-1", suite.now, domain.SystemActor).Return(false, nil).Once()
	suite.mockIPORepo.On("MarkListedIPOs", mock.Anything, suite.now, domain.SystemActor).Return(int64(2), nil).Once()

	report, err := suite.service.RunAllocationSweep(suite.ctx, suite.now)

	suite.Require().NoError(err)
	suite.Empty(report.Closed)
	suite.Empty(report.Failed)
	suite.Equal(2, report.Listed)
}

// --- Run Suite ---

func TestAllocationService(t *testing.T) {
	suite.Run(t, new(AllocationServiceTestSuite))
}
