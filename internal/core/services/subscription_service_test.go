package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/ipo_ledger/internal/apperrors"
	"github.com/SscSPs/ipo_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/ipo_ledger/internal/core/ports/services"
	"github.com/SscSPs/ipo_ledger/internal/core/services"
	"github.com/SscSPs/ipo_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---

type SubscriptionServiceTestSuite struct {
	suite.Suite
	mockTx           *MockTxManager
	mockSubRepo      *MockSubscriptionRepository
	mockIPORepo      *MockIPORepository
	mockBalanceRepo  *MockBalanceRepository
	mockAccountRepo  *MockInvestorAccountRepository
	mockRateRepo     *MockCurrencyRateRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          portssvc.SubscriptionSvcFacade
	ctx              context.Context
	now              time.Time
	tx               *fakeTx
}

func (suite *SubscriptionServiceTestSuite) SetupTest() {
	suite.mockTx = new(MockTxManager)
	suite.mockSubRepo = new(MockSubscriptionRepository)
	suite.mockIPORepo = new(MockIPORepository)
	suite.mockBalanceRepo = new(MockBalanceRepository)
	suite.mockAccountRepo = new(MockInvestorAccountRepository)
	suite.mockRateRepo = new(MockCurrencyRateRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.now = time.Date(2026, 6, 10, 10, 0, 0, 0, time.UTC)
	suite.tx = &fakeTx{}

	clock := services.WithClock(func() time.Time { return suite.now })
	currencySvc := services.NewCurrencyService(suite.mockCurrencyRepo)
	rateSvc := services.NewCurrencyRateService(suite.mockRateRepo, currencySvc)
	accountSvc := services.NewAccountService(suite.mockAccountRepo, currencySvc, "USD")
	balanceSvc := services.NewBalanceService(suite.mockBalanceRepo, accountSvc, rateSvc)
	suite.service = services.NewSubscriptionService(suite.mockTx, suite.mockSubRepo, suite.mockIPORepo, balanceSvc, rateSvc, clock)
	suite.ctx = context.Background()

	suite.mockAccountRepo.On("FindInvestorAccount", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound).Maybe()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, "USD").
		Return(&domain.Currency{CurrencyCode: "USD", Precision: 2}, nil).Maybe()
}

func (suite *SubscriptionServiceTestSuite) ongoingIPO() *domain.IPO {
	return &domain.IPO{
		IPOID:        "ipo-1",
		Symbol:       "ACME",
		CurrencyCode: "USD",
		PriceMin:     decimal.NewFromInt(10),
		PriceMax:     decimal.NewFromInt(12),
		LotSize:      10,
		TotalShares:  1000,
		StartDate:    suite.now.Add(-24 * time.Hour),
		EndDate:      suite.now.Add(24 * time.Hour),
		Status:       domain.IPOOngoing,
	}
}

func (suite *SubscriptionServiceTestSuite) depositsOf(amount string, excludeID string, extra ...domain.BalanceComponent) {
	components := append([]domain.BalanceComponent{component(domain.ComponentApprovedDeposits, "USD", amount)}, extra...)
	suite.mockBalanceRepo.On("SumBalanceComponentsInTx", mock.Anything, suite.tx, "user-1", excludeID).Return(components, nil).Once()
}

func pendingSubscription(id, userID string) *domain.Subscription {
	return &domain.Subscription{
		SubscriptionID: id,
		UserID:         userID,
		IPOID:          "ipo-1",
		Quantity:       50,
		PricePerShare:  decimal.NewFromInt(12),
		TotalAmount:    decimal.NewFromInt(600),
		Status:         domain.SubscriptionPending,
	}
}

// --- Test Cases ---

func (suite *SubscriptionServiceTestSuite) TestSubscribe_Success() {
	expectTx(suite.mockTx, suite.tx, true)
	suite.mockSubRepo.On("LockUser", mock.Anything, suite.tx, "user-1").Return(nil).Once()
	suite.mockIPORepo.On("FindIPOByIDForShare", mock.Anything, suite.tx, "ipo-1").Return(suite.ongoingIPO(), nil).Once()
	suite.mockSubRepo.On("HasOpenSubscription", mock.Anything, suite.tx, "user-1", "ipo-1").Return(false, nil).Once()
	suite.depositsOf("1000", "")
	suite.mockSubRepo.On("InsertSubscription", mock.Anything, suite.tx, mock.MatchedBy(func(s domain.Subscription) bool {
		return s.UserID == "user-1" && s.Quantity == 50 && s.TotalAmount.Equal(decimal.NewFromInt(600)) &&
			s.Status == domain.SubscriptionPending && s.AllocationAmount.IsZero()
	})).Return(nil).Once()

	sub, err := suite.service.Subscribe(suite.ctx, "user-1", dto.CreateSubscriptionRequest{
		IPOID: "ipo-1", Quantity: 50, PricePerShare: decimal.NewFromInt(12),
	})

	suite.Require().NoError(err)
	suite.Equal(domain.SubscriptionPending, sub.Status)
	suite.mockSubRepo.AssertExpectations(suite.T())
	suite.mockTx.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestSubscribe_InsufficientBalance() {
	expectTx(suite.mockTx, suite.tx, false)
	suite.mockSubRepo.On("LockUser", mock.Anything, suite.tx, "user-1").Return(nil).Once()
	suite.mockIPORepo.On("FindIPOByIDForShare", mock.Anything, suite.tx, "ipo-1").Return(suite.ongoingIPO(), nil).Once()
	suite.mockSubRepo.On("HasOpenSubscription", mock.Anything, suite.tx, "user-1", "ipo-1").Return(false, nil).Once()
	suite.depositsOf("1000", "", component(domain.ComponentReserved, "USD", "500"))

	_, err := suite.service.Subscribe(suite.ctx, "user-1", dto.CreateSubscriptionRequest{
		IPOID: "ipo-1", Quantity: 50, PricePerShare: decimal.NewFromInt(12),
	})

	suite.ErrorIs(err, apperrors.ErrInsufficientBalance)
	suite.mockSubRepo.AssertNotCalled(suite.T(), "InsertSubscription", mock.Anything, mock.Anything, mock.Anything)
	suite.mockTx.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestSubscribe_ExactBalanceIsEnough() {
	expectTx(suite.mockTx, suite.tx, true)
	suite.mockSubRepo.On("LockUser", mock.Anything, suite.tx, "user-1").Return(nil).Once()
	suite.mockIPORepo.On("FindIPOByIDForShare", mock.Anything, suite.tx, "ipo-1").Return(suite.ongoingIPO(), nil).Once()
	suite.mockSubRepo.On("HasOpenSubscription", mock.Anything, suite.tx, "user-1", "ipo-1").Return(false, nil).Once()
	suite.depositsOf("600", "")
	suite.mockSubRepo.On("InsertSubscription", mock.Anything, suite.tx, mock.Anything).Return(nil).Once()

	_, err := suite.service.Subscribe(suite.ctx, "user-1", dto.CreateSubscriptionRequest{
		IPOID: "ipo-1", Quantity: 50, PricePerShare: decimal.NewFromInt(12),
	})

	suite.Require().NoError(err)
}

func (suite *SubscriptionServiceTestSuite) TestSubscribe_ConvertsOrderValueToBaseCurrency() {
	ipo := suite.ongoingIPO()
	ipo.CurrencyCode = "TRY"
	ipo.PriceMin = decimal.NewFromInt(300)
	ipo.PriceMax = decimal.NewFromInt(400)

	expectTx(suite.mockTx, suite.tx, false)
	suite.mockSubRepo.On("LockUser", mock.Anything, suite.tx, "user-1").Return(nil).Once()
	suite.mockIPORepo.On("FindIPOByIDForShare", mock.Anything, suite.tx, "ipo-1").Return(ipo, nil).Once()
	suite.mockSubRepo.On("HasOpenSubscription", mock.Anything, suite.tx, "user-1", "ipo-1").Return(false, nil).Once()
	suite.depositsOf("100", "")
	suite.mockRateRepo.On("FindActiveRate", mock.Anything, "TRY", "USD").Return(activeRate("TRY", "USD", "0.029"), nil).Once()

	// 10 * 350 TRY = 3500 TRY = 101.50 USD
	_, err := suite.service.Subscribe(suite.ctx, "user-1", dto.CreateSubscriptionRequest{
		IPOID: "ipo-1", Quantity: 10, PricePerShare: decimal.NewFromInt(350),
	})

	suite.ErrorIs(err, apperrors.ErrInsufficientBalance)
	suite.Contains(err.Error(), "101.5")
}

func (suite *SubscriptionServiceTestSuite) TestSubscribe_OutsideWindow() {
	ipo := suite.ongoingIPO()
	ipo.EndDate = suite.now.Add(-time.Minute)

	expectTx(suite.mockTx, suite.tx, false)
	suite.mockSubRepo.On("LockUser", mock.Anything, suite.tx, "user-1").Return(nil).Once()
	suite.mockIPORepo.On("FindIPOByIDForShare", mock.Anything, suite.tx, "ipo-1").Return(ipo, nil).Once()

	_, err := suite.service.Subscribe(suite.ctx, "user-1", dto.CreateSubscriptionRequest{
		IPOID: "ipo-1", Quantity: 50, PricePerShare: decimal.NewFromInt(12),
	})

	suite.ErrorIs(err, apperrors.ErrOutsideSubscriptionWindow)
	suite.mockBalanceRepo.AssertNotCalled(suite.T(), "SumBalanceComponentsInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestSubscribe_InvalidLotAndPrice() {
	cases := []struct {
		name     string
		quantity int64
		price    string
		expected error
	}{
		{"not a lot multiple", 55, "12", apperrors.ErrInvalidLotSize},
		{"below band", 50, "9.99", apperrors.ErrPriceOutOfRange},
		{"above band", 50, "12.01", apperrors.ErrPriceOutOfRange},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			expectTx(suite.mockTx, suite.tx, false)
			suite.mockSubRepo.On("LockUser", mock.Anything, suite.tx, "user-1").Return(nil).Once()
			suite.mockIPORepo.On("FindIPOByIDForShare", mock.Anything, suite.tx, "ipo-1").Return(suite.ongoingIPO(), nil).Once()

			_, err := suite.service.Subscribe(suite.ctx, "user-1", dto.CreateSubscriptionRequest{
				IPOID: "ipo-1", Quantity: tc.quantity, PricePerShare: decimal.RequireFromString(tc.price),
			})

			suite.ErrorIs(err, tc.expected)
		})
	}
}

func (suite *SubscriptionServiceTestSuite) TestSubscribe_DuplicateOpenSubscription() {
	expectTx(suite.mockTx, suite.tx, false)
	suite.mockSubRepo.On("LockUser", mock.Anything, suite.tx, "user-1").Return(nil).Once()
	suite.mockIPORepo.On("FindIPOByIDForShare", mock.Anything, suite.tx, "ipo-1").Return(suite.ongoingIPO(), nil).Once()
	suite.mockSubRepo.On("HasOpenSubscription", mock.Anything, suite.tx, "user-1", "ipo-1").Return(true, nil).Once()

	_, err := suite.service.Subscribe(suite.ctx, "user-1", dto.CreateSubscriptionRequest{
		IPOID: "ipo-1", Quantity: 50, PricePerShare: decimal.NewFromInt(12),
	})

	suite.ErrorIs(err, apperrors.ErrDuplicateSubscription)
	code, status := apperrors.Classify(err)
	suite.Equal(apperrors.CodeDuplicateSubscription, code)
	suite.Equal(409, status)
}

func (suite *SubscriptionServiceTestSuite) TestCancel_Pending() {
	expectTx(suite.mockTx, suite.tx, true)
	suite.mockSubRepo.On("LockUser", mock.Anything, suite.tx, "user-1").Return(nil).Once()
	suite.mockSubRepo.On("FindSubscriptionByIDForUpdate", mock.Anything, suite.tx, "sub-1").Return(pendingSubscription("sub-1", "user-1"), nil).Once()
	suite.mockSubRepo.On("UpdateSubscription", mock.Anything, suite.tx, mock.MatchedBy(func(s domain.Subscription) bool {
		return s.Status == domain.SubscriptionRejected && *s.StatusReason == domain.ReasonUserCancelled
	})).Return(nil).Once()

	sub, err := suite.service.Cancel(suite.ctx, "sub-1", "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.SubscriptionRejected, sub.Status)
	suite.mockSubRepo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestCancel_ConfirmedIsRejected() {
	confirmed := pendingSubscription("sub-1", "user-1")
	confirmed.Status = domain.SubscriptionConfirmed

	expectTx(suite.mockTx, suite.tx, false)
	suite.mockSubRepo.On("LockUser", mock.Anything, suite.tx, "user-1").Return(nil).Once()
	suite.mockSubRepo.On("FindSubscriptionByIDForUpdate", mock.Anything, suite.tx, "sub-1").Return(confirmed, nil).Once()

	_, err := suite.service.Cancel(suite.ctx, "sub-1", "user-1")

	suite.ErrorIs(err, apperrors.ErrInvalidStateTransition)
	suite.mockSubRepo.AssertNotCalled(suite.T(), "UpdateSubscription", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestCancel_OtherUsersSubscription() {
	expectTx(suite.mockTx, suite.tx, false)
	suite.mockSubRepo.On("LockUser", mock.Anything, suite.tx, "user-1").Return(nil).Once()
	suite.mockSubRepo.On("FindSubscriptionByIDForUpdate", mock.Anything, suite.tx, "sub-1").Return(pendingSubscription("sub-1", "user-2"), nil).Once()

	_, err := suite.service.Cancel(suite.ctx, "sub-1", "user-1")

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockSubRepo.AssertNotCalled(suite.T(), "UpdateSubscription", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestAmend_ExcludesOwnReservation() {
	expectTx(suite.mockTx, suite.tx, true)
	suite.mockSubRepo.On("LockUser", mock.Anything, suite.tx, "user-1").Return(nil).Once()
	suite.mockSubRepo.On("FindSubscriptionByIDForUpdate", mock.Anything, suite.tx, "sub-1").Return(pendingSubscription("sub-1", "user-1"), nil).Once()
	suite.mockIPORepo.On("FindIPOByIDForShare", mock.Anything, suite.tx, "ipo-1").Return(suite.ongoingIPO(), nil).Once()
	// 1000 deposited with the 600 of sub-1 left out, so 80 * 12 = 960 fits.
	suite.depositsOf("1000", "sub-1")
	suite.mockSubRepo.On("UpdateSubscription", mock.Anything, suite.tx, mock.MatchedBy(func(s domain.Subscription) bool {
		return s.Quantity == 80 && s.TotalAmount.Equal(decimal.NewFromInt(960)) && s.Status == domain.SubscriptionPending &&
			s.SubmittedAt.Equal(suite.now)
	})).Return(nil).Once()

	sub, err := suite.service.Amend(suite.ctx, "sub-1", "user-1", dto.AmendSubscriptionRequest{
		Quantity: 80, PricePerShare: decimal.NewFromInt(12),
	})

	suite.Require().NoError(err)
	suite.Equal(int64(80), sub.Quantity)
	suite.mockBalanceRepo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestConfirm_Pending() {
	expectTx(suite.mockTx, suite.tx, true)
	suite.mockSubRepo.On("FindSubscriptionByIDForUpdate", mock.Anything, suite.tx, "sub-1").Return(pendingSubscription("sub-1", "user-1"), nil).Once()
	suite.mockSubRepo.On("UpdateSubscription", mock.Anything, suite.tx, mock.MatchedBy(func(s domain.Subscription) bool {
		return s.Status == domain.SubscriptionConfirmed && s.LastUpdatedBy == "admin-1"
	})).Return(nil).Once()

	sub, err := suite.service.Confirm(suite.ctx, "sub-1", "admin-1")

	suite.Require().NoError(err)
	suite.Equal(domain.SubscriptionConfirmed, sub.Status)
	suite.mockSubRepo.AssertNotCalled(suite.T(), "LockUser", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestGetSubscription_OwnerScoped() {
	suite.mockSubRepo.On("FindSubscriptionByID", mock.Anything, "sub-1").Return(pendingSubscription("sub-1", "user-2"), nil).Once()

	_, err := suite.service.GetSubscription(suite.ctx, "sub-1", "user-1")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Suite ---

func TestSubscriptionService(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceTestSuite))
}
