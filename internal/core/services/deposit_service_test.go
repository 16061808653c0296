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

type DepositServiceTestSuite struct {
	suite.Suite
	mockTx           *MockTxManager
	mockDepositRepo  *MockDepositRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          portssvc.DepositSvcFacade
	ctx              context.Context
	now              time.Time
}

func (suite *DepositServiceTestSuite) SetupTest() {
	suite.mockTx = new(MockTxManager)
	suite.mockDepositRepo = new(MockDepositRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	currencySvc := services.NewCurrencyService(suite.mockCurrencyRepo)
	suite.service = services.NewDepositService(suite.mockTx, suite.mockDepositRepo, currencySvc,
		services.WithClock(func() time.Time { return suite.now }))
	suite.ctx = context.Background()

	suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, "USD").
		Return(&domain.Currency{CurrencyCode: "USD", Precision: 2}, nil).Maybe()
}

func pendingDeposit(id, userID string) *domain.Deposit {
	return &domain.Deposit{
		DepositID:    id,
		UserID:       userID,
		Amount:       decimal.NewFromInt(1000),
		CurrencyCode: "USD",
		Method:       "bank_transfer",
		Status:       domain.DepositPending,
	}
}

// --- Test Cases ---

func (suite *DepositServiceTestSuite) TestCreateDeposit_Success() {
	req := dto.CreateDepositRequest{Amount: decimal.RequireFromString("1000.50"), CurrencyCode: "usd", Method: "bank_transfer"}

	suite.mockDepositRepo.On("SaveDeposit", mock.Anything, mock.MatchedBy(func(d domain.Deposit) bool {
		return d.UserID == "user-1" && d.CurrencyCode == "USD" && d.Status == domain.DepositPending &&
			d.CreatedAt.Equal(suite.now) && d.DepositID != ""
	})).Return(nil).Once()

	deposit, err := suite.service.CreateDeposit(suite.ctx, "user-1", req)

	suite.Require().NoError(err)
	suite.Equal(domain.DepositPending, deposit.Status)
	suite.mockDepositRepo.AssertExpectations(suite.T())
}

func (suite *DepositServiceTestSuite) TestCreateDeposit_TooManyDecimals() {
	req := dto.CreateDepositRequest{Amount: decimal.RequireFromString("10.001"), CurrencyCode: "USD", Method: "card"}

	_, err := suite.service.CreateDeposit(suite.ctx, "user-1", req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDepositRepo.AssertNotCalled(suite.T(), "SaveDeposit", mock.Anything, mock.Anything)
}

func (suite *DepositServiceTestSuite) TestCreateDeposit_UnknownCurrency() {
	req := dto.CreateDepositRequest{Amount: decimal.NewFromInt(5), CurrencyCode: "XYZ", Method: "card"}
	suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, "XYZ").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateDeposit(suite.ctx, "user-1", req)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DepositServiceTestSuite) TestCreateDeposit_NonPositiveAmount() {
	req := dto.CreateDepositRequest{Amount: decimal.NewFromInt(-5), CurrencyCode: "USD", Method: "card"}

	_, err := suite.service.CreateDeposit(suite.ctx, "user-1", req)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DepositServiceTestSuite) TestGetDeposit_OtherUserIsNotFound() {
	suite.mockDepositRepo.On("FindDepositByID", mock.Anything, "dep-1").Return(pendingDeposit("dep-1", "user-2"), nil).Once()

	_, err := suite.service.GetDeposit(suite.ctx, "dep-1", "user-1")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *DepositServiceTestSuite) TestReviewDeposit_Approve() {
	tx := &fakeTx{}
	expectTx(suite.mockTx, tx, true)
	suite.mockDepositRepo.On("FindDepositByIDForUpdate", mock.Anything, tx, "dep-1").Return(pendingDeposit("dep-1", "user-1"), nil).Once()
	suite.mockDepositRepo.On("UpdateDepositReview", mock.Anything, tx, mock.MatchedBy(func(d domain.Deposit) bool {
		return d.Status == domain.DepositApproved && *d.ReviewedBy == "admin-1" && d.ReviewedAt.Equal(suite.now)
	})).Return(nil).Once()

	deposit, err := suite.service.ReviewDeposit(suite.ctx, "dep-1", domain.DecisionApprove, "", "admin-1")

	suite.Require().NoError(err)
	suite.Equal(domain.DepositApproved, deposit.Status)
	suite.mockTx.AssertExpectations(suite.T())
	suite.mockDepositRepo.AssertExpectations(suite.T())
}

func (suite *DepositServiceTestSuite) TestReviewDeposit_RejectStoresReason() {
	tx := &fakeTx{}
	expectTx(suite.mockTx, tx, true)
	suite.mockDepositRepo.On("FindDepositByIDForUpdate", mock.Anything, tx, "dep-1").Return(pendingDeposit("dep-1", "user-1"), nil).Once()
	suite.mockDepositRepo.On("UpdateDepositReview", mock.Anything, tx, mock.MatchedBy(func(d domain.Deposit) bool {
		return d.Status == domain.DepositRejected && *d.RejectionReason == "name mismatch"
	})).Return(nil).Once()

	deposit, err := suite.service.ReviewDeposit(suite.ctx, "dep-1", domain.DecisionReject, " name mismatch ", "admin-1")

	suite.Require().NoError(err)
	suite.Equal(domain.DepositRejected, deposit.Status)
}

func (suite *DepositServiceTestSuite) TestReviewDeposit_RejectWithoutReason() {
	tx := &fakeTx{}
	expectTx(suite.mockTx, tx, false)
	suite.mockDepositRepo.On("FindDepositByIDForUpdate", mock.Anything, tx, "dep-1").Return(pendingDeposit("dep-1", "user-1"), nil).Once()

	_, err := suite.service.ReviewDeposit(suite.ctx, "dep-1", domain.DecisionReject, "  ", "admin-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDepositRepo.AssertNotCalled(suite.T(), "UpdateDepositReview", mock.Anything, mock.Anything, mock.Anything)
	suite.mockTx.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *DepositServiceTestSuite) TestReviewDeposit_AlreadyTerminal() {
	tx := &fakeTx{}
	expectTx(suite.mockTx, tx, false)
	approved := pendingDeposit("dep-1", "user-1")
	approved.Status = domain.DepositApproved
	suite.mockDepositRepo.On("FindDepositByIDForUpdate", mock.Anything, tx, "dep-1").Return(approved, nil).Once()

	_, err := suite.service.ReviewDeposit(suite.ctx, "dep-1", domain.DecisionReject, "late", "admin-2")

	suite.ErrorIs(err, apperrors.ErrInvalidStateTransition)
	suite.mockDepositRepo.AssertNotCalled(suite.T(), "UpdateDepositReview", mock.Anything, mock.Anything, mock.Anything)
	suite.mockTx.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockTx.AssertExpectations(suite.T())
}

func (suite *DepositServiceTestSuite) TestListDepositsByUser_ClampsLimit() {
	suite.mockDepositRepo.On("ListDepositsByUser", mock.Anything, "user-1", 100, (*string)(nil)).
		Return([]domain.Deposit{*pendingDeposit("dep-1", "user-1")}, nil, nil).Once()

	deposits, next, err := suite.service.ListDepositsByUser(suite.ctx, "user-1", 5000, nil)

	suite.Require().NoError(err)
	suite.Len(deposits, 1)
	suite.Nil(next)
}

func (suite *DepositServiceTestSuite) TestListPendingDeposits_DefaultLimit() {
	suite.mockDepositRepo.On("ListDepositsByStatus", mock.Anything, domain.DepositPending, 50).Return([]domain.Deposit{}, nil).Once()

	_, err := suite.service.ListPendingDeposits(suite.ctx, 0)

	suite.Require().NoError(err)
	suite.mockDepositRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---

func TestDepositService(t *testing.T) {
	suite.Run(t, new(DepositServiceTestSuite))
}
