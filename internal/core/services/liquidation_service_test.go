package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/atelierops/shop_ledger_app/internal/apperrors"
	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	portsevents "github.com/atelierops/shop_ledger_app/internal/core/ports/events"
	portssvc "github.com/atelierops/shop_ledger_app/internal/core/ports/services"
	"github.com/atelierops/shop_ledger_app/internal/core/services"
	"github.com/atelierops/shop_ledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByCode(ctx context.Context, branchID *string, code string) (*domain.Account, error) {
	args := m.Called(ctx, branchID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListLiquidAccounts(ctx context.Context, branchID *string) ([]domain.Account, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccountEntries(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.BalanceEntry, string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.BalanceEntry), args.String(1), args.Error(2)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccountDetails(ctx context.Context, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) GetOrCreateAccount(ctx context.Context, branchID *string, code string, actor string) (*domain.Account, error) {
	args := m.Called(ctx, branchID, code, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) EnsureDefaultAccounts(ctx context.Context, actor string) ([]domain.Account, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Test Suite ---
type LiquidationServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	mockAccountSvc *MockAccountService
	mockPublisher  *MockEventPublisher
	service        portssvc.LiquidationSvcFacade
	operatingTill  *domain.Account
	consolidated   *domain.Account
	actor          string
}

func (suite *LiquidationServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockPublisher = new(MockEventPublisher)
	suite.service = services.NewLiquidationService(
		suite.mockLedgerRepo,
		suite.mockAccountSvc,
		services.WithLiquidationEventPublisher(suite.mockPublisher),
	)

	suite.actor = uuid.NewString()
	suite.operatingTill = &domain.Account{
		AccountID: uuid.NewString(),
		Code:      domain.CodeOperatingTill,
		Kind:      domain.CurrentAsset,
		Balance:   decimal.NewFromInt(500),
		IsActive:  true,
	}
	suite.consolidated = &domain.Account{
		AccountID: uuid.NewString(),
		Code:      domain.CodeConsolidatedTill,
		Kind:      domain.CurrentAsset,
		Balance:   decimal.NewFromInt(2000),
		IsActive:  true,
	}
}

// --- Test Cases ---

func (suite *LiquidationServiceTestSuite) TestLiquidate_Success() {
	ctx := context.Background()
	amount := decimal.NewFromInt(200)
	req := dto.CreateLiquidationRequest{Amount: amount}
	entries := []domain.BalanceEntry{
		{EntryID: uuid.NewString(), AccountID: suite.operatingTill.AccountID, Amount: amount.Neg(), BalanceAfter: decimal.NewFromInt(300)},
		{EntryID: uuid.NewString(), AccountID: suite.consolidated.AccountID, Amount: amount, BalanceAfter: decimal.NewFromInt(2200)},
	}

	suite.mockAccountSvc.On("GetOrCreateAccount", ctx, (*string)(nil), domain.CodeOperatingTill, suite.actor).
		Return(suite.operatingTill, nil).Once()
	suite.mockAccountSvc.On("GetOrCreateAccount", ctx, (*string)(nil), domain.CodeConsolidatedTill, suite.actor).
		Return(suite.consolidated, nil).Once()
	suite.mockLedgerRepo.On("PostTransferEntries", ctx, (*string)(nil),
		mock.MatchedBy(func(i domain.PostingIntent) bool {
			return i.AccountID == suite.operatingTill.AccountID && i.Delta.Equal(amount.Neg()) &&
				i.RequireFunds && strings.HasPrefix(i.Reference, domain.LiquidationRefPrefix)
		}),
		mock.MatchedBy(func(i domain.PostingIntent) bool {
			return i.AccountID == suite.consolidated.AccountID && i.Delta.Equal(amount) &&
				strings.HasPrefix(i.Reference, domain.LiquidationRefPrefix)
		}),
		suite.actor,
	).Return(entries, nil).Once()
	suite.mockPublisher.On("Publish", portsevents.TopicLiquidationCompleted, mock.AnythingOfType("events.LiquidationCompletedEvent")).
		Return(nil).Once()

	result, err := suite.service.Liquidate(ctx, req, suite.actor)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.True(strings.HasPrefix(result.Reference, domain.LiquidationRefPrefix))
	suite.True(result.Amount.Equal(amount))
	suite.Equal(suite.operatingTill.AccountID, result.SourceAccountID)
	suite.Equal(suite.consolidated.AccountID, result.DestinationAccountID)
	suite.True(result.SourceBalance.Equal(decimal.NewFromInt(300)))
	suite.True(result.DestinationBalance.Equal(decimal.NewFromInt(2200)))
	suite.Equal(entries[0].EntryID, result.SourceEntryID)
	suite.Equal(entries[1].EntryID, result.DestinationEntryID)
	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockPublisher.AssertExpectations(suite.T())
}

func (suite *LiquidationServiceTestSuite) TestLiquidate_InsufficientTillBalance() {
	ctx := context.Background()
	req := dto.CreateLiquidationRequest{Amount: decimal.NewFromInt(900)}

	suite.mockAccountSvc.On("GetOrCreateAccount", ctx, (*string)(nil), domain.CodeOperatingTill, suite.actor).
		Return(suite.operatingTill, nil).Once()

	result, err := suite.service.Liquidate(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "GetOrCreateAccount", ctx, (*string)(nil), domain.CodeConsolidatedTill, suite.actor)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "PostTransferEntries", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LiquidationServiceTestSuite) TestLiquidate_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateLiquidationRequest{Amount: decimal.Zero}

	result, err := suite.service.Liquidate(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "GetOrCreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LiquidationServiceTestSuite) TestLiquidate_PostError() {
	ctx := context.Background()
	req := dto.CreateLiquidationRequest{Amount: decimal.NewFromInt(100)}
	expectedErr := assert.AnError

	suite.mockAccountSvc.On("GetOrCreateAccount", ctx, (*string)(nil), domain.CodeOperatingTill, suite.actor).
		Return(suite.operatingTill, nil).Once()
	suite.mockAccountSvc.On("GetOrCreateAccount", ctx, (*string)(nil), domain.CodeConsolidatedTill, suite.actor).
		Return(suite.consolidated, nil).Once()
	suite.mockLedgerRepo.On("PostTransferEntries", ctx, (*string)(nil), mock.Anything, mock.Anything, suite.actor).
		Return(nil, expectedErr).Once()

	result, err := suite.service.Liquidate(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, expectedErr)
	suite.mockPublisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *LiquidationServiceTestSuite) TestLiquidate_BranchScoped() {
	ctx := context.Background()
	branchID := uuid.NewString()
	amount := decimal.NewFromInt(50)
	req := dto.CreateLiquidationRequest{Amount: amount, BranchID: &branchID}
	entries := []domain.BalanceEntry{
		{EntryID: uuid.NewString(), BalanceAfter: decimal.NewFromInt(450)},
		{EntryID: uuid.NewString(), BalanceAfter: decimal.NewFromInt(2050)},
	}

	suite.mockAccountSvc.On("GetOrCreateAccount", ctx, &branchID, domain.CodeOperatingTill, suite.actor).
		Return(suite.operatingTill, nil).Once()
	suite.mockAccountSvc.On("GetOrCreateAccount", ctx, &branchID, domain.CodeConsolidatedTill, suite.actor).
		Return(suite.consolidated, nil).Once()
	suite.mockLedgerRepo.On("PostTransferEntries", ctx, (*string)(nil), mock.Anything, mock.Anything, suite.actor).
		Return(entries, nil).Once()
	suite.mockPublisher.On("Publish", portsevents.TopicLiquidationCompleted, mock.Anything).Return(nil).Once()

	result, err := suite.service.Liquidate(ctx, req, suite.actor)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *LiquidationServiceTestSuite) TestHistory_Success() {
	ctx := context.Background()
	now := time.Now().UTC()
	entries := []domain.BalanceEntry{
		{
			EntryID:      uuid.NewString(),
			AccountID:    suite.consolidated.AccountID,
			Amount:       decimal.NewFromInt(200),
			BalanceAfter: decimal.NewFromInt(2200),
			Reference:    "LIQ-20240301120000",
			Description:  "Evening close",
			EntryDate:    now,
			CreatedBy:    suite.actor,
		},
	}

	suite.mockAccountSvc.On("GetAccountByCode", ctx, (*string)(nil), domain.CodeConsolidatedTill).
		Return(suite.consolidated, nil).Once()
	suite.mockLedgerRepo.On("ListLiquidationEntries", ctx, suite.consolidated.AccountID, (*time.Time)(nil), (*time.Time)(nil), 50).
		Return(entries, nil).Once()

	records, err := suite.service.History(ctx, dto.LiquidationHistoryRequest{})

	suite.Require().NoError(err)
	suite.Require().Len(records, 1)
	suite.Equal(entries[0].EntryID, records[0].EntryID)
	suite.Equal("LIQ-20240301120000", records[0].Reference)
	suite.True(records[0].Amount.Equal(decimal.NewFromInt(200)))
	suite.Equal("Evening close", records[0].Notes)
	suite.Equal(suite.actor, records[0].CreatedBy)
	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LiquidationServiceTestSuite) TestHistory_NoConsolidatedTillYet() {
	ctx := context.Background()

	suite.mockAccountSvc.On("GetAccountByCode", ctx, (*string)(nil), domain.CodeConsolidatedTill).
		Return(nil, apperrors.ErrNotFound).Once()

	records, err := suite.service.History(ctx, dto.LiquidationHistoryRequest{})

	suite.Require().NoError(err)
	suite.NotNil(records)
	suite.Empty(records)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ListLiquidationEntries", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LiquidationServiceTestSuite) TestHistory_DateWindow() {
	ctx := context.Background()
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	req := dto.LiquidationHistoryRequest{FromDate: &from, ToDate: &to, Limit: 10}

	suite.mockAccountSvc.On("GetAccountByCode", ctx, (*string)(nil), domain.CodeConsolidatedTill).
		Return(suite.consolidated, nil).Once()
	suite.mockLedgerRepo.On("ListLiquidationEntries", ctx, suite.consolidated.AccountID, &from, &to, 10).
		Return([]domain.BalanceEntry{}, nil).Once()

	records, err := suite.service.History(ctx, req)

	suite.Require().NoError(err)
	suite.Empty(records)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestLiquidationService(t *testing.T) {
	suite.Run(t, new(LiquidationServiceTestSuite))
}
