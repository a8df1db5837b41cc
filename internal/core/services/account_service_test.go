package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/atelierops/shop_ledger_app/internal/apperrors"
	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/atelierops/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/atelierops/shop_ledger_app/internal/core/ports/services"
	"github.com/atelierops/shop_ledger_app/internal/core/services"
	"github.com/atelierops/shop_ledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, branchID *string, code string) (*domain.Account, error) {
	args := m.Called(ctx, branchID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, filter portsrepo.AccountListFilter) ([]domain.Account, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListLiquidAccounts(ctx context.Context, branchID *string) ([]domain.Account, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpsertAccountByCode(ctx context.Context, account domain.Account) (*domain.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountDetails(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.BalanceEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.BalanceEntry, string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.BalanceEntry), args.String(1), args.Error(2)
}

func (m *MockLedgerRepository) ListLiquidationEntries(ctx context.Context, accountID string, from, to *time.Time, limit int) ([]domain.BalanceEntry, error) {
	args := m.Called(ctx, accountID, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceEntry), args.Error(1)
}

func (m *MockLedgerRepository) SumEntriesForAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) PostEntries(ctx context.Context, intents []domain.PostingIntent, actor string) ([]domain.BalanceEntry, error) {
	args := m.Called(ctx, intents, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceEntry), args.Error(1)
}

func (m *MockLedgerRepository) PostTransactionEntry(ctx context.Context, transactionID string, intent domain.PostingIntent, actor string) (*domain.BalanceEntry, error) {
	args := m.Called(ctx, transactionID, intent, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceEntry), args.Error(1)
}

func (m *MockLedgerRepository) PostTransferEntries(ctx context.Context, transactionID *string, from, to domain.PostingIntent, actor string) ([]domain.BalanceEntry, error) {
	args := m.Called(ctx, transactionID, from, to, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceEntry), args.Error(1)
}

// --- Test Suite ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockAccountRepository
	mockLedgerRepo *MockLedgerRepository
	service        portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewAccountService(
		suite.mockRepo,
		services.WithLedgerRepository(suite.mockLedgerRepo),
	)
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateAccountRequest{
		Code: "1105",
		Name: "Petty cash",
		Kind: domain.CurrentAsset,
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == req.Code && a.Name == req.Name && a.Kind == domain.CurrentAsset &&
			a.Balance.IsZero() && a.IsActive && a.CreatedBy == creatorUserID
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.Equal(req.Code, account.Code)
	suite.Equal(req.Name, account.Name)
	suite.True(account.Balance.IsZero())
	suite.True(account.IsActive)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "PostEntries", mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_WithOpeningBalance() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	opening := decimal.NewFromInt(500)
	req := dto.CreateAccountRequest{
		Code:           "1106",
		Name:           "Savings",
		Kind:           domain.CurrentAsset,
		OpeningBalance: &opening,
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()
	suite.mockLedgerRepo.On("PostEntries", ctx, mock.MatchedBy(func(intents []domain.PostingIntent) bool {
		return len(intents) == 1 && intents[0].Delta.Equal(opening) && intents[0].Description == "Opening balance"
	}), creatorUserID).Return([]domain.BalanceEntry{
		{EntryID: uuid.NewString(), Amount: opening, BalanceAfter: opening},
	}, nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.True(account.Balance.Equal(opening))
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code: "1101",
		Name: "Another till",
		Kind: domain.CurrentAsset,
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()

	account, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_FixedAssetWithoutPayload() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code: "1201",
		Name: "Sewing machine",
		Kind: domain.FixedAsset,
	}

	account, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_LiabilityPayloadOnAsset() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:      "1107",
		Name:      "Till with creditor",
		Kind:      domain.CurrentAsset,
		Liability: &dto.LiabilityPayload{Creditor: "Bank"},
	}

	account, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	expected := &domain.Account{AccountID: accountID, Code: "1101"}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(expected, nil).Once()

	account, err := suite.service.GetAccountByID(ctx, accountID)

	suite.Require().NoError(err)
	suite.Equal(expected, account)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetAccountByID(ctx, accountID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_MapsKindFilter() {
	ctx := context.Background()
	kind := string(domain.FixedAsset)
	params := dto.ListAccountsParams{Kind: &kind, Limit: 10}
	expected := []domain.Account{{AccountID: uuid.NewString(), Kind: domain.FixedAsset}}

	suite.mockRepo.On("ListAccounts", ctx, mock.MatchedBy(func(f portsrepo.AccountListFilter) bool {
		return f.Kind != nil && *f.Kind == domain.FixedAsset && f.Limit == 10 && !f.IncludeInactive
	})).Return(expected, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, params)

	suite.Require().NoError(err)
	suite.Equal(expected, accounts)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_UnknownKind() {
	ctx := context.Background()
	kind := "EQUITY"
	params := dto.ListAccountsParams{Kind: &kind}

	accounts, err := suite.service.ListAccounts(ctx, params)

	suite.Require().Error(err)
	suite.Nil(accounts)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestListAccounts_EmptyResult() {
	ctx := context.Background()

	suite.mockRepo.On("ListAccounts", ctx, mock.AnythingOfType("repositories.AccountListFilter")).Return(nil, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, dto.ListAccountsParams{})

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccountEntries_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID}
	entries := []domain.BalanceEntry{
		{EntryID: uuid.NewString(), AccountID: accountID, Amount: decimal.NewFromInt(100)},
	}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockLedgerRepo.On("ListEntriesByAccount", ctx, accountID, 50, (*string)(nil)).Return(entries, "", nil).Once()

	result, nextToken, err := suite.service.ListAccountEntries(ctx, accountID, 0, nil)

	suite.Require().NoError(err)
	suite.Equal(entries, result)
	suite.Empty(nextToken)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccountEntries_AccountNotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	result, _, err := suite.service.ListAccountEntries(ctx, accountID, 50, nil)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ListEntriesByAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccountDetails_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	updaterUserID := uuid.NewString()
	existing := &domain.Account{AccountID: accountID, Name: "Old name", Kind: domain.CurrentAsset}
	newName := "New name"

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateAccountDetails", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == newName && a.LastUpdatedBy == updaterUserID
	})).Return(nil).Once()

	account, err := suite.service.UpdateAccountDetails(ctx, accountID, dto.UpdateAccountRequest{Name: &newName}, updaterUserID)

	suite.Require().NoError(err)
	suite.Equal(newName, account.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccountDetails_NoFields() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{AccountID: accountID, Name: "Unchanged"}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()

	account, err := suite.service.UpdateAccountDetails(ctx, accountID, dto.UpdateAccountRequest{}, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal("Unchanged", account.Name)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccountDetails", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccountDetails_PayloadKindMismatch() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{AccountID: accountID, Kind: domain.CurrentAsset}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()

	account, err := suite.service.UpdateAccountDetails(ctx, accountID, dto.UpdateAccountRequest{
		FixedAsset: &dto.FixedAssetPayload{OriginalValue: decimal.NewFromInt(1000)},
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccountDetails", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	userID := uuid.NewString()
	existing := &domain.Account{AccountID: accountID, Balance: decimal.Zero, IsActive: true}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()
	suite.mockRepo.On("DeactivateAccount", ctx, accountID, userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, accountID, userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_NonZeroBalance() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{AccountID: accountID, Balance: decimal.NewFromInt(250), IsActive: true}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()

	err := suite.service.DeactivateAccount(ctx, accountID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetOrCreateAccount_Existing() {
	ctx := context.Background()
	expected := &domain.Account{AccountID: uuid.NewString(), Code: domain.CodeOperatingTill}

	suite.mockRepo.On("FindAccountByCode", ctx, (*string)(nil), domain.CodeOperatingTill).Return(expected, nil).Once()

	account, err := suite.service.GetOrCreateAccount(ctx, nil, domain.CodeOperatingTill, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(expected, account)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertAccountByCode", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetOrCreateAccount_BootstrapsWhenMissing() {
	ctx := context.Background()
	actor := uuid.NewString()
	created := &domain.Account{
		AccountID: uuid.NewString(),
		Code:      domain.CodeMobileWallet,
		Name:      "Mobile wallet",
		Kind:      domain.CurrentAsset,
		Balance:   decimal.Zero,
		IsActive:  true,
	}

	suite.mockRepo.On("FindAccountByCode", ctx, (*string)(nil), domain.CodeMobileWallet).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("UpsertAccountByCode", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == domain.CodeMobileWallet && a.Kind == domain.CurrentAsset &&
			a.Balance.IsZero() && a.IsActive && a.Name == "Mobile wallet" && a.CreatedBy == actor
	})).Return(created, nil).Once()

	account, err := suite.service.GetOrCreateAccount(ctx, nil, domain.CodeMobileWallet, actor)

	suite.Require().NoError(err)
	suite.Equal(created, account)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetOrCreateAccount_LookupError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("FindAccountByCode", ctx, (*string)(nil), domain.CodeBank).Return(nil, expectedErr).Once()

	account, err := suite.service.GetOrCreateAccount(ctx, nil, domain.CodeBank, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, expectedErr)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertAccountByCode", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetOrCreateAccount_BranchScoped() {
	ctx := context.Background()
	branchID := uuid.NewString()
	expected := &domain.Account{AccountID: uuid.NewString(), BranchID: &branchID, Code: domain.CodeOperatingTill}

	suite.mockRepo.On("FindAccountByCode", ctx, &branchID, domain.CodeOperatingTill).Return(expected, nil).Once()

	account, err := suite.service.GetOrCreateAccount(ctx, &branchID, domain.CodeOperatingTill, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(expected, account)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestEnsureDefaultAccounts_Success() {
	ctx := context.Background()
	actor := uuid.NewString()
	codes := []string{domain.CodeOperatingTill, domain.CodeConsolidatedTill, domain.CodeMobileWallet, domain.CodeBank}

	for _, code := range codes {
		account := &domain.Account{AccountID: uuid.NewString(), Code: code, Kind: domain.CurrentAsset}
		suite.mockRepo.On("FindAccountByCode", ctx, (*string)(nil), code).Return(account, nil).Once()
	}

	accounts, err := suite.service.EnsureDefaultAccounts(ctx, actor)

	suite.Require().NoError(err)
	suite.Len(accounts, len(codes))
	for i, code := range codes {
		suite.Equal(code, accounts[i].Code)
	}
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestEnsureDefaultAccounts_StopsOnError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("FindAccountByCode", ctx, (*string)(nil), domain.CodeOperatingTill).Return(nil, expectedErr).Once()

	accounts, err := suite.service.EnsureDefaultAccounts(ctx, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(accounts)
	suite.ErrorIs(err, expectedErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
