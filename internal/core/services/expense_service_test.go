package services_test

import (
	"context"
	"testing"

	"github.com/atelierops/shop_ledger_app/internal/apperrors"
	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/atelierops/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/atelierops/shop_ledger_app/internal/core/ports/services"
	"github.com/atelierops/shop_ledger_app/internal/core/services"
	"github.com/atelierops/shop_ledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpenses(ctx context.Context, filter portsrepo.ExpenseListFilter) ([]domain.Expense, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) UpdateExpensePayment(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

// --- Mock TransactionRecorder ---
type MockTransactionRecorder struct {
	mock.Mock
}

func (m *MockTransactionRecorder) RecordTransaction(ctx context.Context, req dto.CreateTransactionRequest, actor string) (*domain.PostingResult, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}

func (m *MockTransactionRecorder) RecordIncome(ctx context.Context, req dto.RecordIncomeRequest, actor string) (*domain.PostingResult, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}

func (m *MockTransactionRecorder) RecordExpensePayment(ctx context.Context, req dto.RecordExpensePaymentRequest, actor string) (*domain.PostingResult, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}

func (m *MockTransactionRecorder) RecordTransfer(ctx context.Context, req dto.RecordTransferRequest, actor string) (*domain.TransferResult, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferResult), args.Error(1)
}

// --- Test Suite ---
type ExpenseServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockExpenseRepository
	mockRecorder *MockTransactionRecorder
	service      portssvc.ExpenseSvcFacade
	actor        string
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockExpenseRepository)
	suite.mockRecorder = new(MockTransactionRecorder)
	suite.service = services.NewExpenseService(suite.mockRepo, suite.mockRecorder)
	suite.actor = uuid.NewString()
}

// postedResult builds the recorder result for a payment that landed on an
// account.
func (suite *ExpenseServiceTestSuite) postedResult(accountID string) *domain.PostingResult {
	return &domain.PostingResult{
		Transaction: domain.Transaction{
			TransactionID:   uuid.NewString(),
			Type:            domain.TransactionExpense,
			PostedAccountID: &accountID,
		},
		Entry:   &domain.BalanceEntry{EntryID: uuid.NewString()},
		Outcome: domain.OutcomePosted,
	}
}

// --- Test Cases ---

func (suite *ExpenseServiceTestSuite) TestCreateExpense_Unpaid() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		Name:   "Fabric order",
		Amount: decimal.NewFromInt(400),
	}

	suite.mockRepo.On("SaveExpense", ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.Name == req.Name && e.Amount.Equal(req.Amount) && e.AmountPaid.IsZero() && !e.IsPaid
	})).Return(nil).Once()

	expense, err := suite.service.CreateExpense(ctx, req, suite.actor)

	suite.Require().NoError(err)
	suite.Require().NotNil(expense)
	suite.False(expense.IsPaid)
	suite.True(expense.AmountPaid.IsZero())
	suite.Nil(expense.PaymentMethod)
	suite.mockRecorder.AssertNotCalled(suite.T(), "RecordExpensePayment", mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_PaidUpfront() {
	ctx := context.Background()
	accountID := uuid.NewString()
	amount := decimal.NewFromInt(400)
	method := domain.PaymentCash
	req := dto.CreateExpenseRequest{
		Name:          "Fabric order",
		Amount:        amount,
		AmountPaid:    &amount,
		PaymentMethod: &method,
	}

	suite.mockRepo.On("SaveExpense", ctx, mock.AnythingOfType("domain.Expense")).Return(nil).Once()
	suite.mockRecorder.On("RecordExpensePayment", ctx, mock.MatchedBy(func(r dto.RecordExpensePaymentRequest) bool {
		return r.Amount.Equal(amount) && r.PaymentMethod == method && r.ExpenseID != ""
	}), suite.actor).Return(suite.postedResult(accountID), nil).Once()
	suite.mockRepo.On("UpdateExpensePayment", ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.AmountPaid.Equal(amount) && e.IsPaid &&
			e.PaymentAccountID != nil && *e.PaymentAccountID == accountID
	})).Return(nil).Once()

	expense, err := suite.service.CreateExpense(ctx, req, suite.actor)

	suite.Require().NoError(err)
	suite.Require().NotNil(expense)
	suite.True(expense.IsPaid)
	suite.True(expense.AmountPaid.Equal(amount))
	suite.Require().NotNil(expense.PaymentAccountID)
	suite.Equal(accountID, *expense.PaymentAccountID)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRecorder.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_PaidExceedsAmount() {
	ctx := context.Background()
	paid := decimal.NewFromInt(500)
	method := domain.PaymentCash
	req := dto.CreateExpenseRequest{
		Name:          "Fabric order",
		Amount:        decimal.NewFromInt(400),
		AmountPaid:    &paid,
		PaymentMethod: &method,
	}

	expense, err := suite.service.CreateExpense(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, services.ErrPaymentExceedsOutstanding)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_PaidWithoutMethod() {
	ctx := context.Background()
	paid := decimal.NewFromInt(100)
	req := dto.CreateExpenseRequest{
		Name:       "Fabric order",
		Amount:     decimal.NewFromInt(400),
		AmountPaid: &paid,
	}

	expense, err := suite.service.CreateExpense(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, services.ErrPaymentMethodRequired)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestPayExpense_CompletesPayment() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	accountID := uuid.NewString()
	existing := &domain.Expense{
		ExpenseID:  expenseID,
		Name:       "Rent",
		Amount:     decimal.NewFromInt(100),
		AmountPaid: decimal.NewFromInt(40),
	}
	req := dto.PayExpenseRequest{Amount: decimal.NewFromInt(60), PaymentMethod: domain.PaymentTransfer}

	suite.mockRepo.On("FindExpenseByID", ctx, expenseID).Return(existing, nil).Once()
	suite.mockRecorder.On("RecordExpensePayment", ctx, mock.MatchedBy(func(r dto.RecordExpensePaymentRequest) bool {
		return r.ExpenseID == expenseID && r.Amount.Equal(decimal.NewFromInt(60)) &&
			r.PaymentMethod == domain.PaymentTransfer
	}), suite.actor).Return(suite.postedResult(accountID), nil).Once()
	suite.mockRepo.On("UpdateExpensePayment", ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.AmountPaid.Equal(decimal.NewFromInt(100)) && e.IsPaid
	})).Return(nil).Once()

	expense, err := suite.service.PayExpense(ctx, expenseID, req, suite.actor)

	suite.Require().NoError(err)
	suite.True(expense.IsPaid)
	suite.True(expense.AmountPaid.Equal(decimal.NewFromInt(100)))
	suite.Require().NotNil(expense.PaymentMethod)
	suite.Equal(domain.PaymentTransfer, *expense.PaymentMethod)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRecorder.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestPayExpense_ExceedsOutstanding() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	existing := &domain.Expense{
		ExpenseID:  expenseID,
		Amount:     decimal.NewFromInt(100),
		AmountPaid: decimal.NewFromInt(40),
	}
	req := dto.PayExpenseRequest{Amount: decimal.NewFromInt(61), PaymentMethod: domain.PaymentCash}

	suite.mockRepo.On("FindExpenseByID", ctx, expenseID).Return(existing, nil).Once()

	expense, err := suite.service.PayExpense(ctx, expenseID, req, suite.actor)

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, services.ErrPaymentExceedsOutstanding)
	suite.mockRecorder.AssertNotCalled(suite.T(), "RecordExpensePayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestPayExpense_DeferredMethodLeavesAccountClear() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	existing := &domain.Expense{
		ExpenseID:  expenseID,
		Name:       "Supplier invoice",
		Amount:     decimal.NewFromInt(200),
		AmountPaid: decimal.Zero,
	}
	req := dto.PayExpenseRequest{Amount: decimal.NewFromInt(200), PaymentMethod: domain.PaymentCredit}
	deferredResult := &domain.PostingResult{
		Transaction: domain.Transaction{TransactionID: uuid.NewString(), Type: domain.TransactionExpense},
		Outcome:     domain.OutcomeSkippedDeferred,
	}

	suite.mockRepo.On("FindExpenseByID", ctx, expenseID).Return(existing, nil).Once()
	suite.mockRecorder.On("RecordExpensePayment", ctx, mock.AnythingOfType("dto.RecordExpensePaymentRequest"), suite.actor).
		Return(deferredResult, nil).Once()
	suite.mockRepo.On("UpdateExpensePayment", ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.IsPaid && e.PaymentAccountID == nil
	})).Return(nil).Once()

	expense, err := suite.service.PayExpense(ctx, expenseID, req, suite.actor)

	suite.Require().NoError(err)
	suite.True(expense.IsPaid)
	suite.Nil(expense.PaymentAccountID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestPayExpense_RecordError() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	existing := &domain.Expense{
		ExpenseID:  expenseID,
		Amount:     decimal.NewFromInt(100),
		AmountPaid: decimal.Zero,
	}
	req := dto.PayExpenseRequest{Amount: decimal.NewFromInt(100), PaymentMethod: domain.PaymentCash}
	expectedErr := assert.AnError

	suite.mockRepo.On("FindExpenseByID", ctx, expenseID).Return(existing, nil).Once()
	suite.mockRecorder.On("RecordExpensePayment", ctx, mock.AnythingOfType("dto.RecordExpensePaymentRequest"), suite.actor).
		Return(nil, expectedErr).Once()

	expense, err := suite.service.PayExpense(ctx, expenseID, req, suite.actor)

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, expectedErr)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateExpensePayment", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestPayExpense_NotFound() {
	ctx := context.Background()
	expenseID := uuid.NewString()

	suite.mockRepo.On("FindExpenseByID", ctx, expenseID).Return(nil, apperrors.ErrNotFound).Once()

	expense, err := suite.service.PayExpense(ctx, expenseID, dto.PayExpenseRequest{
		Amount:        decimal.NewFromInt(10),
		PaymentMethod: domain.PaymentCash,
	}, suite.actor)

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ExpenseServiceTestSuite) TestListExpenses_Success() {
	ctx := context.Background()
	expected := []domain.Expense{{ExpenseID: uuid.NewString(), Name: "Rent"}}

	suite.mockRepo.On("ListExpenses", ctx, mock.MatchedBy(func(f portsrepo.ExpenseListFilter) bool {
		return f.Limit == 20 && f.UnpaidOnly
	})).Return(expected, nil).Once()

	expenses, err := suite.service.ListExpenses(ctx, dto.ListExpensesParams{UnpaidOnly: true})

	suite.Require().NoError(err)
	suite.Equal(expected, expenses)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestListExpenses_EmptyResult() {
	ctx := context.Background()

	suite.mockRepo.On("ListExpenses", ctx, mock.AnythingOfType("repositories.ExpenseListFilter")).Return(nil, nil).Once()

	expenses, err := suite.service.ListExpenses(ctx, dto.ListExpensesParams{})

	suite.Require().NoError(err)
	suite.NotNil(expenses)
	suite.Empty(expenses)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestExpenseService(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
