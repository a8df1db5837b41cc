package handlers_test

import (
	"context"
	"testing"
	"time"

	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	portssvc "github.com/atelierops/shop_ledger_app/internal/core/ports/services"
	"github.com/atelierops/shop_ledger_app/internal/dto"
	"github.com/atelierops/shop_ledger_app/internal/handlers"
	"github.com/atelierops/shop_ledger_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

const (
	testJWTSecret = "test-secret-key-that-is-long-enough"
	testJWTIssuer = "shop-ledger-test"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
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

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Post(ctx context.Context, intent domain.PostingIntent, actor string) (*domain.BalanceEntry, error) {
	args := m.Called(ctx, intent, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceEntry), args.Error(1)
}
func (m *MockLedgerService) Transfer(ctx context.Context, from, to domain.PostingIntent, actor string) ([]domain.BalanceEntry, error) {
	args := m.Called(ctx, from, to, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceEntry), args.Error(1)
}
func (m *MockLedgerService) GetEntry(ctx context.Context, entryID string) (*domain.BalanceEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceEntry), args.Error(1)
}
func (m *MockLedgerService) VerifyAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, string, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.String(1), args.Error(2)
}
func (m *MockTransactionService) RecordTransaction(ctx context.Context, req dto.CreateTransactionRequest, actor string) (*domain.PostingResult, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}
func (m *MockTransactionService) RecordIncome(ctx context.Context, req dto.RecordIncomeRequest, actor string) (*domain.PostingResult, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}
func (m *MockTransactionService) RecordExpensePayment(ctx context.Context, req dto.RecordExpensePaymentRequest, actor string) (*domain.PostingResult, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}
func (m *MockTransactionService) RecordTransfer(ctx context.Context, req dto.RecordTransferRequest, actor string) (*domain.TransferResult, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferResult), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock LiquidationService ---
type MockLiquidationService struct {
	mock.Mock
}

func (m *MockLiquidationService) Liquidate(ctx context.Context, req dto.CreateLiquidationRequest, actor string) (*domain.LiquidationResult, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LiquidationResult), args.Error(1)
}
func (m *MockLiquidationService) History(ctx context.Context, req dto.LiquidationHistoryRequest) ([]domain.LiquidationRecord, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LiquidationRecord), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LiquidationSvcFacade = (*MockLiquidationService)(nil)

// --- Mock ExpenseService ---
type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}
func (m *MockExpenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) PayExpense(ctx context.Context, expenseID string, req dto.PayExpenseRequest, actor string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ExpenseSvcFacade = (*MockExpenseService)(nil)

// --- Mock AdjustmentService ---
type MockAdjustmentService struct {
	mock.Mock
}

func (m *MockAdjustmentService) Adjust(ctx context.Context, expenseID string, req dto.AdjustExpenseRequest, actor string) (*domain.Adjustment, error) {
	args := m.Called(ctx, expenseID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Adjustment), args.Error(1)
}
func (m *MockAdjustmentService) Revert(ctx context.Context, expenseID string, req dto.RevertExpenseRequest, actor string) (*domain.Adjustment, error) {
	args := m.Called(ctx, expenseID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Adjustment), args.Error(1)
}
func (m *MockAdjustmentService) PartialRefund(ctx context.Context, expenseID string, req dto.PartialRefundRequest, actor string) (*domain.Adjustment, error) {
	args := m.Called(ctx, expenseID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Adjustment), args.Error(1)
}
func (m *MockAdjustmentService) History(ctx context.Context, expenseID string) ([]domain.Adjustment, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Adjustment), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.AdjustmentSvcFacade = (*MockAdjustmentService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) ReconciliationReport(ctx context.Context, limit int) ([]domain.ReconciliationItem, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReconciliationItem), args.Error(1)
}
func (m *MockReportingService) PatrimonyReport(ctx context.Context, branchID *string) (*domain.PatrimonyReport, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PatrimonyReport), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ReportingService = (*MockReportingService)(nil)

// serviceMocks bundles one mock per facade so suites can set expectations on
// the ones they exercise.
type serviceMocks struct {
	Account     *MockAccountService
	Ledger      *MockLedgerService
	Transaction *MockTransactionService
	Liquidation *MockLiquidationService
	Expense     *MockExpenseService
	Adjustment  *MockAdjustmentService
	Reporting   *MockReportingService
}

func newServiceMocks() (*portssvc.ServiceContainer, *serviceMocks) {
	mocks := &serviceMocks{
		Account:     new(MockAccountService),
		Ledger:      new(MockLedgerService),
		Transaction: new(MockTransactionService),
		Liquidation: new(MockLiquidationService),
		Expense:     new(MockExpenseService),
		Adjustment:  new(MockAdjustmentService),
		Reporting:   new(MockReportingService),
	}
	container := &portssvc.ServiceContainer{
		Account:     mocks.Account,
		Ledger:      mocks.Ledger,
		Transaction: mocks.Transaction,
		Liquidation: mocks.Liquidation,
		Expense:     mocks.Expense,
		Adjustment:  mocks.Adjustment,
		Reporting:   mocks.Reporting,
	}
	return container, mocks
}

// newTestRouter wires the full route surface against the mock container, with
// the real auth middleware chain in front.
func newTestRouter(services *portssvc.ServiceContainer, apiKeyHash string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	cfg := &config.Config{
		JWTSecret:          testJWTSecret,
		JWTIssuer:          testJWTIssuer,
		ServiceAPIKeyHash:  apiKeyHash,
		RateLimit:          "100-S",
		CORSAllowedOrigins: []string{"*"},
		IsProduction:       true, // keep swagger routes out of the test router
	}
	handlers.RegisterRoutes(router, cfg, services)
	return router
}

// generateTestToken creates a signed JWT the auth middleware accepts.
func generateTestToken(t *testing.T, userID string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Issuer:    testJWTIssuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return signed
}
