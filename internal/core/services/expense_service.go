package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/atelierops/shop_ledger_app/internal/apperrors"
	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/atelierops/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/atelierops/shop_ledger_app/internal/core/ports/services"
	"github.com/atelierops/shop_ledger_app/internal/dto"
	"github.com/atelierops/shop_ledger_app/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrPaymentExceedsOutstanding = errors.New("payment exceeds the outstanding amount")
	ErrPaymentMethodRequired     = errors.New("payment method is required when a paid amount is given")
)

// expenseService implements the ExpenseSvcFacade interface. Payments flow
// through the transaction recorder so every paid amount leaves a business
// transaction and, when routable, a ledger posting.
type expenseService struct {
	BaseService
	expenseRepo    portsrepo.ExpenseRepositoryFacade
	transactionSvc portssvc.TransactionRecorderSvc
}

// NewExpenseService creates a new expense service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, transactionSvc portssvc.TransactionRecorderSvc) portssvc.ExpenseSvcFacade {
	return &expenseService{
		expenseRepo:    expenseRepo,
		transactionSvc: transactionSvc,
	}
}

// Ensure expenseService implements the ExpenseSvcFacade interface
var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find expense by ID",
				slog.String("expense_id", expenseID))
		}
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error) {
	filter := portsrepo.ExpenseListFilter{
		BranchID:   params.BranchID,
		UnpaidOnly: params.UnpaidOnly,
		Limit:      params.Limit,
		Offset:     params.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	expenses, err := s.expenseRepo.ListExpenses(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses")
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	if expenses == nil {
		return []domain.Expense{}, nil
	}

	s.LogDebug(ctx, "Expenses listed successfully", slog.Int("count", len(expenses)))
	return expenses, nil
}

func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}

	paid := decimal.Zero
	if req.AmountPaid != nil {
		paid = *req.AmountPaid
	}
	if paid.IsNegative() {
		return nil, fmt.Errorf("%w: paid amount cannot be negative", apperrors.ErrValidation)
	}
	if paid.GreaterThan(req.Amount) {
		return nil, fmt.Errorf("%w: paid %s against an expense of %s", ErrPaymentExceedsOutstanding, paid.String(), req.Amount.String())
	}
	if paid.IsPositive() && req.PaymentMethod == nil {
		return nil, ErrPaymentMethodRequired
	}

	now := time.Now().UTC()
	expenseDate := now
	if req.ExpenseDate != nil {
		expenseDate = *req.ExpenseDate
	}

	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		BranchID:    req.BranchID,
		Name:        req.Name,
		Category:    req.Category,
		Amount:      req.Amount,
		AmountPaid:  decimal.Zero,
		IsPaid:      false,
		ExpenseDate: expenseDate,
		Notes:       req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense",
			slog.String("expense_id", expense.ExpenseID))
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}

	if paid.IsPositive() {
		updated, err := s.applyPayment(ctx, &expense, paid, *req.PaymentMethod, creatorUserID)
		if err != nil {
			return nil, err
		}
		expense = *updated
	}

	s.LogInfo(ctx, "Expense created successfully",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("amount", expense.Amount.String()),
		slog.Bool("is_paid", expense.IsPaid))
	return &expense, nil
}

func (s *expenseService) PayExpense(ctx context.Context, expenseID string, req dto.PayExpenseRequest, actor string) (*domain.Expense, error) {
	expense, err := s.GetExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	if req.Amount.GreaterThan(expense.Outstanding()) {
		return nil, fmt.Errorf("%w: paying %s against an outstanding %s", ErrPaymentExceedsOutstanding, req.Amount.String(), expense.Outstanding().String())
	}

	updated, err := s.applyPayment(ctx, expense, req.Amount, req.PaymentMethod, actor)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Expense payment applied",
		slog.String("expense_id", expenseID),
		slog.String("amount", req.Amount.String()),
		slog.Bool("is_paid", updated.IsPaid))
	return updated, nil
}

// applyPayment records the payment transaction, posts its ledger side, and
// rolls the expense's payment state forward. The transaction is durable even
// when its posting fails; the expense reflects the payment either way.
func (s *expenseService) applyPayment(ctx context.Context, expense *domain.Expense, amount decimal.Decimal, method domain.PaymentMethod, actor string) (*domain.Expense, error) {
	result, err := s.transactionSvc.RecordExpensePayment(ctx, dto.RecordExpensePaymentRequest{
		ExpenseID:     expense.ExpenseID,
		Amount:        amount,
		PaymentMethod: method,
		Description:   fmt.Sprintf("Expense payment: %s", expense.Name),
		BranchID:      expense.BranchID,
	}, actor)
	if err != nil {
		s.LogError(ctx, err, "Failed to record expense payment",
			slog.String("expense_id", expense.ExpenseID))
		return nil, fmt.Errorf("failed to record payment for expense %s: %w", expense.ExpenseID, err)
	}

	now := time.Now().UTC()
	expense.AmountPaid = expense.AmountPaid.Add(amount)
	expense.IsPaid = accounting.IsPaid(expense.Amount, expense.AmountPaid)
	expense.PaymentMethod = &method
	if result.Transaction.PostedAccountID != nil {
		expense.PaymentAccountID = result.Transaction.PostedAccountID
	}
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = actor

	if err := s.expenseRepo.UpdateExpensePayment(ctx, *expense); err != nil {
		// The payment transaction is already durable; reconciliation finds it
		// through the expense source id.
		s.LogError(ctx, err, "Payment recorded but expense update failed",
			slog.String("expense_id", expense.ExpenseID),
			slog.String("transaction_id", result.Transaction.TransactionID))
		return nil, fmt.Errorf("payment recorded but expense %s not updated: %w", expense.ExpenseID, err)
	}

	return expense, nil
}
