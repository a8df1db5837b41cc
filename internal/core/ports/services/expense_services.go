package services

import (
	"context"

	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	"github.com/atelierops/shop_ledger_app/internal/dto"
)

// ExpenseReaderSvc defines read operations for expenses
type ExpenseReaderSvc interface {
	// GetExpenseByID retrieves an expense by its unique identifier.
	GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpenses retrieves expenses matching the query, newest first.
	ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error)
}

// ExpenseWriterSvc defines write operations for expenses. Paying an expense
// records a business transaction and posts the ledger through the transaction
// service, so payment state and ledger stay coupled to one flow.
type ExpenseWriterSvc interface {
	// CreateExpense registers a new expense, optionally already (partially)
	// paid. A paid portion is recorded and posted immediately.
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error)

	// PayExpense records a payment against an outstanding expense. The payment
	// may not exceed the outstanding amount.
	PayExpense(ctx context.Context, expenseID string, req dto.PayExpenseRequest, actor string) (*domain.Expense, error)
}

// ExpenseSvcFacade combines all expense service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
