package repositories

import (
	"context"

	"github.com/atelierops/shop_ledger_app/internal/core/domain"
)

// ExpenseListFilter narrows ListExpenses results.
type ExpenseListFilter struct {
	BranchID   *string
	UnpaidOnly bool
	Limit      int
	Offset     int
}

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves an expense by its unique identifier.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpenses retrieves expenses matching the filter, newest first.
	ListExpenses(ctx context.Context, filter ExpenseListFilter) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense persists a new expense.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// UpdateExpensePayment updates an expense's payment state (amount,
	// amountPaid, isPaid, paymentMethod, paymentAccountID).
	UpdateExpensePayment(ctx context.Context, expense domain.Expense) error
}

// ExpenseRepositoryFacade combines all expense repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
