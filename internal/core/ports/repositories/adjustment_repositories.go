package repositories

import (
	"context"

	"github.com/atelierops/shop_ledger_app/internal/core/domain"
)

// AdjustmentReader defines read operations for expense adjustments
type AdjustmentReader interface {
	// FindAdjustmentByID retrieves an adjustment by its unique identifier.
	FindAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.Adjustment, error)

	// ListAdjustmentsByExpense retrieves an expense's full correction
	// timeline, newest first.
	ListAdjustmentsByExpense(ctx context.Context, expenseID string) ([]domain.Adjustment, error)
}

// AdjustmentWriter persists a correction as one atomic unit of work.
type AdjustmentWriter interface {
	// SaveAdjustment posts the compensating intents, updates the expense's
	// payment state, and inserts the adjustment row in a single transaction.
	// The returned adjustment carries the ids of the entries created. Nothing
	// is persisted if any step fails.
	SaveAdjustment(ctx context.Context, adjustment domain.Adjustment, intents []domain.PostingIntent, updatedExpense domain.Expense) (*domain.Adjustment, []domain.BalanceEntry, error)
}

// AdjustmentRepositoryFacade combines all adjustment repository interfaces
type AdjustmentRepositoryFacade interface {
	AdjustmentReader
	AdjustmentWriter
}
