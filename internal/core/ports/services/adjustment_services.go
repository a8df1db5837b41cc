package services

import (
	"context"

	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	"github.com/atelierops/shop_ledger_app/internal/dto"
)

// AdjustmentSvc corrects already-paid expenses. Every correction posts
// compensating ledger entries, never edits or deletes existing ones, and
// leaves an adjustment record linking the expense to the entries it produced.
type AdjustmentSvc interface {
	// Adjust corrects an expense's amount, its payment account, or both.
	// Money refunded or moved flows through compensating entries created in
	// the same storage transaction as the expense update.
	Adjust(ctx context.Context, expenseID string, req dto.AdjustExpenseRequest, actor string) (*domain.Adjustment, error)

	// Revert undoes an expense payment entirely, returning the full paid
	// amount to the paying account and zeroing the expense's paid state.
	Revert(ctx context.Context, expenseID string, req dto.RevertExpenseRequest, actor string) (*domain.Adjustment, error)

	// PartialRefund returns part of the paid amount to the paying account
	// without touching the expense's nominal amount.
	PartialRefund(ctx context.Context, expenseID string, req dto.PartialRefundRequest, actor string) (*domain.Adjustment, error)

	// History lists the adjustments applied to an expense, newest first.
	History(ctx context.Context, expenseID string) ([]domain.Adjustment, error)
}

// AdjustmentSvcFacade combines all adjustment service interfaces
type AdjustmentSvcFacade interface {
	AdjustmentSvc
}
