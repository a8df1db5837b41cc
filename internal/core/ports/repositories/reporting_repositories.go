package repositories

import (
	"context"

	"github.com/atelierops/shop_ledger_app/internal/core/domain"
)

// ReportingRepository defines operations for retrieving report data
type ReportingRepository interface {
	// GetPatrimonyAccounts retrieves the active accounts in scope with the
	// columns the patrimony report aggregates (balances and fixed-asset
	// payloads).
	GetPatrimonyAccounts(ctx context.Context, branchID *string) ([]domain.Account, error)

	// GetUnpostedTransactions retrieves income/expense transactions whose
	// payment method is in the routable set but whose posting never happened,
	// oldest first so operators clear the backlog in order.
	GetUnpostedTransactions(ctx context.Context, methods []domain.PaymentMethod, limit int) ([]domain.Transaction, error)
}
