package services

import (
	"context"

	"github.com/atelierops/shop_ledger_app/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// ReconciliationReport lists recorded transactions whose ledger posting
	// never happened, oldest first, with the account each should have hit.
	ReconciliationReport(ctx context.Context, limit int) ([]domain.ReconciliationItem, error)

	// PatrimonyReport aggregates liquid balances, fixed asset net values and
	// liability balances into a net-position snapshot.
	PatrimonyReport(ctx context.Context, branchID *string) (*domain.PatrimonyReport, error)
}
