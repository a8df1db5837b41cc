package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/atelierops/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/atelierops/shop_ledger_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service
func NewReportingService(repo portsrepo.ReportingRepository) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: repo,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// ReconciliationReport lists transactions that should have posted to an
// account but never did. Deferred payment methods are excluded up front; a
// credit purchase with no entry is normal, a cash sale with no entry is not.
func (s *reportingService) ReconciliationReport(ctx context.Context, limit int) ([]domain.ReconciliationItem, error) {
	if limit <= 0 {
		limit = 100
	}

	unposted, err := s.reportingRepo.GetUnpostedTransactions(ctx, RoutablePaymentMethods(), limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve unposted transactions")
		return nil, fmt.Errorf("failed to retrieve unposted transactions: %w", err)
	}

	items := make([]domain.ReconciliationItem, 0, len(unposted))
	for _, txn := range unposted {
		code, ok := RouteForPaymentMethod(txn.PaymentMethod)
		if !ok {
			continue
		}
		items = append(items, domain.ReconciliationItem{
			Transaction:         txn,
			ExpectedAccountCode: code,
			RecordedAt:          txn.CreatedAt,
		})
	}

	s.LogInfo(ctx, "Reconciliation report generated",
		slog.Int("item_count", len(items)))
	return items, nil
}

// PatrimonyReport aggregates the business's position: liquid funds at cached
// balance, fixed assets at net value, liabilities at balance.
func (s *reportingService) PatrimonyReport(ctx context.Context, branchID *string) (*domain.PatrimonyReport, error) {
	accounts, err := s.reportingRepo.GetPatrimonyAccounts(ctx, branchID)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve patrimony accounts")
		return nil, fmt.Errorf("failed to retrieve patrimony accounts: %w", err)
	}

	report := &domain.PatrimonyReport{
		LiquidAccounts:   []domain.AccountValue{},
		FixedAssets:      []domain.AccountValue{},
		Liabilities:      []domain.AccountValue{},
		TotalLiquid:      decimal.Zero,
		TotalFixedAssets: decimal.Zero,
		TotalLiabilities: decimal.Zero,
	}

	for _, account := range accounts {
		value := domain.AccountValue{
			AccountID: account.AccountID,
			Code:      account.Code,
			Name:      account.Name,
			Value:     account.Balance,
		}
		switch {
		case account.IsLiquid():
			report.LiquidAccounts = append(report.LiquidAccounts, value)
			report.TotalLiquid = report.TotalLiquid.Add(value.Value)
		case account.Kind == domain.FixedAsset:
			if account.FixedAsset != nil {
				value.Value = account.FixedAsset.NetValue()
			}
			report.FixedAssets = append(report.FixedAssets, value)
			report.TotalFixedAssets = report.TotalFixedAssets.Add(value.Value)
		case account.IsLiability():
			report.Liabilities = append(report.Liabilities, value)
			report.TotalLiabilities = report.TotalLiabilities.Add(value.Value)
		}
	}

	report.NetPosition = report.TotalLiquid.Add(report.TotalFixedAssets).Sub(report.TotalLiabilities)

	s.LogInfo(ctx, "Patrimony report generated",
		slog.Int("liquid_accounts", len(report.LiquidAccounts)),
		slog.Int("fixed_assets", len(report.FixedAssets)),
		slog.Int("liabilities", len(report.Liabilities)))
	return report, nil
}
