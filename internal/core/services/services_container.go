package services

import (
	portsevents "github.com/atelierops/shop_ledger_app/internal/core/ports/events"
	portsrepo "github.com/atelierops/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/atelierops/shop_ledger_app/internal/core/ports/services"
	"github.com/atelierops/shop_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher portsevents.EventPublisher) *portssvc.ServiceContainer {
	// Create the container structure first
	container := &portssvc.ServiceContainer{}

	if publisher == nil {
		publisher = portsevents.NoopPublisher{}
	}

	// The ledger poster has no service dependencies; everything that moves
	// money routes through it.
	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.AccountRepo)

	// Account service needs the ledger repo to post opening balances.
	container.Account = NewAccountService(
		repos.AccountRepo,
		WithLedgerRepository(repos.LedgerRepo),
	)

	// Transaction recording resolves destination accounts through the account
	// registry so missing defaults bootstrap on first use.
	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.LedgerRepo,
		container.Account,
		WithTransactionEventPublisher(publisher),
	)

	container.Liquidation = NewLiquidationService(
		repos.LedgerRepo,
		container.Account,
		WithLiquidationEventPublisher(publisher),
	)

	// Expense payments post through the transaction service so every payment
	// leaves a transaction row behind.
	container.Expense = NewExpenseService(repos.ExpenseRepo, container.Transaction)

	container.Adjustment = NewAdjustmentService(
		repos.AdjustmentRepo,
		repos.ExpenseRepo,
		container.Account,
		WithAdjustmentEventPublisher(publisher),
	)

	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade     = (*accountService)(nil)
	_ portssvc.LedgerSvcFacade      = (*ledgerService)(nil)
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
	_ portssvc.LiquidationSvcFacade = (*liquidationService)(nil)
	_ portssvc.ExpenseSvcFacade     = (*expenseService)(nil)
	_ portssvc.AdjustmentSvcFacade  = (*adjustmentService)(nil)
	_ portssvc.ReportingService     = (*reportingService)(nil)
)
