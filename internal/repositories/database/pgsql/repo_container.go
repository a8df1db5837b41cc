package pgsql

import (
	portsrepo "github.com/atelierops/shop_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool, accountRepo)
	transactionRepo := newPgxTransactionRepository(dbPool)
	expenseRepo := newPgxExpenseRepository(dbPool)
	adjustmentRepo := newPgxAdjustmentRepository(dbPool, ledgerRepo)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:     accountRepo,
		LedgerRepo:      ledgerRepo,
		TransactionRepo: transactionRepo,
		ExpenseRepo:     expenseRepo,
		AdjustmentRepo:  adjustmentRepo,
		ReportingRepo:   reportingRepo,
	}
}
