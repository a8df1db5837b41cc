package pgsql

import (
	"context"
	"fmt"

	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/atelierops/shop_ledger_app/internal/core/ports/repositories"
	"github.com/atelierops/shop_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetPatrimonyAccounts retrieves the active accounts the patrimony report
// aggregates. A branch's position includes the business-wide (global)
// accounts alongside its own.
func (r *reportingRepository) GetPatrimonyAccounts(ctx context.Context, branchID *string) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE is_active = TRUE`
	args := []interface{}{}

	if branchID != nil {
		args = append(args, *branchID)
		query += ` AND (branch_id = $1 OR branch_id IS NULL)`
	}
	query += ` ORDER BY code, created_at;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying patrimony accounts: %w", err)
	}

	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}

	return mapping.ToDomainAccountSlice(accounts), nil
}

// GetUnpostedTransactions retrieves the reconciliation backlog: routable
// income/expense transactions whose posting marker is still null, oldest
// first.
func (r *reportingRepository) GetUnpostedTransactions(ctx context.Context, methods []domain.PaymentMethod, limit int) ([]domain.Transaction, error) {
	if len(methods) == 0 {
		return []domain.Transaction{}, nil
	}
	if limit <= 0 {
		limit = 100
	}

	methodValues := make([]string, len(methods))
	for i, m := range methods {
		methodValues[i] = string(m)
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE posted_account_id IS NULL
		  AND type IN ('income', 'expense')
		  AND payment_method = ANY($1)
		ORDER BY created_at ASC, transaction_id ASC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, methodValues, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying unposted transactions: %w", err)
	}

	transactions, err := collectTransactions(rows)
	if err != nil {
		return nil, err
	}

	return mapping.ToDomainTransactionSlice(transactions), nil
}
