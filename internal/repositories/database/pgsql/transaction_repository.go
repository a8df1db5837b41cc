package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/atelierops/shop_ledger_app/internal/apperrors"
	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/atelierops/shop_ledger_app/internal/core/ports/repositories"
	"github.com/atelierops/shop_ledger_app/internal/models"
	"github.com/atelierops/shop_ledger_app/internal/utils/mapping"
	"github.com/atelierops/shop_ledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// newPgxTransactionRepository creates a new repository for business transactions.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{pool: pool}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, branch_id, type, amount, payment_method, description,
	category, source_type, source_id, posted_account_id, counter_account_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.BranchID,
		&m.Type,
		&m.Amount,
		&m.PaymentMethod,
		&m.Description,
		&m.Category,
		&m.SourceType,
		&m.SourceID,
		&m.PostedAccountID,
		&m.CounterAccountID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func collectTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return transactions, nil
}

// SaveTransaction persists a new transaction. Committing this row durably is a
// precondition for any posting attempt against it.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.pool.Exec(ctx, query,
		m.TransactionID,
		m.BranchID,
		m.Type,
		m.Amount,
		m.PaymentMethod,
		m.Description,
		m.Category,
		m.SourceType,
		m.SourceID,
		m.PostedAccountID,
		m.CounterAccountID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, m.TransactionID)
			}
		}
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1;
	`
	m, err := scanTransaction(r.pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// ListTransactions retrieves transactions matching the filter, newest first,
// with cursor pagination over (created_at, transaction_id).
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionListFilter) ([]domain.Transaction, string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to learn whether a next page exists.
	fetchLimit := limit + 1

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE 1=1`
	args := []interface{}{}

	if filter.BranchID != nil {
		args = append(args, *filter.BranchID)
		query += ` AND branch_id = $` + strconv.Itoa(len(args))
	}
	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		query += ` AND type = $` + strconv.Itoa(len(args))
	}
	if filter.SourceType != nil {
		args = append(args, string(*filter.SourceType))
		query += ` AND source_type = $` + strconv.Itoa(len(args))
	}
	if filter.UnpostedOnly {
		query += ` AND posted_account_id IS NULL`
	}

	if filter.NextToken != nil && *filter.NextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeCursor(*filter.NextToken)
		if decodeErr != nil {
			return nil, "", apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt)
		createdAtPos := strconv.Itoa(len(args))
		args = append(args, lastID)
		query += ` AND (created_at, transaction_id) < ($` + createdAtPos + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY created_at DESC, transaction_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query transactions: %w", err)
	}

	transactions, err := collectTransactions(rows)
	if err != nil {
		return nil, "", err
	}

	var next string
	if len(transactions) > limit {
		last := transactions[limit-1]
		next = pagination.EncodeCursor(last.CreatedAt, last.TransactionID)
		transactions = transactions[:limit]
	}

	return mapping.ToDomainTransactionSlice(transactions), next, nil
}

// ListUnpostedRoutable retrieves income/expense transactions whose payment
// method should have produced a posting but whose marker is still null.
// Oldest first so operators clear the backlog in order.
func (r *PgxTransactionRepository) ListUnpostedRoutable(ctx context.Context, methods []domain.PaymentMethod, limit int) ([]domain.Transaction, error) {
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
	rows, err := r.pool.Query(ctx, query, methodValues, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query unposted transactions: %w", err)
	}

	transactions, err := collectTransactions(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainTransactionSlice(transactions), nil
}
