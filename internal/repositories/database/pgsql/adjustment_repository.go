package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/atelierops/shop_ledger_app/internal/apperrors"
	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/atelierops/shop_ledger_app/internal/core/ports/repositories"
	"github.com/atelierops/shop_ledger_app/internal/models"
	"github.com/atelierops/shop_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAdjustmentRepository struct {
	BaseRepository
	ledgerRepo *PgxLedgerRepository
}

// newPgxAdjustmentRepository creates the repository that persists expense
// corrections. It reaches into the ledger repository's posting core so the
// compensating entries land in the same transaction as the adjustment row.
func newPgxAdjustmentRepository(pool *pgxpool.Pool, ledgerRepo *PgxLedgerRepository) portsrepo.AdjustmentRepositoryFacade {
	return &PgxAdjustmentRepository{
		BaseRepository: BaseRepository{Pool: pool},
		ledgerRepo:     ledgerRepo,
	}
}

// Ensure PgxAdjustmentRepository implements portsrepo.AdjustmentRepositoryFacade
var _ portsrepo.AdjustmentRepositoryFacade = (*PgxAdjustmentRepository)(nil)

const adjustmentColumns = `adjustment_id, expense_id, reason, description,
	prev_amount, prev_amount_paid, prev_payment_method, prev_account_id,
	new_amount, new_amount_paid, new_payment_method, new_account_id,
	adjustment_delta, entry_ids, created_at, created_by`

func scanAdjustment(row pgx.Row) (models.Adjustment, error) {
	var m models.Adjustment
	err := row.Scan(
		&m.AdjustmentID,
		&m.ExpenseID,
		&m.Reason,
		&m.Description,
		&m.PrevAmount,
		&m.PrevAmountPaid,
		&m.PrevPaymentMethod,
		&m.PrevAccountID,
		&m.NewAmount,
		&m.NewAmountPaid,
		&m.NewPaymentMethod,
		&m.NewAccountID,
		&m.AdjustmentDelta,
		&m.EntryIDs,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	return m, err
}

// SaveAdjustment applies a correction as one unit of work: compensating
// entries posted, expense payment state rewritten, adjustment row inserted.
// Nothing is persisted if any step fails.
func (r *PgxAdjustmentRepository) SaveAdjustment(ctx context.Context, adjustment domain.Adjustment, intents []domain.PostingIntent, updatedExpense domain.Expense) (*domain.Adjustment, []domain.BalanceEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx) // Ignored after a successful commit

	// An amount increase needs no postings; intents may legitimately be empty.
	modelEntries, err := r.ledgerRepo.postIntentsInTx(ctx, tx, intents, adjustment.CreatedBy, adjustment.CreatedAt)
	if err != nil {
		return nil, nil, err
	}

	entryIDs := make([]string, len(modelEntries))
	for i, entry := range modelEntries {
		entryIDs[i] = entry.EntryID
	}
	adjustment.EntryIDs = entryIDs

	if err := updateExpensePayment(ctx, tx, mapping.ToModelExpense(updatedExpense)); err != nil {
		return nil, nil, err
	}

	m := mapping.ToModelAdjustment(adjustment)
	query := `
		INSERT INTO adjustments (` + adjustmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, query,
		m.AdjustmentID,
		m.ExpenseID,
		m.Reason,
		m.Description,
		m.PrevAmount,
		m.PrevAmountPaid,
		m.PrevPaymentMethod,
		m.PrevAccountID,
		m.NewAmount,
		m.NewAmountPaid,
		m.NewPaymentMethod,
		m.NewAccountID,
		m.AdjustmentDelta,
		m.EntryIDs,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to insert adjustment %s: %w", m.AdjustmentID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}

	return &adjustment, mapping.ToDomainBalanceEntrySlice(modelEntries), nil
}

// FindAdjustmentByID retrieves an adjustment by its ID.
func (r *PgxAdjustmentRepository) FindAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.Adjustment, error) {
	query := `
		SELECT ` + adjustmentColumns + `
		FROM adjustments
		WHERE adjustment_id = $1;
	`
	m, err := scanAdjustment(r.Pool.QueryRow(ctx, query, adjustmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find adjustment by ID %s: %w", adjustmentID, err)
	}

	adjustment := mapping.ToDomainAdjustment(m)
	return &adjustment, nil
}

// ListAdjustmentsByExpense retrieves an expense's correction timeline, newest first.
func (r *PgxAdjustmentRepository) ListAdjustmentsByExpense(ctx context.Context, expenseID string) ([]domain.Adjustment, error) {
	query := `
		SELECT ` + adjustmentColumns + `
		FROM adjustments
		WHERE expense_id = $1
		ORDER BY created_at DESC, adjustment_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query adjustments for expense %s: %w", expenseID, err)
	}
	defer rows.Close()

	adjustments := []models.Adjustment{}
	for rows.Next() {
		m, err := scanAdjustment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan adjustment row: %w", err)
		}
		adjustments = append(adjustments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating adjustment rows: %w", err)
	}

	return mapping.ToDomainAdjustmentSlice(adjustments), nil
}
