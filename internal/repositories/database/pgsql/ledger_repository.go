package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/atelierops/shop_ledger_app/internal/apperrors"
	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/atelierops/shop_ledger_app/internal/core/ports/repositories"
	"github.com/atelierops/shop_ledger_app/internal/models"
	"github.com/atelierops/shop_ledger_app/internal/utils/mapping"
	"github.com/atelierops/shop_ledger_app/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxLedgerRepository creates the repository owning the posting log.
func newPgxLedgerRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) *PgxLedgerRepository {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const entryColumns = `entry_id, account_id, entry_date, amount, balance_after, description, reference, created_at, created_by`

const insertEntryQuery = `
	INSERT INTO balance_entries (` + entryColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`

func scanEntry(row pgx.Row) (models.BalanceEntry, error) {
	var m models.BalanceEntry
	err := row.Scan(
		&m.EntryID,
		&m.AccountID,
		&m.EntryDate,
		&m.Amount,
		&m.BalanceAfter,
		&m.Description,
		&m.Reference,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	return m, err
}

func collectEntries(rows pgx.Rows) ([]models.BalanceEntry, error) {
	defer rows.Close()

	entries := []models.BalanceEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance entry row: %w", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance entry rows: %w", err)
	}
	return entries, nil
}

// postIntentsInTx is the single write path for balances and entries. It locks
// every affected account in ascending id order, validates the intents against
// the locked balances, applies the balance deltas, and inserts one immutable
// entry per intent carrying the balance immediately after its own movement.
//
// An account may appear in several intents of one batch; its running balance
// carries across them, so both the RequireFunds checks and the balance_after
// snapshots see the earlier movements.
func (r *PgxLedgerRepository) postIntentsInTx(ctx context.Context, tx pgx.Tx, intents []domain.PostingIntent, actor string, now time.Time) ([]models.BalanceEntry, error) {
	if len(intents) == 0 {
		return []models.BalanceEntry{}, nil
	}

	idSet := make(map[string]struct{}, len(intents))
	for _, intent := range intents {
		idSet[intent.AccountID] = struct{}{}
	}
	accountIDs := make([]string, 0, len(idSet))
	for id := range idSet {
		accountIDs = append(accountIDs, id)
	}
	sort.Strings(accountIDs) // Consistent lock order across concurrent posters

	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, err
	}

	running := make(map[string]decimal.Decimal, len(lockedAccounts))
	for id, account := range lockedAccounts {
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
		running[id] = account.Balance
	}

	balanceChanges := make(map[string]decimal.Decimal, len(lockedAccounts))
	entries := make([]models.BalanceEntry, 0, len(intents))
	for _, intent := range intents {
		if intent.Delta.IsZero() {
			return nil, fmt.Errorf("%w: zero posting for account %s", apperrors.ErrValidation, intent.AccountID)
		}

		after := running[intent.AccountID].Add(intent.Delta)
		if intent.RequireFunds && after.IsNegative() {
			return nil, fmt.Errorf("%w: account %s holds %s, cannot cover %s",
				apperrors.ErrInsufficientFunds, intent.AccountID,
				running[intent.AccountID].String(), intent.Delta.Abs().String())
		}
		running[intent.AccountID] = after
		balanceChanges[intent.AccountID] = balanceChanges[intent.AccountID].Add(intent.Delta)

		entry := models.BalanceEntry{
			EntryID:      uuid.NewString(),
			AccountID:    intent.AccountID,
			EntryDate:    intent.EntryDate,
			Amount:       intent.Delta,
			BalanceAfter: after,
			Description:  intent.Description,
			CreatedAt:    now,
			CreatedBy:    actor,
		}
		if intent.Reference != "" {
			ref := intent.Reference
			entry.Reference = &ref
		}
		entries = append(entries, entry)
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, actor, now); err != nil {
		return nil, err
	}

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(insertEntryQuery,
			e.EntryID,
			e.AccountID,
			e.EntryDate,
			e.Amount,
			e.BalanceAfter,
			e.Description,
			e.Reference,
			e.CreatedAt,
			e.CreatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert balance entries", err)
	}

	return entries, nil
}

// stampTransactionPosted sets the transaction's posting marker inside the
// posting transaction. The IS NULL guard makes the posting at-most-once: a row
// already carrying a posted account refuses the second stamp.
func stampTransactionPosted(ctx context.Context, tx pgx.Tx, transactionID string, postedAccountID string, counterAccountID *string, actor string, now time.Time) error {
	query := `
		UPDATE transactions
		SET posted_account_id = $2, counter_account_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE transaction_id = $1 AND posted_account_id IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, query, transactionID, postedAccountID, counterAccountID, now, actor)
	if err != nil {
		return fmt.Errorf("failed to stamp posting on transaction %s: %w", transactionID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM transactions WHERE transaction_id = $1);`, transactionID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check transaction %s after stamp attempt: %w", transactionID, err)
		}
		if !exists {
			return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return fmt.Errorf("%w: transaction %s is already posted", apperrors.ErrDuplicate, transactionID)
	}
	return nil
}

// PostEntries applies the intents as one atomic unit of work.
func (r *PgxLedgerRepository) PostEntries(ctx context.Context, intents []domain.PostingIntent, actor string) ([]domain.BalanceEntry, error) {
	now := time.Now().UTC()

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // Ignored after a successful commit

	entries, err := r.postIntentsInTx(ctx, tx, intents, actor, now)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return mapping.ToDomainBalanceEntrySlice(entries), nil
}

// PostTransactionEntry posts a single intent and stamps the owning
// transaction's posted_account_id in the same unit of work.
func (r *PgxLedgerRepository) PostTransactionEntry(ctx context.Context, transactionID string, intent domain.PostingIntent, actor string) (*domain.BalanceEntry, error) {
	now := time.Now().UTC()

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// Stamp first: the row lock it takes serializes concurrent posting
	// attempts against the same transaction.
	if err := stampTransactionPosted(ctx, tx, transactionID, intent.AccountID, nil, actor, now); err != nil {
		return nil, err
	}

	entries, err := r.postIntentsInTx(ctx, tx, []domain.PostingIntent{intent}, actor, now)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	entry := mapping.ToDomainBalanceEntry(entries[0])
	return &entry, nil
}

// PostTransferEntries posts both legs of a transfer atomically and, when a
// transaction id is given, stamps its posted and counter accounts too.
func (r *PgxLedgerRepository) PostTransferEntries(ctx context.Context, transactionID *string, from, to domain.PostingIntent, actor string) ([]domain.BalanceEntry, error) {
	now := time.Now().UTC()

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if transactionID != nil {
		counter := to.AccountID
		if err := stampTransactionPosted(ctx, tx, *transactionID, from.AccountID, &counter, actor, now); err != nil {
			return nil, err
		}
	}

	entries, err := r.postIntentsInTx(ctx, tx, []domain.PostingIntent{from, to}, actor, now)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return mapping.ToDomainBalanceEntrySlice(entries), nil
}

// FindEntryByID retrieves a single balance entry.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.BalanceEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM balance_entries
		WHERE entry_id = $1;
	`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find balance entry by ID %s: %w", entryID, err)
	}

	entry := mapping.ToDomainBalanceEntry(m)
	return &entry, nil
}

// ListEntriesByAccount retrieves an account's entries newest first with
// cursor pagination over (created_at, entry_id).
func (r *PgxLedgerRepository) ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.BalanceEntry, string, error) {
	if limit <= 0 {
		limit = 50
	}
	// Fetch one extra row to learn whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + entryColumns + `
		FROM balance_entries
		WHERE account_id = $1`
	orderByClause := `ORDER BY created_at DESC, entry_id DESC`

	args := []interface{}{accountID}
	query := baseQuery

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastEntryID, decodeErr := pagination.DecodeCursor(*nextToken)
		if decodeErr != nil {
			return nil, "", apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt, lastEntryID)
		query += ` AND (created_at, entry_id) < ($2, $3)`
	}

	args = append(args, fetchLimit)
	query += ` ` + orderByClause + ` LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query entries for account %s: %w", accountID, err)
	}

	entries, err := collectEntries(rows)
	if err != nil {
		return nil, "", err
	}

	var next string
	if len(entries) > limit {
		last := entries[limit-1]
		next = pagination.EncodeCursor(last.CreatedAt, last.EntryID)
		entries = entries[:limit]
	}

	return mapping.ToDomainBalanceEntrySlice(entries), next, nil
}

// ListLiquidationEntries retrieves positive liquidation-referenced entries on
// the account, newest first, optionally bounded by an entry date window.
func (r *PgxLedgerRepository) ListLiquidationEntries(ctx context.Context, accountID string, from, to *time.Time, limit int) ([]domain.BalanceEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ` + entryColumns + `
		FROM balance_entries
		WHERE account_id = $1 AND amount > 0 AND reference LIKE $2`
	args := []interface{}{accountID, domain.LiquidationRefPrefix + "%"}

	if from != nil {
		args = append(args, *from)
		query += ` AND entry_date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND entry_date <= $` + strconv.Itoa(len(args))
	}

	args = append(args, limit)
	query += ` ORDER BY entry_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query liquidation entries for account %s: %w", accountID, err)
	}

	entries, err := collectEntries(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainBalanceEntrySlice(entries), nil
}

// SumEntriesForAccount totals every entry ever posted to the account. The
// result is compared against the cached balance by the consistency audit.
func (r *PgxLedgerRepository) SumEntriesForAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM balance_entries
		WHERE account_id = $1;
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum entries for account %s: %w", accountID, err)
	}
	return sum, nil
}
