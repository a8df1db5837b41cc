package repositories

import (
	"context"
	"time"

	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryReader defines read operations over the append-only posting log.
type EntryReader interface {
	// FindEntryByID retrieves a single balance entry.
	FindEntryByID(ctx context.Context, entryID string) (*domain.BalanceEntry, error)

	// ListEntriesByAccount retrieves an account's entries newest first, with
	// cursor pagination. Returns the next token, empty when exhausted.
	ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.BalanceEntry, string, error)

	// ListLiquidationEntries retrieves positive entries on the given account
	// whose reference carries the liquidation prefix, newest first.
	ListLiquidationEntries(ctx context.Context, accountID string, from, to *time.Time, limit int) ([]domain.BalanceEntry, error)

	// SumEntriesForAccount totals every entry amount ever posted to the
	// account. Used to audit the cached balance against the authoritative log.
	SumEntriesForAccount(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// EntryPoster is the storage half of the ledger poster: the only code path in
// the repository that writes account balances or inserts balance entries.
type EntryPoster interface {
	// PostEntries applies the intents as one atomic unit of work: all affected
	// account rows are locked in ascending id order, balances mutated, and one
	// immutable entry inserted per intent with its balance_after snapshot.
	// Either every intent lands or none does.
	PostEntries(ctx context.Context, intents []domain.PostingIntent, actor string) ([]domain.BalanceEntry, error)

	// PostTransactionEntry posts a single intent and stamps the transaction's
	// posted_account_id in the same unit of work. The stamp only succeeds while
	// posted_account_id is still null, making the posting at-most-once.
	PostTransactionEntry(ctx context.Context, transactionID string, intent domain.PostingIntent, actor string) (*domain.BalanceEntry, error)

	// PostTransferEntries posts the two legs of a transfer atomically and, when
	// transactionID is non-nil, stamps the business transaction's posted and
	// counter accounts in the same unit of work.
	PostTransferEntries(ctx context.Context, transactionID *string, from, to domain.PostingIntent, actor string) ([]domain.BalanceEntry, error)
}

// LedgerRepositoryFacade combines posting-log reads with the posting primitive.
type LedgerRepositoryFacade interface {
	EntryReader
	EntryPoster
}
