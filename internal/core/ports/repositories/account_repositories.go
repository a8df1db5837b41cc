package repositories

import (
	"context"
	"time"

	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountListFilter narrows ListAccounts results.
type AccountListFilter struct {
	BranchID        *string             // Nil leaves the scope unfiltered
	Kind            *domain.AccountKind // Nil = all kinds
	IncludeInactive bool
	Limit           int
	Offset          int
}

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its code within a scope
	// (branchID nil = the global scope).
	FindAccountByCode(ctx context.Context, branchID *string, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts matching the filter, ordered by code.
	ListAccounts(ctx context.Context, filter AccountListFilter) ([]domain.Account, error)

	// ListLiquidAccounts retrieves the active liquid (CURRENT_ASSET) accounts in scope.
	ListLiquidAccounts(ctx context.Context, branchID *string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpsertAccountByCode inserts the account unless its (scope, code) already
	// exists, then returns the surviving row. Concurrent callers converge on a
	// single account; this is the only allowed bootstrap path.
	UpsertAccountByCode(ctx context.Context, account domain.Account) (*domain.Account, error)

	// UpdateAccountDetails updates an account's descriptive fields. Balance is
	// never written here; only the ledger poster mutates it.
	UpdateAccountDetails(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountTransactionSupport defines operations used inside posting transactions
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks their rows for
	// update within a transaction. Callers must pass IDs in ascending order so
	// concurrent posters acquire locks in the same sequence.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalancesInTx applies balance deltas for multiple accounts
	// within a given transaction.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
