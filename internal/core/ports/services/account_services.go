package services

import (
	"context"

	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	"github.com/atelierops/shop_ledger_app/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by code within a scope
	// (branchID nil = global).
	GetAccountByCode(ctx context.Context, branchID *string, code string) (*domain.Account, error)

	// ListAccounts retrieves accounts matching the query parameters.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error)

	// ListLiquidAccounts retrieves the active liquid accounts in scope.
	ListLiquidAccounts(ctx context.Context, branchID *string) ([]domain.Account, error)

	// ListAccountEntries retrieves an account's posting log, newest first, with
	// cursor pagination.
	ListAccountEntries(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.BalanceEntry, string, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccountDetails updates an account's descriptive fields. Balance is
	// never writable through this path.
	UpdateAccountDetails(ctx context.Context, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}

// AccountRegistrySvc defines the idempotent bootstrap operations the posting
// paths rely on.
type AccountRegistrySvc interface {
	// GetOrCreateAccount returns the account with the given scope and code,
	// creating it with its well-known defaults when missing. Concurrent callers
	// converge on a single row.
	GetOrCreateAccount(ctx context.Context, branchID *string, code string, actor string) (*domain.Account, error)

	// EnsureDefaultAccounts bootstraps the fixed default account set.
	EnsureDefaultAccounts(ctx context.Context, actor string) ([]domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountRegistrySvc
}
