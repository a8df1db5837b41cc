package repositories

import (
	"context"

	"github.com/atelierops/shop_ledger_app/internal/core/domain"
)

// TransactionListFilter narrows ListTransactions results.
type TransactionListFilter struct {
	BranchID     *string
	Type         *domain.TransactionType
	SourceType   *domain.SourceType
	UnpostedOnly bool // Only rows with posted_account_id still null
	Limit        int
	NextToken    *string
}

// TransactionReader defines read operations for business transactions
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions matching the filter, newest
	// first, with cursor pagination. Returns the next token, empty when done.
	ListTransactions(ctx context.Context, filter TransactionListFilter) ([]domain.Transaction, string, error)

	// ListUnpostedRoutable retrieves income/expense transactions whose payment
	// method is in the routable set but whose posting never landed. These are
	// the reconciliation alert rows.
	ListUnpostedRoutable(ctx context.Context, methods []domain.PaymentMethod, limit int) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for business transactions
type TransactionWriter interface {
	// SaveTransaction persists a new transaction. The row must be durably
	// committed before any posting attempt is made against it.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
