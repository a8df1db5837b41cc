package services

import (
	"context"

	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	"github.com/atelierops/shop_ledger_app/internal/dto"
)

// TransactionReaderSvc defines read operations for business transactions
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction by its unique identifier.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions matching the query, newest first,
	// with cursor pagination.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, string, error)
}

// TransactionRecorderSvc records business financial events and drives their
// ledger postings. Recording always succeeds or fails as a whole; the posting
// that follows is allowed to fail without voiding the recorded event (the
// transaction then surfaces as a reconciliation item).
type TransactionRecorderSvc interface {
	// RecordTransaction persists an income or expense event and attempts its
	// ledger posting. The result's outcome distinguishes posted /
	// skipped-deferred / posting-failed.
	RecordTransaction(ctx context.Context, req dto.CreateTransactionRequest, actor string) (*domain.PostingResult, error)

	// RecordIncome wraps RecordTransaction for collaborator services (sales,
	// orders, alterations) with a fixed description template.
	RecordIncome(ctx context.Context, req dto.RecordIncomeRequest, actor string) (*domain.PostingResult, error)

	// RecordExpensePayment wraps RecordTransaction for the expense service.
	RecordExpensePayment(ctx context.Context, req dto.RecordExpensePaymentRequest, actor string) (*domain.PostingResult, error)

	// RecordTransfer persists an explicit two-account transfer and posts both
	// legs atomically. Unlike income/expense, a transfer's posting failure
	// fails the whole operation.
	RecordTransfer(ctx context.Context, req dto.RecordTransferRequest, actor string) (*domain.TransferResult, error)
}

// TransactionSvcFacade combines all transaction service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionRecorderSvc
}
