package dto

import (
	"time"

	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a business
// transaction. Transfers go through RecordTransferRequest instead.
type CreateTransactionRequest struct {
	Type          domain.TransactionType `json:"type" binding:"required,oneof=income expense"`
	Amount        decimal.Decimal        `json:"amount" binding:"required"`
	PaymentMethod domain.PaymentMethod   `json:"paymentMethod" binding:"required,paymentmethod"`
	Description   string                 `json:"description" binding:"required"`
	Category      string                 `json:"category"`
	SourceType    domain.SourceType      `json:"sourceType"` // Defaults to manual
	SourceID      string                 `json:"sourceID"`
	BranchID      *string                `json:"branchID"`
	EntryDate     *time.Time             `json:"entryDate"` // Optional, defaults to now
}

// RecordIncomeRequest is the narrowed payload collaborator services (sales,
// orders, alterations) use to push income into the ledger.
type RecordIncomeRequest struct {
	Amount        decimal.Decimal      `json:"amount" binding:"required"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,paymentmethod"`
	SourceType    domain.SourceType    `json:"sourceType" binding:"required,oneof=sale order alteration manual"`
	SourceID      string               `json:"sourceID" binding:"required"`
	Description   string               `json:"description"`
	BranchID      *string              `json:"branchID"`
}

// RecordExpensePaymentRequest is the payload the expense flow uses to push an
// expense payment into the ledger.
type RecordExpensePaymentRequest struct {
	ExpenseID     string               `json:"expenseID" binding:"required"`
	Amount        decimal.Decimal      `json:"amount" binding:"required"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,paymentmethod"`
	Description   string               `json:"description"`
	BranchID      *string              `json:"branchID"`
}

// RecordTransferRequest moves money between two explicit accounts.
type RecordTransferRequest struct {
	FromAccountID string          `json:"fromAccountID" binding:"required"`
	ToAccountID   string          `json:"toAccountID" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	BranchID      *string         `json:"branchID"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID    string          `json:"transactionID"`
	BranchID         *string         `json:"branchID,omitempty"`
	Type             string          `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	PaymentMethod    string          `json:"paymentMethod"`
	Description      string          `json:"description"`
	Category         string          `json:"category,omitempty"`
	SourceType       string          `json:"sourceType,omitempty"`
	SourceID         string          `json:"sourceID,omitempty"`
	PostedAccountID  *string         `json:"postedAccountID,omitempty"`
	CounterAccountID *string         `json:"counterAccountID,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:    txn.TransactionID,
		BranchID:         txn.BranchID,
		Type:             string(txn.Type),
		Amount:           txn.Amount,
		PaymentMethod:    string(txn.PaymentMethod),
		Description:      txn.Description,
		Category:         txn.Category,
		SourceType:       string(txn.SourceType),
		SourceID:         txn.SourceID,
		PostedAccountID:  txn.PostedAccountID,
		CounterAccountID: txn.CounterAccountID,
		CreatedAt:        txn.CreatedAt,
		CreatedBy:        txn.CreatedBy,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}

// PostingResultResponse reports a recorded transaction together with what
// happened on the ledger side. The entry is absent for skipped and failed
// postings.
type PostingResultResponse struct {
	Transaction TransactionResponse   `json:"transaction"`
	Entry       *BalanceEntryResponse `json:"entry,omitempty"`
	Outcome     string                `json:"outcome"`
}

// ToPostingResultResponse converts a domain.PostingResult to its response DTO.
func ToPostingResultResponse(result *domain.PostingResult) PostingResultResponse {
	resp := PostingResultResponse{
		Transaction: ToTransactionResponse(&result.Transaction),
		Outcome:     string(result.Outcome),
	}
	if result.Entry != nil {
		entry := ToBalanceEntryResponse(result.Entry)
		resp.Entry = &entry
	}
	return resp
}

// TransferResultResponse reports a transfer transaction with both ledger legs.
type TransferResultResponse struct {
	Transaction TransactionResponse  `json:"transaction"`
	FromEntry   BalanceEntryResponse `json:"fromEntry"`
	ToEntry     BalanceEntryResponse `json:"toEntry"`
}

// ToTransferResultResponse converts a domain.TransferResult to its response DTO.
func ToTransferResultResponse(result *domain.TransferResult) TransferResultResponse {
	return TransferResultResponse{
		Transaction: ToTransactionResponse(&result.Transaction),
		FromEntry:   ToBalanceEntryResponse(&result.FromEntry),
		ToEntry:     ToBalanceEntryResponse(&result.ToEntry),
	}
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	BranchID     *string `form:"branchID"`
	Type         *string `form:"type"`
	SourceType   *string `form:"sourceType"`
	UnpostedOnly bool    `form:"unpostedOnly,default=false"`
	Limit        int     `form:"limit,default=20"`
	NextToken    *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions with the cursor for
// the next page.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    string                `json:"nextToken,omitempty"`
}
