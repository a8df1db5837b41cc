package models

import "github.com/shopspring/decimal"

// TransactionType classifies a business-level financial event.
type TransactionType string

const (
	TransactionIncome   TransactionType = "income"
	TransactionExpense  TransactionType = "expense"
	TransactionTransfer TransactionType = "transfer"
)

// Transaction is the transactions table row: one business-level financial
// event. PostedAccountID is NULL until (and unless) the event's ledger posting
// succeeds; a NULL on a routable payment method marks a reconciliation item.
type Transaction struct {
	TransactionID    string          `db:"transaction_id"`
	BranchID         *string         `db:"branch_id"` // Nullable; NULL = global
	Type             TransactionType `db:"type"`
	Amount           decimal.Decimal `db:"amount"`
	PaymentMethod    string          `db:"payment_method"`
	Description      string          `db:"description"`
	Category         *string         `db:"category"`    // Nullable
	SourceType       *string         `db:"source_type"` // Nullable
	SourceID         *string         `db:"source_id"`   // Nullable
	PostedAccountID  *string         `db:"posted_account_id"`
	CounterAccountID *string         `db:"counter_account_id"`
	AuditFields
}
