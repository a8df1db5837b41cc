package domain

import "github.com/shopspring/decimal"

// TransactionType classifies a business-level financial event.
type TransactionType string

const (
	TransactionIncome   TransactionType = "income"
	TransactionExpense  TransactionType = "expense"
	TransactionTransfer TransactionType = "transfer"
)

// PaymentMethod is how a business event was paid. Deferred methods recognize a
// receivable elsewhere and never touch the ledger.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentMobile   PaymentMethod = "mobile"
	PaymentCredit   PaymentMethod = "credit"
	PaymentOther    PaymentMethod = "other"
)

// KnownPaymentMethods lists every accepted payment method value.
var KnownPaymentMethods = []PaymentMethod{
	PaymentCash, PaymentCard, PaymentTransfer, PaymentMobile, PaymentCredit, PaymentOther,
}

// Valid reports whether m is one of the accepted payment method values.
func (m PaymentMethod) Valid() bool {
	for _, k := range KnownPaymentMethods {
		if m == k {
			return true
		}
	}
	return false
}

// SourceType identifies the business document a transaction originated from.
type SourceType string

const (
	SourceSale       SourceType = "sale"
	SourceOrder      SourceType = "order"
	SourceExpense    SourceType = "expense"
	SourceAlteration SourceType = "alteration"
	SourceManual     SourceType = "manual"
)

// Transaction represents a business-level financial event (income, expense,
// transfer), not a storage transaction. It may or may not result in a ledger
// posting: PostedAccountID doubles as the at-most-once posting marker and stays
// nil for deferred payment methods and for failed postings awaiting
// reconciliation.
type Transaction struct {
	TransactionID    string          `json:"transactionID"`      // Primary Key (UUID)
	BranchID         *string         `json:"branchID,omitempty"` // Nullable; nil = global
	Type             TransactionType `json:"type"`
	Amount           decimal.Decimal `json:"amount"` // Always positive
	PaymentMethod    PaymentMethod   `json:"paymentMethod"`
	Description      string          `json:"description"`
	Category         string          `json:"category,omitempty"`
	SourceType       SourceType      `json:"sourceType,omitempty"` // Originating document kind
	SourceID         string          `json:"sourceID,omitempty"`
	PostedAccountID  *string         `json:"postedAccountID,omitempty"`  // Set exactly once, with the posting
	CounterAccountID *string         `json:"counterAccountID,omitempty"` // Transfer destination
	AuditFields
}

// Posted reports whether this transaction's ledger posting happened.
func (t Transaction) Posted() bool {
	return t.PostedAccountID != nil
}

// PostingOutcome states what happened to a transaction's ledger side.
type PostingOutcome string

const (
	OutcomePosted          PostingOutcome = "posted"
	OutcomeSkippedDeferred PostingOutcome = "skipped-deferred"
	OutcomePostingFailed   PostingOutcome = "posting-failed"
)

// PostingResult pairs a recorded transaction with its ledger outcome. A
// posting-failed outcome means the business event was durably recorded but the
// ledger was not touched; the transaction is then a reconciliation item.
type PostingResult struct {
	Transaction Transaction    `json:"transaction"`
	Entry       *BalanceEntry  `json:"entry,omitempty"`
	Outcome     PostingOutcome `json:"outcome"`
}

// TransferResult pairs a transfer transaction with its two ledger entries.
// Both legs post in one storage transaction, so the entries are either both
// present or the transfer failed entirely.
type TransferResult struct {
	Transaction Transaction  `json:"transaction"`
	FromEntry   BalanceEntry `json:"fromEntry"`
	ToEntry     BalanceEntry `json:"toEntry"`
}
