package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionPostedEvent announces a successful ledger posting.
type TransactionPostedEvent struct {
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	EntryID       string          `json:"entryID"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	PostedAt      time.Time       `json:"postedAt"`
}

// PostingFailedEvent announces a transaction that was recorded but whose
// ledger posting failed. Consumers raise reconciliation alerts from these.
type PostingFailedEvent struct {
	TransactionID string    `json:"transactionID"`
	AccountCode   string    `json:"accountCode"`
	Reason        string    `json:"reason"`
	FailedAt      time.Time `json:"failedAt"`
}

// LiquidationCompletedEvent announces a finished till liquidation.
type LiquidationCompletedEvent struct {
	Reference            string          `json:"reference"`
	Amount               decimal.Decimal `json:"amount"`
	SourceAccountID      string          `json:"sourceAccountID"`
	DestinationAccountID string          `json:"destinationAccountID"`
	LiquidatedAt         time.Time       `json:"liquidatedAt"`
}

// ExpenseAdjustedEvent announces a correction applied to a paid expense.
type ExpenseAdjustedEvent struct {
	ExpenseID       string          `json:"expenseID"`
	AdjustmentID    string          `json:"adjustmentID"`
	Reason          string          `json:"reason"`
	AdjustmentDelta decimal.Decimal `json:"adjustmentDelta"`
	AdjustedAt      time.Time       `json:"adjustedAt"`
}
