package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentReason classifies why a paid expense was corrected. Values are
// persisted and reported verbatim; they must never change.
type AdjustmentReason string

const (
	ReasonAmountCorrection  AdjustmentReason = "amount-correction"
	ReasonAccountCorrection AdjustmentReason = "account-correction"
	ReasonBoth              AdjustmentReason = "both"
	ReasonPartialRefund     AdjustmentReason = "partial-refund"
	ReasonErrorReversal     AdjustmentReason = "error-reversal"
)

// PaymentSnapshot captures an expense's payment state at one point in time.
// Adjustments store a before and an after snapshot so the correction timeline
// can be replayed without consulting expense history.
type PaymentSnapshot struct {
	Amount        decimal.Decimal `json:"amount"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	PaymentMethod *PaymentMethod  `json:"paymentMethod,omitempty"`
	AccountID     *string         `json:"accountID,omitempty"`
}

// Adjustment is the audit record of one correction or reversal applied to a
// previously paid expense. It never mutates history: it only references the new
// compensating BalanceEntry rows it produced. Append-only.
type Adjustment struct {
	AdjustmentID    string           `json:"adjustmentID"` // Primary Key (UUID)
	ExpenseID       string           `json:"expenseID"`    // FK -> expenses.expense_id
	Reason          AdjustmentReason `json:"reason"`
	Description     string           `json:"description"`
	Previous        PaymentSnapshot  `json:"previous"`
	New             PaymentSnapshot  `json:"new"`
	AdjustmentDelta decimal.Decimal  `json:"adjustmentDelta"` // Net cash returned to (+) or taken from (-) accounts
	EntryIDs        []string         `json:"entryIDs"`        // Compensating BalanceEntry ids, in posting order
	CreatedAt       time.Time        `json:"createdAt"`
	CreatedBy       string           `json:"createdBy"`
}
