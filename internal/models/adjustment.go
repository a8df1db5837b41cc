package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Adjustment is the adjustments table row: the audit record of one expense
// correction or reversal. Append-only, like balance_entries.
type Adjustment struct {
	AdjustmentID string `db:"adjustment_id"`
	ExpenseID    string `db:"expense_id"`
	Reason       string `db:"reason"`
	Description  string `db:"description"`

	// Payment state before the adjustment
	PrevAmount        decimal.Decimal `db:"prev_amount"`
	PrevAmountPaid    decimal.Decimal `db:"prev_amount_paid"`
	PrevPaymentMethod *string         `db:"prev_payment_method"`
	PrevAccountID     *string         `db:"prev_account_id"`

	// Payment state after the adjustment
	NewAmount        decimal.Decimal `db:"new_amount"`
	NewAmountPaid    decimal.Decimal `db:"new_amount_paid"`
	NewPaymentMethod *string         `db:"new_payment_method"`
	NewAccountID     *string         `db:"new_account_id"`

	AdjustmentDelta decimal.Decimal `db:"adjustment_delta"`
	EntryIDs        []string        `db:"entry_ids"` // Ids of the compensating balance entries
	CreatedAt       time.Time       `db:"created_at"`
	CreatedBy       string          `db:"created_by"`
}
