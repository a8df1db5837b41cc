package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a cost the business owes or has settled. Its payment state drives
// the adjustment engine: unpaid -> partially-paid -> fully-paid, with
// adjustments able to move it backward (refund, reversal) or sideways
// (amount/account correction).
type Expense struct {
	ExpenseID        string          `json:"expenseID"`          // Primary Key (UUID)
	BranchID         *string         `json:"branchID,omitempty"` // Nullable; nil = global
	Name             string          `json:"name"`
	Category         string          `json:"category,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	AmountPaid       decimal.Decimal `json:"amountPaid"`
	IsPaid           bool            `json:"isPaid"`
	PaymentMethod    *PaymentMethod  `json:"paymentMethod,omitempty"`    // Nil until a payment is recorded
	PaymentAccountID *string         `json:"paymentAccountID,omitempty"` // Account the payment was posted to
	ExpenseDate      time.Time       `json:"expenseDate"`
	Notes            string          `json:"notes,omitempty"`
	AuditFields
}

// Outstanding is the amount still owed.
func (e Expense) Outstanding() decimal.Decimal {
	return e.Amount.Sub(e.AmountPaid)
}

// HasPayments reports whether any money was ever recorded against this expense.
func (e Expense) HasPayments() bool {
	return e.AmountPaid.IsPositive()
}
