package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the expenses table row.
type Expense struct {
	ExpenseID        string          `db:"expense_id"`
	BranchID         *string         `db:"branch_id"` // Nullable; NULL = global
	Name             string          `db:"name"`
	Category         *string         `db:"category"` // Nullable
	Amount           decimal.Decimal `db:"amount"`
	AmountPaid       decimal.Decimal `db:"amount_paid"`
	IsPaid           bool            `db:"is_paid"`
	PaymentMethod    *string         `db:"payment_method"`     // Nullable until paid
	PaymentAccountID *string         `db:"payment_account_id"` // Nullable
	ExpenseDate      time.Time       `db:"expense_date"`
	Notes            *string         `db:"notes"` // Nullable
	AuditFields
}
