package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceEntry is the balance_entries table row. The table is append-only: no
// update or delete statement for it exists anywhere in this repository, so the
// row carries creation audit columns only.
type BalanceEntry struct {
	EntryID      string          `db:"entry_id"`
	AccountID    string          `db:"account_id"`
	EntryDate    time.Time       `db:"entry_date"`
	Amount       decimal.Decimal `db:"amount"`
	BalanceAfter decimal.Decimal `db:"balance_after"`
	Description  string          `db:"description"`
	Reference    *string         `db:"reference"` // Nullable
	CreatedAt    time.Time       `db:"created_at"`
	CreatedBy    string          `db:"created_by"`
}
