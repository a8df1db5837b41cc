package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reference prefixes with external meaning. History and audit queries filter on
// them; they must never change.
const (
	LiquidationRefPrefix = "LIQ-" // followed by the batch timestamp YYYYMMDDHHMMSS
	AdjustmentRefPrefix  = "ADJ-" // followed by the corrected expense id
	ReversalRefPrefix    = "REF-" // followed by the reversed expense id
)

// BalanceEntry is one immutable signed movement against an account, with a
// snapshot of the balance that resulted from it. Entries are never updated or
// deleted; corrections are new compensating entries. Only the ledger poster
// creates them, always in the same unit of work as the balance mutation.
type BalanceEntry struct {
	EntryID      string          `json:"entryID"`   // Primary Key (UUID)
	AccountID    string          `json:"accountID"` // FK -> accounts.account_id
	EntryDate    time.Time       `json:"entryDate"`
	Amount       decimal.Decimal `json:"amount"`       // Signed; positive = credit/inflow, negative = debit/outflow
	BalanceAfter decimal.Decimal `json:"balanceAfter"` // Account balance immediately after this posting
	Description  string          `json:"description"`
	Reference    string          `json:"reference,omitempty"` // e.g. "LIQ-20240301120000", "ADJ-<expenseID>"
	CreatedAt    time.Time       `json:"createdAt"`
	CreatedBy    string          `json:"createdBy"`
}
