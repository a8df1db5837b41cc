package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind classifies an account within the chart of accounts.
type AccountKind string

const (
	CurrentAsset      AccountKind = "CURRENT_ASSET"
	FixedAsset        AccountKind = "FIXED_ASSET"
	CurrentLiability  AccountKind = "CURRENT_LIABILITY"
	LongTermLiability AccountKind = "LONG_TERM_LIABILITY"
)

// Account is the accounts table row. The kind-specific payloads (fixed asset,
// liability) are flattened into nullable columns; the mapping layer folds them
// back into the domain's tagged union.
type Account struct {
	AccountID string          `db:"account_id"`
	BranchID  *string         `db:"branch_id"` // Nullable; NULL = global account
	Code      string          `db:"code"`
	Name      string          `db:"name"`
	Kind      AccountKind     `db:"kind"`
	Balance   decimal.Decimal `db:"balance"`
	IsActive  bool            `db:"is_active"`

	// Fixed-asset payload (kind = FIXED_ASSET)
	OriginalValue           *decimal.Decimal `db:"original_value"`
	AccumulatedDepreciation *decimal.Decimal `db:"accumulated_depreciation"`

	// Liability payload (kind = CURRENT_LIABILITY / LONG_TERM_LIABILITY)
	Creditor     *string          `db:"creditor"`
	InterestRate *decimal.Decimal `db:"interest_rate"`
	DueDate      *time.Time       `db:"due_date"`

	AuditFields // Embed common audit columns
}
