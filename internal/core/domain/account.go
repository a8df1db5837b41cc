package domain

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

// Well-known account codes. Downstream audit and reporting queries depend on
// these exact values; they must never change.
const (
	CodeOperatingTill    = "1101"
	CodeConsolidatedTill = "1102"
	CodeMobileWallet     = "1103"
	CodeBank             = "1104"
)

// FixedAssetDetail carries the extra state of a FIXED_ASSET account.
type FixedAssetDetail struct {
	OriginalValue           decimal.Decimal `json:"originalValue"`
	AccumulatedDepreciation decimal.Decimal `json:"accumulatedDepreciation"`
}

// NetValue is the original value minus accumulated depreciation.
func (d FixedAssetDetail) NetValue() decimal.Decimal {
	return d.OriginalValue.Sub(d.AccumulatedDepreciation)
}

// LiabilityDetail carries the extra state of a liability account.
type LiabilityDetail struct {
	Creditor     string          `json:"creditor"`
	InterestRate decimal.Decimal `json:"interestRate"`
	DueDate      *time.Time      `json:"dueDate,omitempty"`
}

// Account represents one balance-bearing ledger line (till, bank, liability,
// fixed asset). This is the primary representation used by services.
//
// Balance is a materialized cache over the account's balance_entries; the entry
// log is authoritative. Only the ledger poster may write it.
type Account struct {
	AccountID   string            `json:"accountID"`          // Primary Key (UUID)
	BranchID    *string           `json:"branchID,omitempty"` // Nullable; nil = global (business-wide) account
	Code        string            `json:"code"`               // Short human code, e.g. "1101"
	Name        string            `json:"name"`
	Kind        AccountKind       `json:"kind"`
	Balance     decimal.Decimal   `json:"balance"`
	IsActive    bool              `json:"isActive"` // Soft delete flag
	FixedAsset  *FixedAssetDetail `json:"fixedAsset,omitempty"` // Set iff Kind == FIXED_ASSET
	Liability   *LiabilityDetail  `json:"liability,omitempty"`  // Set iff Kind is a liability kind
	AuditFields                   // Embed CreatedAt, CreatedBy, etc.
}

// IsLiquid reports whether the account holds spendable funds.
func (a Account) IsLiquid() bool {
	return a.Kind == CurrentAsset
}

// IsLiability reports whether the account represents a debt.
func (a Account) IsLiability() bool {
	return a.Kind == CurrentLiability || a.Kind == LongTermLiability
}
