package dto

import (
	"time"

	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FixedAssetPayload carries the kind-specific fields of a fixed asset account.
type FixedAssetPayload struct {
	OriginalValue           decimal.Decimal `json:"originalValue" binding:"required"`
	AccumulatedDepreciation decimal.Decimal `json:"accumulatedDepreciation"`
}

// LiabilityPayload carries the kind-specific fields of a liability account.
type LiabilityPayload struct {
	Creditor     string          `json:"creditor" binding:"required"`
	InterestRate decimal.Decimal `json:"interestRate"`
	DueDate      *time.Time      `json:"dueDate"` // Optional
}

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code           string             `json:"code" binding:"required"`
	Name           string             `json:"name" binding:"required"`
	Kind           domain.AccountKind `json:"kind" binding:"required,oneof=CURRENT_ASSET FIXED_ASSET CURRENT_LIABILITY LONG_TERM_LIABILITY"`
	BranchID       *string            `json:"branchID"`       // Optional, nil = global account
	OpeningBalance *decimal.Decimal   `json:"openingBalance"` // Optional; a non-zero value is posted as the first entry
	FixedAsset     *FixedAssetPayload `json:"fixedAsset"`     // Required when kind is FIXED_ASSET
	Liability      *LiabilityPayload  `json:"liability"`      // Required for liability kinds
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name       *string            `json:"name"`       // Optional: New name
	FixedAsset *FixedAssetPayload `json:"fixedAsset"` // Optional: replaces the fixed asset payload
	Liability  *LiabilityPayload  `json:"liability"`  // Optional: replaces the liability payload
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	BranchID      *string            `json:"branchID,omitempty"`
	Code          string             `json:"code"`
	Name          string             `json:"name"`
	Kind          domain.AccountKind `json:"kind"`
	Balance       decimal.Decimal    `json:"balance"`
	IsActive      bool               `json:"isActive"`
	FixedAsset    *FixedAssetPayload `json:"fixedAsset,omitempty"`
	Liability     *LiabilityPayload  `json:"liability,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	CreatedBy     string             `json:"createdBy"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	resp := AccountResponse{
		AccountID:     acc.AccountID,
		BranchID:      acc.BranchID,
		Code:          acc.Code,
		Name:          acc.Name,
		Kind:          acc.Kind,
		Balance:       acc.Balance,
		IsActive:      acc.IsActive,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
	if acc.FixedAsset != nil {
		resp.FixedAsset = &FixedAssetPayload{
			OriginalValue:           acc.FixedAsset.OriginalValue,
			AccumulatedDepreciation: acc.FixedAsset.AccumulatedDepreciation,
		}
	}
	if acc.Liability != nil {
		resp.Liability = &LiabilityPayload{
			Creditor:     acc.Liability.Creditor,
			InterestRate: acc.Liability.InterestRate,
			DueDate:      acc.Liability.DueDate,
		}
	}
	return resp
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc) // Reuse the single converter
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	BranchID        *string `form:"branchID"`
	Kind            *string `form:"kind"`
	IncludeInactive bool    `form:"includeInactive,default=false"`
	Limit           int     `form:"limit,default=20"`
	Offset          int     `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
