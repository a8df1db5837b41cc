package dto

import (
	"time"

	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceEntryResponse defines the data returned for a single ledger posting.
type BalanceEntryResponse struct {
	EntryID      string          `json:"entryID"`
	AccountID    string          `json:"accountID"`
	EntryDate    time.Time       `json:"entryDate"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
	Description  string          `json:"description"`
	Reference    string          `json:"reference,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	CreatedBy    string          `json:"createdBy"`
}

// ToBalanceEntryResponse converts a domain.BalanceEntry to BalanceEntryResponse DTO
func ToBalanceEntryResponse(entry *domain.BalanceEntry) BalanceEntryResponse {
	return BalanceEntryResponse{
		EntryID:      entry.EntryID,
		AccountID:    entry.AccountID,
		EntryDate:    entry.EntryDate,
		Amount:       entry.Amount,
		BalanceAfter: entry.BalanceAfter,
		Description:  entry.Description,
		Reference:    entry.Reference,
		CreatedAt:    entry.CreatedAt,
		CreatedBy:    entry.CreatedBy,
	}
}

// ToListBalanceEntryResponse converts a slice of domain.BalanceEntry to response DTOs
func ToListBalanceEntryResponse(entries []domain.BalanceEntry) []BalanceEntryResponse {
	res := make([]BalanceEntryResponse, len(entries))
	for i, entry := range entries {
		res[i] = ToBalanceEntryResponse(&entry)
	}
	return res
}

// ListEntriesParams defines query parameters for listing an account's entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit,default=50"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse wraps a page of entries with the cursor for the next page.
type ListEntriesResponse struct {
	Entries   []BalanceEntryResponse `json:"entries"`
	NextToken string                 `json:"nextToken,omitempty"`
}

// BalanceVerificationResponse compares an account's cached balance against the
// sum of its entries. The two differ only when something bypassed the poster.
type BalanceVerificationResponse struct {
	AccountID       string          `json:"accountID"`
	CachedBalance   decimal.Decimal `json:"cachedBalance"`
	ComputedBalance decimal.Decimal `json:"computedBalance"`
	Consistent      bool            `json:"consistent"`
}
