package dto

import (
	"time"

	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLiquidationRequest defines the data needed to liquidate the operating
// till into the consolidated till.
type CreateLiquidationRequest struct {
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Notes    string          `json:"notes"`
	BranchID *string         `json:"branchID"` // Optional, nil = global tills
}

// LiquidationResponse defines the data returned for a completed liquidation.
type LiquidationResponse struct {
	Reference            string          `json:"reference"`
	Amount               decimal.Decimal `json:"amount"`
	SourceAccountID      string          `json:"sourceAccountID"`
	DestinationAccountID string          `json:"destinationAccountID"`
	SourceBalance        decimal.Decimal `json:"sourceBalance"`
	DestinationBalance   decimal.Decimal `json:"destinationBalance"`
	SourceEntryID        string          `json:"sourceEntryID"`
	DestinationEntryID   string          `json:"destinationEntryID"`
	LiquidatedAt         time.Time       `json:"liquidatedAt"`
}

// ToLiquidationResponse converts a domain.LiquidationResult to LiquidationResponse DTO
func ToLiquidationResponse(result *domain.LiquidationResult) LiquidationResponse {
	return LiquidationResponse{
		Reference:            result.Reference,
		Amount:               result.Amount,
		SourceAccountID:      result.SourceAccountID,
		DestinationAccountID: result.DestinationAccountID,
		SourceBalance:        result.SourceBalance,
		DestinationBalance:   result.DestinationBalance,
		SourceEntryID:        result.SourceEntryID,
		DestinationEntryID:   result.DestinationEntryID,
		LiquidatedAt:         result.LiquidatedAt,
	}
}

// LiquidationHistoryRequest defines query parameters for liquidation history.
type LiquidationHistoryRequest struct {
	FromDate *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate   *time.Time `form:"toDate" time_format:"2006-01-02"`
	Limit    int        `form:"limit,default=50"`
	BranchID *string    `form:"branchID"`
}

// LiquidationRecordResponse defines one liquidation history row.
type LiquidationRecordResponse struct {
	EntryID      string          `json:"entryID"`
	Reference    string          `json:"reference"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
	Notes        string          `json:"notes,omitempty"`
	LiquidatedAt time.Time       `json:"liquidatedAt"`
	CreatedBy    string          `json:"createdBy"`
}

// ToLiquidationHistoryResponse converts domain liquidation records to response DTOs
func ToLiquidationHistoryResponse(records []domain.LiquidationRecord) []LiquidationRecordResponse {
	res := make([]LiquidationRecordResponse, len(records))
	for i, rec := range records {
		res[i] = LiquidationRecordResponse{
			EntryID:      rec.EntryID,
			Reference:    rec.Reference,
			Amount:       rec.Amount,
			BalanceAfter: rec.BalanceAfter,
			Notes:        rec.Notes,
			LiquidatedAt: rec.LiquidatedAt,
			CreatedBy:    rec.CreatedBy,
		}
	}
	return res
}
