package dto

import (
	"time"

	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AdjustExpenseRequest defines the data needed to correct a paid expense.
// At least one of NewAmount and NewAccountID must be provided.
type AdjustExpenseRequest struct {
	NewAmount        *decimal.Decimal `json:"newAmount"`        // Optional: corrected expense amount
	NewAccountID     *string          `json:"newAccountID"`     // Optional: corrected paying account
	NewPaymentMethod *string          `json:"newPaymentMethod"` // Optional: corrected payment method
	Description      string           `json:"description" binding:"required"`
}

// RevertExpenseRequest defines the data needed to fully reverse an expense payment.
type RevertExpenseRequest struct {
	Description string `json:"description" binding:"required"`
}

// PartialRefundRequest defines the data needed to refund part of a paid expense.
type PartialRefundRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
}

// PaymentSnapshotResponse is the payment state of an expense at one side of an
// adjustment.
type PaymentSnapshotResponse struct {
	Amount        decimal.Decimal `json:"amount"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	PaymentMethod *string         `json:"paymentMethod,omitempty"`
	AccountID     *string         `json:"accountID,omitempty"`
}

// AdjustmentResponse defines the data returned for an adjustment.
// Mirrors domain.Adjustment.
type AdjustmentResponse struct {
	AdjustmentID    string                  `json:"adjustmentID"`
	ExpenseID       string                  `json:"expenseID"`
	Reason          string                  `json:"reason"`
	Description     string                  `json:"description"`
	Previous        PaymentSnapshotResponse `json:"previous"`
	New             PaymentSnapshotResponse `json:"new"`
	AdjustmentDelta decimal.Decimal         `json:"adjustmentDelta"`
	EntryIDs        []string                `json:"entryIDs"`
	CreatedAt       time.Time               `json:"createdAt"`
	CreatedBy       string                  `json:"createdBy"`
}

func toPaymentSnapshotResponse(snap domain.PaymentSnapshot) PaymentSnapshotResponse {
	resp := PaymentSnapshotResponse{
		Amount:     snap.Amount,
		AmountPaid: snap.AmountPaid,
		AccountID:  snap.AccountID,
	}
	if snap.PaymentMethod != nil {
		method := string(*snap.PaymentMethod)
		resp.PaymentMethod = &method
	}
	return resp
}

// ToAdjustmentResponse converts a domain.Adjustment to AdjustmentResponse DTO
func ToAdjustmentResponse(adj *domain.Adjustment) AdjustmentResponse {
	return AdjustmentResponse{
		AdjustmentID:    adj.AdjustmentID,
		ExpenseID:       adj.ExpenseID,
		Reason:          string(adj.Reason),
		Description:     adj.Description,
		Previous:        toPaymentSnapshotResponse(adj.Previous),
		New:             toPaymentSnapshotResponse(adj.New),
		AdjustmentDelta: adj.AdjustmentDelta,
		EntryIDs:        adj.EntryIDs,
		CreatedAt:       adj.CreatedAt,
		CreatedBy:       adj.CreatedBy,
	}
}

// ToListAdjustmentResponse converts a slice of domain.Adjustment to response DTOs
func ToListAdjustmentResponse(adjustments []domain.Adjustment) []AdjustmentResponse {
	res := make([]AdjustmentResponse, len(adjustments))
	for i, adj := range adjustments {
		res[i] = ToAdjustmentResponse(&adj)
	}
	return res
}
