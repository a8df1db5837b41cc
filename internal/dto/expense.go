package dto

import (
	"time"

	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines the data needed to register an expense.
// AmountPaid above zero records and posts the payment in the same flow.
type CreateExpenseRequest struct {
	Name          string                `json:"name" binding:"required"`
	Category      string                `json:"category"`
	Amount        decimal.Decimal       `json:"amount" binding:"required"`
	AmountPaid    *decimal.Decimal      `json:"amountPaid"`    // Optional, defaults to zero
	PaymentMethod *domain.PaymentMethod `json:"paymentMethod"` // Required when amountPaid > 0
	ExpenseDate   *time.Time            `json:"expenseDate"`   // Optional, defaults to now
	Notes         string                `json:"notes"`
	BranchID      *string               `json:"branchID"`
}

// PayExpenseRequest defines the data needed to pay (part of) an expense.
type PayExpenseRequest struct {
	Amount        decimal.Decimal      `json:"amount" binding:"required"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,paymentmethod"`
	Notes         string               `json:"notes"`
}

// ExpenseResponse defines the data returned for an expense.
// Mirrors domain.Expense.
type ExpenseResponse struct {
	ExpenseID        string          `json:"expenseID"`
	BranchID         *string         `json:"branchID,omitempty"`
	Name             string          `json:"name"`
	Category         string          `json:"category,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	AmountPaid       decimal.Decimal `json:"amountPaid"`
	IsPaid           bool            `json:"isPaid"`
	PaymentMethod    *string         `json:"paymentMethod,omitempty"`
	PaymentAccountID *string         `json:"paymentAccountID,omitempty"`
	ExpenseDate      time.Time       `json:"expenseDate"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy    string          `json:"lastUpdatedBy"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO
func ToExpenseResponse(exp *domain.Expense) ExpenseResponse {
	resp := ExpenseResponse{
		ExpenseID:        exp.ExpenseID,
		BranchID:         exp.BranchID,
		Name:             exp.Name,
		Category:         exp.Category,
		Amount:           exp.Amount,
		AmountPaid:       exp.AmountPaid,
		IsPaid:           exp.IsPaid,
		PaymentAccountID: exp.PaymentAccountID,
		ExpenseDate:      exp.ExpenseDate,
		Notes:            exp.Notes,
		CreatedAt:        exp.CreatedAt,
		CreatedBy:        exp.CreatedBy,
		LastUpdatedAt:    exp.LastUpdatedAt,
		LastUpdatedBy:    exp.LastUpdatedBy,
	}
	if exp.PaymentMethod != nil {
		method := string(*exp.PaymentMethod)
		resp.PaymentMethod = &method
	}
	return resp
}

// ToListExpenseResponse converts a slice of domain.Expense to a slice of ExpenseResponse DTOs
func ToListExpenseResponse(expenses []domain.Expense) []ExpenseResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i, exp := range expenses {
		res[i] = ToExpenseResponse(&exp)
	}
	return res
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	BranchID   *string `form:"branchID"`
	UnpaidOnly bool    `form:"unpaidOnly,default=false"`
	Limit      int     `form:"limit,default=20"`
	Offset     int     `form:"offset,default=0"`
}

// ListExpensesResponse wraps the list of expenses.
type ListExpensesResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}
