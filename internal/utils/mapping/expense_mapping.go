package mapping

import (
	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	"github.com/atelierops/shop_ledger_app/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	m := models.Expense{
		ExpenseID:        d.ExpenseID,
		BranchID:         d.BranchID,
		Name:             d.Name,
		Amount:           d.Amount,
		AmountPaid:       d.AmountPaid,
		IsPaid:           d.IsPaid,
		PaymentAccountID: d.PaymentAccountID,
		ExpenseDate:      d.ExpenseDate,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
	if d.Category != "" {
		category := d.Category
		m.Category = &category
	}
	if d.PaymentMethod != nil {
		method := string(*d.PaymentMethod)
		m.PaymentMethod = &method
	}
	if d.Notes != "" {
		notes := d.Notes
		m.Notes = &notes
	}
	return m
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	d := domain.Expense{
		ExpenseID:        m.ExpenseID,
		BranchID:         m.BranchID,
		Name:             m.Name,
		Amount:           m.Amount,
		AmountPaid:       m.AmountPaid,
		IsPaid:           m.IsPaid,
		PaymentAccountID: m.PaymentAccountID,
		ExpenseDate:      m.ExpenseDate,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
	if m.Category != nil {
		d.Category = *m.Category
	}
	if m.PaymentMethod != nil {
		method := domain.PaymentMethod(*m.PaymentMethod)
		d.PaymentMethod = &method
	}
	if m.Notes != nil {
		d.Notes = *m.Notes
	}
	return d
}

// ToDomainExpenseSlice converts a slice of model Expenses to domain ones
func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}
