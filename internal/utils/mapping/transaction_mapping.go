package mapping

import (
	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	"github.com/atelierops/shop_ledger_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		TransactionID:    d.TransactionID,
		BranchID:         d.BranchID,
		Type:             models.TransactionType(d.Type),
		Amount:           d.Amount,
		PaymentMethod:    string(d.PaymentMethod),
		Description:      d.Description,
		PostedAccountID:  d.PostedAccountID,
		CounterAccountID: d.CounterAccountID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
	if d.Category != "" {
		category := d.Category
		m.Category = &category
	}
	if d.SourceType != "" {
		sourceType := string(d.SourceType)
		m.SourceType = &sourceType
	}
	if d.SourceID != "" {
		sourceID := d.SourceID
		m.SourceID = &sourceID
	}
	return m
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID:    m.TransactionID,
		BranchID:         m.BranchID,
		Type:             domain.TransactionType(m.Type),
		Amount:           m.Amount,
		PaymentMethod:    domain.PaymentMethod(m.PaymentMethod),
		Description:      m.Description,
		PostedAccountID:  m.PostedAccountID,
		CounterAccountID: m.CounterAccountID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
	if m.Category != nil {
		d.Category = *m.Category
	}
	if m.SourceType != nil {
		d.SourceType = domain.SourceType(*m.SourceType)
	}
	if m.SourceID != nil {
		d.SourceID = *m.SourceID
	}
	return d
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain ones
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
