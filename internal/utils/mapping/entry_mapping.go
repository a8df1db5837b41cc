package mapping

import (
	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	"github.com/atelierops/shop_ledger_app/internal/models"
)

// ToModelBalanceEntry converts a domain BalanceEntry to a model BalanceEntry
func ToModelBalanceEntry(d domain.BalanceEntry) models.BalanceEntry {
	m := models.BalanceEntry{
		EntryID:      d.EntryID,
		AccountID:    d.AccountID,
		EntryDate:    d.EntryDate,
		Amount:       d.Amount,
		BalanceAfter: d.BalanceAfter,
		Description:  d.Description,
		CreatedAt:    d.CreatedAt,
		CreatedBy:    d.CreatedBy,
	}
	if d.Reference != "" {
		ref := d.Reference
		m.Reference = &ref
	}
	return m
}

// ToDomainBalanceEntry converts a model BalanceEntry to a domain BalanceEntry
func ToDomainBalanceEntry(m models.BalanceEntry) domain.BalanceEntry {
	d := domain.BalanceEntry{
		EntryID:      m.EntryID,
		AccountID:    m.AccountID,
		EntryDate:    m.EntryDate,
		Amount:       m.Amount,
		BalanceAfter: m.BalanceAfter,
		Description:  m.Description,
		CreatedAt:    m.CreatedAt,
		CreatedBy:    m.CreatedBy,
	}
	if m.Reference != nil {
		d.Reference = *m.Reference
	}
	return d
}

// ToDomainBalanceEntrySlice converts a slice of model BalanceEntries to domain ones
func ToDomainBalanceEntrySlice(ms []models.BalanceEntry) []domain.BalanceEntry {
	ds := make([]domain.BalanceEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBalanceEntry(m)
	}
	return ds
}
