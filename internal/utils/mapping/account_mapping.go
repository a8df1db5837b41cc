package mapping

import (
	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	"github.com/atelierops/shop_ledger_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account, flattening the
// kind-specific payload into the nullable columns.
func ToModelAccount(d domain.Account) models.Account {
	m := models.Account{
		AccountID:   d.AccountID,
		BranchID:    d.BranchID,
		Code:        d.Code,
		Name:        d.Name,
		Kind:        models.AccountKind(d.Kind),
		Balance:     d.Balance,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.FixedAsset != nil {
		ov := d.FixedAsset.OriginalValue
		ad := d.FixedAsset.AccumulatedDepreciation
		m.OriginalValue = &ov
		m.AccumulatedDepreciation = &ad
	}
	if d.Liability != nil {
		creditor := d.Liability.Creditor
		rate := d.Liability.InterestRate
		m.Creditor = &creditor
		m.InterestRate = &rate
		m.DueDate = d.Liability.DueDate
	}
	return m
}

// ToDomainAccount converts a model Account to a domain Account, folding the
// nullable payload columns back into the tagged union.
func ToDomainAccount(m models.Account) domain.Account {
	d := domain.Account{
		AccountID:   m.AccountID,
		BranchID:    m.BranchID,
		Code:        m.Code,
		Name:        m.Name,
		Kind:        domain.AccountKind(m.Kind),
		Balance:     m.Balance,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.Kind == models.FixedAsset && m.OriginalValue != nil && m.AccumulatedDepreciation != nil {
		d.FixedAsset = &domain.FixedAssetDetail{
			OriginalValue:           *m.OriginalValue,
			AccumulatedDepreciation: *m.AccumulatedDepreciation,
		}
	}
	if (m.Kind == models.CurrentLiability || m.Kind == models.LongTermLiability) && m.Creditor != nil && m.InterestRate != nil {
		d.Liability = &domain.LiabilityDetail{
			Creditor:     *m.Creditor,
			InterestRate: *m.InterestRate,
			DueDate:      m.DueDate,
		}
	}
	return d
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
