package mapping

import (
	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	"github.com/atelierops/shop_ledger_app/internal/models"
)

func methodPtrToString(m *domain.PaymentMethod) *string {
	if m == nil {
		return nil
	}
	s := string(*m)
	return &s
}

func stringPtrToMethod(s *string) *domain.PaymentMethod {
	if s == nil {
		return nil
	}
	m := domain.PaymentMethod(*s)
	return &m
}

// ToModelAdjustment converts a domain Adjustment to a model Adjustment
func ToModelAdjustment(d domain.Adjustment) models.Adjustment {
	return models.Adjustment{
		AdjustmentID:      d.AdjustmentID,
		ExpenseID:         d.ExpenseID,
		Reason:            string(d.Reason),
		Description:       d.Description,
		PrevAmount:        d.Previous.Amount,
		PrevAmountPaid:    d.Previous.AmountPaid,
		PrevPaymentMethod: methodPtrToString(d.Previous.PaymentMethod),
		PrevAccountID:     d.Previous.AccountID,
		NewAmount:         d.New.Amount,
		NewAmountPaid:     d.New.AmountPaid,
		NewPaymentMethod:  methodPtrToString(d.New.PaymentMethod),
		NewAccountID:      d.New.AccountID,
		AdjustmentDelta:   d.AdjustmentDelta,
		EntryIDs:          d.EntryIDs,
		CreatedAt:         d.CreatedAt,
		CreatedBy:         d.CreatedBy,
	}
}

// ToDomainAdjustment converts a model Adjustment to a domain Adjustment
func ToDomainAdjustment(m models.Adjustment) domain.Adjustment {
	return domain.Adjustment{
		AdjustmentID: m.AdjustmentID,
		ExpenseID:    m.ExpenseID,
		Reason:       domain.AdjustmentReason(m.Reason),
		Description:  m.Description,
		Previous: domain.PaymentSnapshot{
			Amount:        m.PrevAmount,
			AmountPaid:    m.PrevAmountPaid,
			PaymentMethod: stringPtrToMethod(m.PrevPaymentMethod),
			AccountID:     m.PrevAccountID,
		},
		New: domain.PaymentSnapshot{
			Amount:        m.NewAmount,
			AmountPaid:    m.NewAmountPaid,
			PaymentMethod: stringPtrToMethod(m.NewPaymentMethod),
			AccountID:     m.NewAccountID,
		},
		AdjustmentDelta: m.AdjustmentDelta,
		EntryIDs:        m.EntryIDs,
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
	}
}

// ToDomainAdjustmentSlice converts a slice of model Adjustments to domain ones
func ToDomainAdjustmentSlice(ms []models.Adjustment) []domain.Adjustment {
	ds := make([]domain.Adjustment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAdjustment(m)
	}
	return ds
}
