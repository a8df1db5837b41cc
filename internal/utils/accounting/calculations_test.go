package accounting_test

import (
	"testing"
	"time"

	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	"github.com/atelierops/shop_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSignedDelta(t *testing.T) {
	tests := []struct {
		name    string
		txnType domain.TransactionType
		amount  decimal.Decimal
		want    string
		wantErr bool
	}{
		{
			name:    "income is positive",
			txnType: domain.TransactionIncome,
			amount:  decimal.NewFromInt(50000),
			want:    "50000",
		},
		{
			name:    "expense is negative",
			txnType: domain.TransactionExpense,
			amount:  decimal.NewFromInt(20000),
			want:    "-20000",
		},
		{
			name:    "transfer is rejected",
			txnType: domain.TransactionTransfer,
			amount:  decimal.NewFromInt(100),
			wantErr: true,
		},
		{
			name:    "zero amount is rejected",
			txnType: domain.TransactionIncome,
			amount:  decimal.Zero,
			wantErr: true,
		},
		{
			name:    "negative amount is rejected",
			txnType: domain.TransactionExpense,
			amount:  decimal.NewFromInt(-5),
			wantErr: true,
		},
		{
			name:    "unknown type is rejected",
			txnType: domain.TransactionType("refund"),
			amount:  decimal.NewFromInt(100),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.SignedDelta(tt.txnType, tt.amount)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestIsPaid(t *testing.T) {
	assert.True(t, accounting.IsPaid(decimal.NewFromInt(100), decimal.NewFromInt(100)))
	assert.True(t, accounting.IsPaid(decimal.NewFromInt(100), decimal.NewFromInt(150)))
	assert.False(t, accounting.IsPaid(decimal.NewFromInt(100), decimal.NewFromInt(99)))
	assert.False(t, accounting.IsPaid(decimal.Zero, decimal.Zero))
}

func TestReferences(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "LIQ-20240301120000", accounting.LiquidationReference(at))
	assert.Equal(t, "ADJ-exp-42", accounting.AdjustmentReference("exp-42"))
	assert.Equal(t, "REF-exp-42", accounting.ReversalReference("exp-42"))
}
