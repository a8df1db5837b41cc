package domain_test

import (
	"testing"

	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFixedAssetDetail_NetValue(t *testing.T) {
	tests := []struct {
		name   string
		detail domain.FixedAssetDetail
		want   string
	}{
		{
			name: "no depreciation",
			detail: domain.FixedAssetDetail{
				OriginalValue:           decimal.NewFromInt(500000),
				AccumulatedDepreciation: decimal.Zero,
			},
			want: "500000",
		},
		{
			name: "partially depreciated",
			detail: domain.FixedAssetDetail{
				OriginalValue:           decimal.NewFromInt(500000),
				AccumulatedDepreciation: decimal.NewFromInt(125000),
			},
			want: "375000",
		},
		{
			name: "fully depreciated",
			detail: domain.FixedAssetDetail{
				OriginalValue:           decimal.NewFromInt(80000),
				AccumulatedDepreciation: decimal.NewFromInt(80000),
			},
			want: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.detail.NetValue().String())
		})
	}
}

func TestAccount_IsLiquid(t *testing.T) {
	tests := []struct {
		name string
		kind domain.AccountKind
		want bool
	}{
		{name: "current asset is liquid", kind: domain.CurrentAsset, want: true},
		{name: "fixed asset is not", kind: domain.FixedAsset, want: false},
		{name: "current liability is not", kind: domain.CurrentLiability, want: false},
		{name: "long term liability is not", kind: domain.LongTermLiability, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := domain.Account{Kind: tt.kind}
			assert.Equal(t, tt.want, a.IsLiquid())
		})
	}
}

func TestAccount_IsLiability(t *testing.T) {
	assert.True(t, domain.Account{Kind: domain.CurrentLiability}.IsLiability())
	assert.True(t, domain.Account{Kind: domain.LongTermLiability}.IsLiability())
	assert.False(t, domain.Account{Kind: domain.CurrentAsset}.IsLiability())
	assert.False(t, domain.Account{Kind: domain.FixedAsset}.IsLiability())
}

func TestPaymentMethod_Valid(t *testing.T) {
	for _, m := range domain.KnownPaymentMethods {
		assert.True(t, m.Valid(), "expected %q to be valid", m)
	}
	assert.False(t, domain.PaymentMethod("cheque").Valid())
	assert.False(t, domain.PaymentMethod("").Valid())
}

func TestTransaction_Posted(t *testing.T) {
	accountID := "acc-123"

	tests := []struct {
		name string
		txn  domain.Transaction
		want bool
	}{
		{
			name: "posted transaction",
			txn:  domain.Transaction{PostedAccountID: &accountID},
			want: true,
		},
		{
			name: "deferred or failed transaction",
			txn:  domain.Transaction{PostedAccountID: nil},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.txn.Posted())
		})
	}
}

func TestExpense_Outstanding(t *testing.T) {
	e := domain.Expense{
		Amount:     decimal.NewFromInt(20000),
		AmountPaid: decimal.NewFromInt(12500),
	}
	assert.Equal(t, "7500", e.Outstanding().String())
	assert.True(t, e.HasPayments())

	unpaid := domain.Expense{Amount: decimal.NewFromInt(20000)}
	assert.Equal(t, "20000", unpaid.Outstanding().String())
	assert.False(t, unpaid.HasPayments())
}
