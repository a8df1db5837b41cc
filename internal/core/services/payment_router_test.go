package services_test

import (
	"testing"

	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	"github.com/atelierops/shop_ledger_app/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func TestRouteForPaymentMethod(t *testing.T) {
	tests := []struct {
		name     string
		method   domain.PaymentMethod
		wantCode string
		wantOK   bool
	}{
		{
			name:     "cash posts to the operating till",
			method:   domain.PaymentCash,
			wantCode: domain.CodeOperatingTill,
			wantOK:   true,
		},
		{
			name:     "mobile posts to the mobile wallet",
			method:   domain.PaymentMobile,
			wantCode: domain.CodeMobileWallet,
			wantOK:   true,
		},
		{
			name:     "transfer posts to the bank",
			method:   domain.PaymentTransfer,
			wantCode: domain.CodeBank,
			wantOK:   true,
		},
		{
			name:     "card settles on the bank",
			method:   domain.PaymentCard,
			wantCode: domain.CodeBank,
			wantOK:   true,
		},
		{
			name:   "credit is deferred",
			method: domain.PaymentCredit,
			wantOK: false,
		},
		{
			name:   "other is deferred",
			method: domain.PaymentOther,
			wantOK: false,
		},
		{
			name:   "unknown method does not route",
			method: domain.PaymentMethod("barter"),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := services.RouteForPaymentMethod(tt.method)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantCode, code)
			} else {
				assert.Empty(t, code)
			}
		})
	}
}

func TestRoutablePaymentMethods(t *testing.T) {
	methods := services.RoutablePaymentMethods()

	// Stable order: the known-method declaration order, deferred methods
	// filtered out.
	assert.Equal(t, []domain.PaymentMethod{
		domain.PaymentCash,
		domain.PaymentCard,
		domain.PaymentTransfer,
		domain.PaymentMobile,
	}, methods)
	assert.NotContains(t, methods, domain.PaymentCredit)
	assert.NotContains(t, methods, domain.PaymentOther)
}
