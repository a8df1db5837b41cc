package services

import (
	"github.com/atelierops/shop_ledger_app/internal/core/domain"
)

// paymentAccountCodes maps each payment method to the account code its money
// lands on. Card settlements arrive on the bank account, same as transfers.
// Methods missing from the map are deferred: the business event is recorded
// but no ledger posting happens until settlement is handled elsewhere.
var paymentAccountCodes = map[domain.PaymentMethod]string{
	domain.PaymentCash:     domain.CodeOperatingTill,
	domain.PaymentMobile:   domain.CodeMobileWallet,
	domain.PaymentTransfer: domain.CodeBank,
	domain.PaymentCard:     domain.CodeBank,
}

// RouteForPaymentMethod resolves the account code a payment method posts to.
// The boolean is false for deferred methods (credit, other) and for unknown
// values.
func RouteForPaymentMethod(method domain.PaymentMethod) (string, bool) {
	code, ok := paymentAccountCodes[method]
	return code, ok
}

// RoutablePaymentMethods lists the methods that produce ledger postings, in a
// stable order.
func RoutablePaymentMethods() []domain.PaymentMethod {
	methods := make([]domain.PaymentMethod, 0, len(paymentAccountCodes))
	for _, m := range domain.KnownPaymentMethods {
		if _, ok := paymentAccountCodes[m]; ok {
			methods = append(methods, m)
		}
	}
	return methods
}
