package accounting

import (
	"fmt"
	"time"

	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedDelta maps a business transaction type to the signed ledger movement.
// Income flows into the target account (+), an expense payment flows out (-).
// Transfers never go through here: they are an explicit two-account operation.
func SignedDelta(txnType domain.TransactionType, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("transaction amount must be positive, got %s", amount.String())
	}

	switch txnType {
	case domain.TransactionIncome:
		return amount, nil
	case domain.TransactionExpense:
		return amount.Neg(), nil
	case domain.TransactionTransfer:
		return decimal.Zero, fmt.Errorf("transfer transactions must use the two-account transfer operation")
	default:
		return decimal.Zero, fmt.Errorf("unknown transaction type '%s'", txnType)
	}
}

// IsPaid recomputes an expense's paid flag from its amounts.
func IsPaid(amount, amountPaid decimal.Decimal) bool {
	return amountPaid.GreaterThanOrEqual(amount) && amount.IsPositive()
}

// LiquidationReference builds the shared reference for both legs of a till
// liquidation, e.g. "LIQ-20240301120000". The liquidation history query
// filters on this prefix.
func LiquidationReference(at time.Time) string {
	return domain.LiquidationRefPrefix + at.Format("20060102150405")
}

// AdjustmentReference builds the reference stamped on an adjustment's
// compensating entries, e.g. "ADJ-<expenseID>".
func AdjustmentReference(expenseID string) string {
	return domain.AdjustmentRefPrefix + expenseID
}

// ReversalReference builds the reference stamped on a full reversal's refund
// entry, e.g. "REF-<expenseID>".
func ReversalReference(expenseID string) string {
	return domain.ReversalRefPrefix + expenseID
}
