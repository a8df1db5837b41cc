package utils

import (
	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount for human-facing output (CLI, reports) at the
// standard two-decimal money precision.
// Example: 12.3456 returns "12.35", 12.3 returns "12.30".
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatWithPrecision formats an amount rounded to the given precision.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}
