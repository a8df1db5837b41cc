package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationItem is a transaction that should have produced a ledger
// posting but did not: its payment method routes to an account, yet
// PostedAccountID is nil. These are the alert rows operators work through.
type ReconciliationItem struct {
	Transaction         Transaction `json:"transaction"`
	ExpectedAccountCode string      `json:"expectedAccountCode"` // Where the router says it should have posted
	RecordedAt          time.Time   `json:"recordedAt"`
}

// AccountValue represents an account with its current value for reports.
type AccountValue struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Value     decimal.Decimal `json:"value"`
}

// PatrimonyReport summarizes the business's financial position: liquid funds,
// net fixed assets (original value minus depreciation) and liabilities.
type PatrimonyReport struct {
	LiquidAccounts   []AccountValue  `json:"liquidAccounts"`
	FixedAssets      []AccountValue  `json:"fixedAssets"` // Net values
	Liabilities      []AccountValue  `json:"liabilities"`
	TotalLiquid      decimal.Decimal `json:"totalLiquid"`
	TotalFixedAssets decimal.Decimal `json:"totalFixedAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	NetPosition      decimal.Decimal `json:"netPosition"` // Liquid + fixed - liabilities
}
