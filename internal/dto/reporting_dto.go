package dto

import (
	"time"

	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReconciliationItemResponse represents one transaction awaiting manual
// reconciliation: recorded, routable, but never posted to the ledger.
type ReconciliationItemResponse struct {
	Transaction         TransactionResponse `json:"transaction"`
	ExpectedAccountCode string              `json:"expectedAccountCode"`
	RecordedAt          time.Time           `json:"recordedAt"`
}

// ReconciliationReportResponse represents the reconciliation report response
type ReconciliationReportResponse struct {
	Items []ReconciliationItemResponse `json:"items"`
	Count int                          `json:"count"`
}

// ToReconciliationReportResponse converts domain reconciliation items to a DTO response
func ToReconciliationReportResponse(items []domain.ReconciliationItem) ReconciliationReportResponse {
	response := ReconciliationReportResponse{
		Items: make([]ReconciliationItemResponse, len(items)),
		Count: len(items),
	}
	for i, item := range items {
		response.Items[i] = ReconciliationItemResponse{
			Transaction:         ToTransactionResponse(&item.Transaction),
			ExpectedAccountCode: item.ExpectedAccountCode,
			RecordedAt:          item.RecordedAt,
		}
	}
	return response
}

// AccountValueResponse represents an account with its value in a patrimony report
type AccountValueResponse struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Value     decimal.Decimal `json:"value"`
}

// PatrimonyResponse represents the patrimony report response
type PatrimonyResponse struct {
	LiquidAccounts []AccountValueResponse `json:"liquidAccounts"`
	FixedAssets    []AccountValueResponse `json:"fixedAssets"`
	Liabilities    []AccountValueResponse `json:"liabilities"`
	Summary        struct {
		TotalLiquid      decimal.Decimal `json:"totalLiquid"`
		TotalFixedAssets decimal.Decimal `json:"totalFixedAssets"`
		TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
		NetPosition      decimal.Decimal `json:"netPosition"`
	} `json:"summary"`
}

func toAccountValueResponses(values []domain.AccountValue) []AccountValueResponse {
	res := make([]AccountValueResponse, len(values))
	for i, v := range values {
		res[i] = AccountValueResponse{
			AccountID: v.AccountID,
			Code:      v.Code,
			Name:      v.Name,
			Value:     v.Value,
		}
	}
	return res
}

// ToPatrimonyResponse converts a domain patrimony report to a DTO response
func ToPatrimonyResponse(report *domain.PatrimonyReport) PatrimonyResponse {
	response := PatrimonyResponse{
		LiquidAccounts: toAccountValueResponses(report.LiquidAccounts),
		FixedAssets:    toAccountValueResponses(report.FixedAssets),
		Liabilities:    toAccountValueResponses(report.Liabilities),
	}
	response.Summary.TotalLiquid = report.TotalLiquid
	response.Summary.TotalFixedAssets = report.TotalFixedAssets
	response.Summary.TotalLiabilities = report.TotalLiabilities
	response.Summary.NetPosition = report.NetPosition
	return response
}
