package services

import (
	"context"

	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	"github.com/atelierops/shop_ledger_app/internal/dto"
)

// LiquidationSvc moves funds from the operating till into the consolidated
// till at close of day. A liquidation is a pure ledger transfer: it produces
// two balance entries sharing a LIQ- reference and no business transaction.
type LiquidationSvc interface {
	// Liquidate transfers the requested amount from the operating till to the
	// consolidated till. Fails with ErrInsufficientFunds when the till cannot
	// cover the amount.
	Liquidate(ctx context.Context, req dto.CreateLiquidationRequest, actor string) (*domain.LiquidationResult, error)

	// History lists past liquidations of the consolidated till, newest first,
	// optionally bounded by a date range.
	History(ctx context.Context, req dto.LiquidationHistoryRequest) ([]domain.LiquidationRecord, error)
}

// LiquidationSvcFacade combines all liquidation service interfaces
type LiquidationSvcFacade interface {
	LiquidationSvc
}
