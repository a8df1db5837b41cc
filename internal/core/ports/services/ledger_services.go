package services

import (
	"context"

	"github.com/atelierops/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerPosterSvc is the single chokepoint for balance mutation. No other
// service may write an account balance or create a balance entry.
type LedgerPosterSvc interface {
	// Post applies one signed movement to an account and records the immutable
	// entry documenting it, atomically.
	Post(ctx context.Context, intent domain.PostingIntent, actor string) (*domain.BalanceEntry, error)

	// Transfer applies the two legs of a movement between accounts as one
	// all-or-nothing unit of work and returns the entries in (from, to) order.
	Transfer(ctx context.Context, from, to domain.PostingIntent, actor string) ([]domain.BalanceEntry, error)
}

// LedgerReaderSvc defines read operations over the posting log.
type LedgerReaderSvc interface {
	// GetEntry retrieves a single balance entry.
	GetEntry(ctx context.Context, entryID string) (*domain.BalanceEntry, error)

	// VerifyAccountBalance recomputes an account's balance from its entries and
	// returns (cached, computed). The two differ only when something bypassed
	// the poster; operators audit with this.
	VerifyAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error)
}

// LedgerSvcFacade combines the ledger poster with its read side.
type LedgerSvcFacade interface {
	LedgerPosterSvc
	LedgerReaderSvc
}
