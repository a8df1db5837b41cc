package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LiquidationResult reports a completed till liquidation: the two entries
// created and both accounts' balances after the transfer.
type LiquidationResult struct {
	Reference            string          `json:"reference"` // "LIQ-" + batch timestamp, shared by both legs
	Amount               decimal.Decimal `json:"amount"`
	SourceAccountID      string          `json:"sourceAccountID"`
	DestinationAccountID string          `json:"destinationAccountID"`
	SourceBalance        decimal.Decimal `json:"sourceBalance"`
	DestinationBalance   decimal.Decimal `json:"destinationBalance"`
	SourceEntryID        string          `json:"sourceEntryID"`
	DestinationEntryID   string          `json:"destinationEntryID"`
	LiquidatedAt         time.Time       `json:"liquidatedAt"`
}

// LiquidationRecord is one past liquidation as seen from the receiving leg
// (destination account entries only, to avoid double counting).
type LiquidationRecord struct {
	EntryID      string          `json:"entryID"`
	Reference    string          `json:"reference"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
	Notes        string          `json:"notes"`
	LiquidatedAt time.Time       `json:"liquidatedAt"`
	CreatedBy    string          `json:"createdBy"`
}
