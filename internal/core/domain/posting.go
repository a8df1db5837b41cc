package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostingIntent describes one balance movement for the ledger poster to apply.
// Intents are computed by services and executed by the posting repository as a
// single atomic batch; RequireFunds is validated under the account's row lock.
type PostingIntent struct {
	AccountID    string
	Delta        decimal.Decimal // Signed; positive credit, negative debit
	EntryDate    time.Time
	Description  string
	Reference    string
	RequireFunds bool // Fail the whole batch if this debit would leave the balance negative
}
