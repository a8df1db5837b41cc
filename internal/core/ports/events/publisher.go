package events

// Topics carrying ledger lifecycle events.
const (
	TopicTransactionPosted    = "ledger.transaction.posted"
	TopicPostingFailed        = "ledger.posting.failed"
	TopicLiquidationCompleted = "ledger.liquidation.completed"
	TopicExpenseAdjusted      = "ledger.expense.adjusted"
)

// EventPublisher pushes ledger events to downstream consumers. Publishing is
// best-effort: services log a failed publish and carry on, the ledger state is
// already durable by the time an event goes out.
type EventPublisher interface {
	Publish(topic string, event any) error
}

// NoopPublisher drops every event. Used when no broker is configured and in
// tests.
type NoopPublisher struct{}

// Publish discards the event and reports success.
func (NoopPublisher) Publish(topic string, event any) error {
	return nil
}
