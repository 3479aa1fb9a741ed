// Package queue defines the message payloads exchanged over the broker and
// the background consumer that processes them.
package queue

// OrderSettledEvent is published when a payment outcome is recorded on an
// order.  It carries enough data for downstream consumers to log or notify
// without querying the primary database.
type OrderSettledEvent struct {
	OrderID          uint64   `json:"order_id"`
	UserID           uint64   `json:"user_id"`
	TotalAmountCents int64    `json:"total_amount_cents"`
	PaymentMethod    string   `json:"payment_method"`
	TransactionID    string   `json:"transaction_id"`
	TicketCodes      []string `json:"ticket_codes"`
	SettledAt        string   `json:"settled_at"`
}
