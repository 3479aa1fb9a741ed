package model

import "time"

// Order statuses.  An order is created PENDING and transitions exactly once
// to COMPLETED (payment recorded) or CANCELLED.  A COMPLETED order may still
// be cancelled (refund path) as long as none of its screenings has started.
// CANCELLED is terminal.  Orders are never deleted.
const (
	OrderPending   = "PENDING"
	OrderCompleted = "COMPLETED"
	OrderCancelled = "CANCELLED"
)

// Order groups one or more tickets purchased by a single user in one
// transaction.  TotalAmountCents is the sum of the tickets' snapshot prices
// at creation time and never changes afterwards.  TransactionID is set only
// when the order is settled.
type Order struct {
	ID               uint64    `json:"id"`
	UserID           uint64    `json:"user_id"`
	Status           string    `json:"status"`
	TotalAmountCents int64     `json:"total_amount_cents"`
	PaymentMethod    string    `json:"payment_method"`
	TransactionID    *string   `json:"transaction_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	Tickets          []Ticket  `json:"tickets,omitempty"`
}

// Settleable reports whether a payment outcome may still be recorded.
func (o *Order) Settleable() bool { return o.Status == OrderPending }

// Cancellable reports whether the order's status permits cancellation.
// The screening-start check is enforced separately by the settlement
// coordinator because it needs screening times.
func (o *Order) Cancellable() bool {
	return o.Status == OrderPending || o.Status == OrderCompleted
}
