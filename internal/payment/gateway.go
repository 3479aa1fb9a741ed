// Package payment abstracts the card charging provider.  The booking core
// never talks to a provider directly; it hands a charge request to a
// Gateway and records the outcome.
package payment

import "context"

// Request describes one charge attempt.
type Request struct {
	AmountCents int64  `json:"amount_cents"`
	Method      string `json:"method"`
	CardNumber  string `json:"card_number"`
	ExpiryDate  string `json:"expiry_date"`
	CVV         string `json:"cvv"`
}

// Response is the provider's verdict.  TransactionID is set only on
// success.
type Response struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id,omitempty"`
	Message       string `json:"message"`
}

// Gateway charges cards.  Implementations must be safe for concurrent use.
type Gateway interface {
	Charge(ctx context.Context, req Request) (*Response, error)
}
