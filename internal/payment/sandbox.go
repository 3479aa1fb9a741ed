package payment

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Sandbox is an in-process gateway for development and tests.  It approves
// any syntactically valid card and mints a fake transaction id.
type Sandbox struct{}

// NewSandbox creates a sandbox gateway.
func NewSandbox() *Sandbox { return &Sandbox{} }

// Charge validates the card fields and approves the charge.
func (s *Sandbox) Charge(_ context.Context, req Request) (*Response, error) {
	if req.AmountCents <= 0 {
		return &Response{Success: false, Message: "amount must be positive"}, nil
	}
	number := strings.ReplaceAll(req.CardNumber, " ", "")
	if len(number) < 13 || len(number) > 19 || !digitsOnly(number) {
		return &Response{Success: false, Message: "invalid card number"}, nil
	}
	if len(req.CVV) < 3 || len(req.CVV) > 4 || !digitsOnly(req.CVV) {
		return &Response{Success: false, Message: "invalid cvv"}, nil
	}
	if !validExpiry(req.ExpiryDate) {
		return &Response{Success: false, Message: "invalid expiry date"}, nil
	}
	txn := strings.ReplaceAll(uuid.NewString(), "-", "")
	return &Response{Success: true, TransactionID: txn, Message: "approved"}, nil
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// validExpiry accepts MM/YY with a plausible month.
func validExpiry(s string) bool {
	if len(s) != 5 || s[2] != '/' {
		return false
	}
	mm, yy := s[:2], s[3:]
	if !digitsOnly(mm) || !digitsOnly(yy) {
		return false
	}
	month := int(mm[0]-'0')*10 + int(mm[1]-'0')
	return month >= 1 && month <= 12
}
