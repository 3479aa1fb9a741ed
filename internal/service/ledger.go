package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arayajs/cinema-booking/internal/model"
	"github.com/arayajs/cinema-booking/internal/repository"
)

// codeRetries bounds how many times IssueCode will regenerate after a
// collision before giving up.
const codeRetries = 5

// TicketStore is the ledger's view of ticket persistence.
type TicketStore interface {
	GetByCode(ctx context.Context, code string) (*repository.TicketDetail, error)
	MarkUsed(ctx context.Context, code string) error
	CodeExists(ctx context.Context, code string) (bool, error)
}

// Ledger issues ticket codes and handles door-side validation and
// redemption.
type Ledger struct {
	tickets TicketStore
	now     func() time.Time
}

// NewLedger creates a ledger service.  now may be nil, in which case
// time.Now is used.
func NewLedger(tickets TicketStore, now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{tickets: tickets, now: now}
}

// IssueCode returns a fresh 8-character uppercase hex code not currently
// held by any ticket.  Uniqueness against concurrent issuers is ultimately
// enforced by the tickets table's unique index; this pre-check just keeps
// collisions rare.
func (l *Ledger) IssueCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < codeRetries; attempt++ {
		code, err := randomCode()
		if err != nil {
			return "", err
		}
		exists, err := l.tickets.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not issue a unique ticket code after %d attempts", codeRetries)
}

// Validate reports whether the ticket code would be accepted at the door
// right now, without consuming it.
func (l *Ledger) Validate(ctx context.Context, code string) (bool, *repository.TicketDetail, error) {
	detail, err := l.tickets.GetByCode(ctx, code)
	if err != nil {
		return false, nil, err
	}
	return l.admissible(detail) == nil, detail, nil
}

// Redeem consumes a ticket.  The checks run in a fixed order so callers see
// the most specific failure: unknown code, already used, order not settled,
// screening over.  The final write is conditional, so two concurrent
// redemptions of the same code admit exactly one holder.
func (l *Ledger) Redeem(ctx context.Context, caps []model.Capability, code string) (*repository.TicketDetail, error) {
	if !model.Has(caps, model.CapRedeemTickets) {
		return nil, ErrPermissionDenied
	}
	detail, err := l.tickets.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := l.admissible(detail); err != nil {
		return nil, err
	}
	if err := l.tickets.MarkUsed(ctx, code); err != nil {
		if errors.Is(err, repository.ErrTicketUsed) {
			return nil, ErrTicketUsed
		}
		return nil, err
	}
	detail.Used = true
	return detail, nil
}

func (l *Ledger) admissible(d *repository.TicketDetail) error {
	if d.Used {
		return ErrTicketUsed
	}
	if d.OrderStatus != model.OrderCompleted {
		return ErrOrderNotSettled
	}
	if !d.ScreeningEndsAt.After(l.now().UTC()) {
		return ErrScreeningEnded
	}
	return nil
}

func randomCode() (string, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(buf[:])), nil
}
