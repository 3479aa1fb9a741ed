package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arayajs/cinema-booking/internal/model"
	"github.com/arayajs/cinema-booking/internal/repository"
)

// createRetries bounds how many times CreateOrder retries the whole insert
// after a ticket code collision at commit time.
const createRetries = 3

// OrderStore is the orchestrator's view of order persistence.  The store is
// responsible for atomicity: CreateWithTickets persists the order, every
// ticket, and every seat claim together, or nothing at all.
type OrderStore interface {
	CreateWithTickets(ctx context.Context, order *model.Order, tickets []model.Ticket) (*model.Order, error)
	GetByID(ctx context.Context, id uint64) (*model.Order, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Order, error)
	MarkCompleted(ctx context.Context, id uint64, paymentMethod, transactionID string) error
	CancelAndRelease(ctx context.Context, id uint64) error
}

// CartItem is one requested seat in a booking.
type CartItem struct {
	ScreeningID uint64 `json:"screening_id"`
	SeatID      uint64 `json:"seat_id"`
}

// Orchestrator turns a cart of seat requests into a persisted order.  All
// validation happens before the write; the write itself is all-or-nothing,
// so a partially booked cart can never be observed.
type Orchestrator struct {
	orders     OrderStore
	screenings ScreeningStore
	seats      SeatStore
	ledger     *Ledger
	now        func() time.Time
}

// NewOrchestrator creates a booking orchestrator.  now may be nil, in which
// case time.Now is used.
func NewOrchestrator(orders OrderStore, screenings ScreeningStore, seats SeatStore, ledger *Ledger, now func() time.Time) *Orchestrator {
	if now == nil {
		now = time.Now
	}
	return &Orchestrator{orders: orders, screenings: screenings, seats: seats, ledger: ledger, now: now}
}

// CreateOrder validates every item in the cart, snapshots prices, issues
// ticket codes, and persists the order atomically.  Any failure leaves no
// trace: no order row, no tickets, no seat claims.
func (o *Orchestrator) CreateOrder(ctx context.Context, userID uint64, items []CartItem, paymentMethod string) (*model.Order, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	now := o.now().UTC()
	var total int64
	tickets := make([]model.Ticket, 0, len(items))
	for _, item := range items {
		screening, err := o.screenings.GetByID(ctx, item.ScreeningID)
		if err != nil {
			return nil, err
		}
		if !screening.Active() {
			return nil, fmt.Errorf("%w: screening %d", ErrScreeningNotBookable, screening.ID)
		}
		if screening.Started(now) {
			return nil, fmt.Errorf("%w: screening %d", ErrScreeningStarted, screening.ID)
		}
		seat, err := o.seats.GetByID(ctx, item.SeatID)
		if err != nil {
			return nil, err
		}
		if !seat.Active() {
			return nil, repository.ErrSeatNotFound
		}
		if seat.HallID != screening.HallID {
			return nil, fmt.Errorf("%w: seat %d is in hall %d", ErrSeatWrongHall, seat.ID, seat.HallID)
		}

		total += screening.TicketPriceCents
		tickets = append(tickets, model.Ticket{
			ScreeningID: screening.ID,
			SeatID:      seat.ID,
			PriceCents:  screening.TicketPriceCents,
		})
	}

	order := &model.Order{
		UserID:           userID,
		Status:           model.OrderPending,
		TotalAmountCents: total,
		PaymentMethod:    paymentMethod,
	}

	var created *model.Order
	for attempt := 0; attempt < createRetries; attempt++ {
		for idx := range tickets {
			code, err := o.ledger.IssueCode(ctx)
			if err != nil {
				return nil, err
			}
			tickets[idx].Code = code
		}
		var err error
		created, err = o.orders.CreateWithTickets(ctx, order, tickets)
		if errors.Is(err, repository.ErrDuplicateCode) {
			continue
		}
		if errors.Is(err, repository.ErrSeatTaken) {
			return nil, ErrSeatUnavailable
		}
		if err != nil {
			return nil, err
		}
		return created, nil
	}
	return nil, fmt.Errorf("could not persist order after %d code collisions", createRetries)
}

// GetOrder returns an order with its tickets.
func (o *Orchestrator) GetOrder(ctx context.Context, id uint64) (*model.Order, error) {
	return o.orders.GetByID(ctx, id)
}

// ListOrdersByUser returns the user's order history, newest first.
func (o *Orchestrator) ListOrdersByUser(ctx context.Context, userID uint64) ([]model.Order, error) {
	return o.orders.ListByUser(ctx, userID)
}
