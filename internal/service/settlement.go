package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/arayajs/cinema-booking/internal/model"
	"github.com/arayajs/cinema-booking/internal/repository"
)

// SettlementPublisher emits order lifecycle events for downstream consumers.
type SettlementPublisher interface {
	PublishOrderSettled(ctx context.Context, order *model.Order) error
}

// Settlement coordinates the payment-driven order lifecycle: recording
// outcomes on PENDING orders and cancelling orders whose screenings have
// not started.
type Settlement struct {
	orders     OrderStore
	screenings ScreeningStore
	publisher  SettlementPublisher
	now        func() time.Time
}

// NewSettlement creates a settlement coordinator.  publisher may be nil to
// disable event emission; now may be nil, in which case time.Now is used.
func NewSettlement(orders OrderStore, screenings ScreeningStore, publisher SettlementPublisher, now func() time.Time) *Settlement {
	if now == nil {
		now = time.Now
	}
	return &Settlement{orders: orders, screenings: screenings, publisher: publisher, now: now}
}

// Settle records a successful payment on a PENDING order, storing the
// method actually charged and the provider's transaction id.  The status
// flip is conditional in the store, so two racing settlements record exactly
// one outcome; the loser sees ErrOrderNotPending.
func (s *Settlement) Settle(ctx context.Context, orderID uint64, paymentMethod, transactionID string) (*model.Order, error) {
	err := s.orders.MarkCompleted(ctx, orderID, paymentMethod, transactionID)
	if errors.Is(err, repository.ErrOrderNotPending) {
		return nil, ErrOrderNotPending
	}
	if err != nil {
		return nil, err
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		// Event delivery is best effort: the settlement already
		// committed and must not be unwound by a broker outage.
		if err := s.publisher.PublishOrderSettled(ctx, order); err != nil {
			log.Printf("settlement: publish order.settled for order %d failed: %v", order.ID, err)
		}
	}
	return order, nil
}

// Cancel voids an order and frees its seats.  A PENDING or COMPLETED order
// may be cancelled only while none of its screenings has started.  The
// status flip and the seat release happen in one transaction in the store.
func (s *Settlement) Cancel(ctx context.Context, orderID uint64) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Cancellable() {
		return nil, ErrOrderNotCancellable
	}

	now := s.now().UTC()
	for _, t := range order.Tickets {
		screening, err := s.screenings.GetByID(ctx, t.ScreeningID)
		if err != nil {
			return nil, err
		}
		if screening.Started(now) {
			return nil, fmt.Errorf("%w: screening %d started at %s",
				ErrScreeningStarted, screening.ID, screening.StartsAt.Format(time.RFC3339))
		}
	}

	err = s.orders.CancelAndRelease(ctx, orderID)
	if errors.Is(err, repository.ErrOrderNotCancellable) {
		return nil, ErrOrderNotCancellable
	}
	if err != nil {
		return nil, err
	}
	return s.orders.GetByID(ctx, orderID)
}
