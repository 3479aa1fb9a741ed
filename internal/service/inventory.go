package service

import (
	"context"
	"errors"

	"github.com/arayajs/cinema-booking/internal/model"
	"github.com/arayajs/cinema-booking/internal/repository"
)

// SeatStore is the inventory's view of catalog seats.
type SeatStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Seat, error)
	ListActiveByHall(ctx context.Context, hallID uint64) ([]model.Seat, error)
}

// ReservationStore manages the per-screening seat claims.
type ReservationStore interface {
	Reserve(ctx context.Context, screeningID, seatID, orderID uint64) (*repository.SeatReservation, error)
	ReservedSeatIDs(ctx context.Context, screeningID uint64) (map[uint64]struct{}, error)
	IsReserved(ctx context.Context, screeningID, seatID uint64) (bool, error)
}

// Inventory answers seat availability questions for screenings.  The actual
// at-most-one guarantee lives in the reservation store's unique constraint;
// this service only translates its answers.
type Inventory struct {
	screenings   ScreeningStore
	seats        SeatStore
	reservations ReservationStore
}

// NewInventory creates an inventory service.
func NewInventory(screenings ScreeningStore, seats SeatStore, reservations ReservationStore) *Inventory {
	return &Inventory{screenings: screenings, seats: seats, reservations: reservations}
}

// ListAvailableSeats returns the screening's active, unreserved seats.  The
// answer is a snapshot: a seat listed here can still be lost to a concurrent
// booking before the caller acts on it.
func (i *Inventory) ListAvailableSeats(ctx context.Context, screeningID uint64) ([]model.Seat, error) {
	screening, err := i.screenings.GetByID(ctx, screeningID)
	if err != nil {
		return nil, err
	}
	seats, err := i.seats.ListActiveByHall(ctx, screening.HallID)
	if err != nil {
		return nil, err
	}
	taken, err := i.reservations.ReservedSeatIDs(ctx, screeningID)
	if err != nil {
		return nil, err
	}

	free := make([]model.Seat, 0, len(seats))
	for _, s := range seats {
		if _, ok := taken[s.ID]; !ok {
			free = append(free, s)
		}
	}
	return free, nil
}

// IsAvailable reports whether the seat is active, belongs to the screening's
// hall, and is not currently reserved.
func (i *Inventory) IsAvailable(ctx context.Context, screeningID, seatID uint64) (bool, error) {
	screening, err := i.screenings.GetByID(ctx, screeningID)
	if err != nil {
		return false, err
	}
	seat, err := i.seats.GetByID(ctx, seatID)
	if err != nil {
		return false, err
	}
	if !seat.Active() || seat.HallID != screening.HallID {
		return false, nil
	}
	reserved, err := i.reservations.IsReserved(ctx, screeningID, seatID)
	if err != nil {
		return false, err
	}
	return !reserved, nil
}

// Reserve claims a seat for an order.  Losing the race maps to
// ErrSeatUnavailable.
func (i *Inventory) Reserve(ctx context.Context, screeningID, seatID, orderID uint64) error {
	_, err := i.reservations.Reserve(ctx, screeningID, seatID, orderID)
	if errors.Is(err, repository.ErrSeatTaken) {
		return ErrSeatUnavailable
	}
	return err
}
