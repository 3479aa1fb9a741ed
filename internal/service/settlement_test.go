package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arayajs/cinema-booking/internal/model"
)

func (f *fixture) bookOrder(t *testing.T, userID uint64, screeningID, seatID uint64) *model.Order {
	t.Helper()
	order, err := f.booking.CreateOrder(context.Background(), userID, []CartItem{
		{ScreeningID: screeningID, SeatID: seatID},
	}, "card")
	require.NoError(t, err)
	return order
}

func TestSettleRecordsOutcomeOnce(t *testing.T) {
	f := newFixture()
	movieID := f.addMovie(120)
	hallID := f.addHall()
	screeningID := f.addScreening(movieID, hallID, 2*time.Hour, 2*time.Hour, 1500)
	seatID := f.addSeat(hallID)
	order := f.bookOrder(t, 7, screeningID, seatID)

	settled, err := f.settlement.Settle(context.Background(), order.ID, "card", "txn-1")
	require.NoError(t, err)
	assert.Equal(t, model.OrderCompleted, settled.Status)
	require.NotNil(t, settled.TransactionID)
	assert.Equal(t, "txn-1", *settled.TransactionID)

	// The settled event went out with the order's tickets.
	require.Len(t, f.publisher.orders, 1)
	assert.Equal(t, order.ID, f.publisher.orders[0].ID)

	// A second settlement attempt loses to the first.
	_, err = f.settlement.Settle(context.Background(), order.ID, "card", "txn-2")
	assert.ErrorIs(t, err, ErrOrderNotPending)
	assert.Len(t, f.publisher.orders, 1)
}

func TestSettleSurvivesPublisherOutage(t *testing.T) {
	f := newFixture()
	f.publisher.err = context.DeadlineExceeded
	movieID := f.addMovie(120)
	hallID := f.addHall()
	screeningID := f.addScreening(movieID, hallID, 2*time.Hour, 2*time.Hour, 1500)
	seatID := f.addSeat(hallID)
	order := f.bookOrder(t, 7, screeningID, seatID)

	settled, err := f.settlement.Settle(context.Background(), order.ID, "card", "txn-1")
	require.NoError(t, err)
	assert.Equal(t, model.OrderCompleted, settled.Status)
}

func TestCancelReleasesSeats(t *testing.T) {
	f := newFixture()
	movieID := f.addMovie(120)
	hallID := f.addHall()
	screeningID := f.addScreening(movieID, hallID, 2*time.Hour, 2*time.Hour, 1500)
	seatID := f.addSeat(hallID)
	order := f.bookOrder(t, 7, screeningID, seatID)

	_, err := f.settlement.Settle(context.Background(), order.ID, "card", "txn-1")
	require.NoError(t, err)

	cancelled, err := f.settlement.Cancel(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderCancelled, cancelled.Status)

	// The seat reappears and can be booked again.
	free, err := f.inventory.ListAvailableSeats(context.Background(), screeningID)
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, seatID, free[0].ID)

	f.bookOrder(t, 8, screeningID, seatID)
}

func TestCancelRefusedAfterScreeningStarts(t *testing.T) {
	f := newFixture()
	movieID := f.addMovie(120)
	hallID := f.addHall()
	screeningID := f.addScreening(movieID, hallID, 2*time.Hour, 2*time.Hour, 1500)
	seatID := f.addSeat(hallID)
	order := f.bookOrder(t, 7, screeningID, seatID)

	// Advance the clock past the start.
	f.now = f.now.Add(3 * time.Hour)

	_, err := f.settlement.Cancel(context.Background(), order.ID)
	assert.ErrorIs(t, err, ErrScreeningStarted)

	got, err := f.booking.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderPending, got.Status)
}

func TestCancelIsTerminal(t *testing.T) {
	f := newFixture()
	movieID := f.addMovie(120)
	hallID := f.addHall()
	screeningID := f.addScreening(movieID, hallID, 2*time.Hour, 2*time.Hour, 1500)
	seatID := f.addSeat(hallID)
	order := f.bookOrder(t, 7, screeningID, seatID)

	_, err := f.settlement.Cancel(context.Background(), order.ID)
	require.NoError(t, err)

	_, err = f.settlement.Cancel(context.Background(), order.ID)
	assert.ErrorIs(t, err, ErrOrderNotCancellable)

	// A cancelled order can no longer settle.
	_, err = f.settlement.Settle(context.Background(), order.ID, "card", "txn-late")
	assert.ErrorIs(t, err, ErrOrderNotPending)
}
