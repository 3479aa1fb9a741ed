package service

import (
	"time"

	"github.com/arayajs/cinema-booking/internal/model"
)

// fixture wires every service against one shared memStore with a
// controllable clock.
type fixture struct {
	store      *memStore
	now        time.Time
	publisher  *capturePublisher
	calendar   *Calendar
	inventory  *Inventory
	ledger     *Ledger
	booking    *Orchestrator
	settlement *Settlement
}

func newFixture() *fixture {
	f := &fixture{
		store:     newMemStore(),
		now:       time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
		publisher: &capturePublisher{},
	}
	clock := func() time.Time { return f.now }

	orders := orderStore{f.store}
	tickets := ticketStore{f.store}
	seats := seatStore{f.store}
	reservations := reservationStore{f.store}

	f.calendar = NewCalendar(f.store, movieStore{f.store}, hallStore{f.store}, clock)
	f.inventory = NewInventory(f.store, seats, reservations)
	f.ledger = NewLedger(tickets, clock)
	f.booking = NewOrchestrator(orders, f.store, seats, f.ledger, clock)
	f.settlement = NewSettlement(orders, f.store, f.publisher, clock)
	return f
}

func (f *fixture) addMovie(durationMin int) uint64 {
	id := f.store.id()
	f.store.movies[id] = model.Movie{ID: id, Title: "movie", DurationMin: durationMin, Status: "ACTIVE"}
	return id
}

func (f *fixture) addHall() uint64 {
	id := f.store.id()
	f.store.halls[id] = model.Hall{ID: id, Name: "hall", Status: model.HallActive}
	return id
}

func (f *fixture) addSeat(hallID uint64) uint64 {
	id := f.store.id()
	f.store.seats[id] = model.Seat{ID: id, HallID: hallID, RowLabel: "A", SeatNumber: uint32(id), Status: model.SeatActive}
	return id
}

// addScreening places a screening directly in the store, bypassing calendar
// validation, with the window expressed as offsets from the fixture clock.
func (f *fixture) addScreening(movieID, hallID uint64, startIn, length time.Duration, priceCents int64) uint64 {
	id := f.store.id()
	f.store.screenings[id] = model.Screening{
		ID:               id,
		MovieID:          movieID,
		HallID:           hallID,
		StartsAt:         f.now.Add(startIn),
		EndsAt:           f.now.Add(startIn + length),
		TicketPriceCents: priceCents,
		Status:           model.ScreeningScheduled,
	}
	return id
}

var adminCaps = []model.Capability{model.CapManageScreenings, model.CapRedeemTickets}
