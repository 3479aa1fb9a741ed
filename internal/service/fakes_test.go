package service

import (
	"context"
	"sync"
	"time"

	"github.com/arayajs/cinema-booking/internal/model"
	"github.com/arayajs/cinema-booking/internal/repository"
)

// memStore is an in-memory stand-in for the MySQL repositories.  It honors
// the same contracts the real stores do: unique seat claims per screening,
// unique ticket codes, conditional status transitions, and all-or-nothing
// order creation.
type memStore struct {
	mu           sync.Mutex
	screenings   map[uint64]model.Screening
	movies       map[uint64]model.Movie
	halls        map[uint64]model.Hall
	seats        map[uint64]model.Seat
	orders       map[uint64]model.Order
	reservations map[[2]uint64]uint64 // (screening, seat) -> order
	nextID       uint64
}

func newMemStore() *memStore {
	return &memStore{
		screenings:   make(map[uint64]model.Screening),
		movies:       make(map[uint64]model.Movie),
		halls:        make(map[uint64]model.Hall),
		seats:        make(map[uint64]model.Seat),
		orders:       make(map[uint64]model.Order),
		reservations: make(map[[2]uint64]uint64),
	}
}

func (m *memStore) id() uint64 {
	m.nextID++
	return m.nextID
}

// ScreeningStore

func (m *memStore) GetByID(_ context.Context, id uint64) (*model.Screening, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.screenings[id]
	if !ok {
		return nil, repository.ErrScreeningNotFound
	}
	return &s, nil
}

func (m *memStore) Create(_ context.Context, s *model.Screening) (*model.Screening, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	created := *s
	created.ID = m.id()
	created.Status = model.ScreeningScheduled
	m.screenings[created.ID] = created
	return &created, nil
}

func (m *memStore) FindOverlapping(_ context.Context, hallID uint64, startsAt, endsAt time.Time, excludeID uint64) ([]model.Screening, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Screening
	for _, s := range m.screenings {
		if s.HallID != hallID || s.Status != model.ScreeningScheduled || s.ID == excludeID {
			continue
		}
		if !(s.EndsAt.Before(startsAt) || s.EndsAt.Equal(startsAt) ||
			s.StartsAt.After(endsAt) || s.StartsAt.Equal(endsAt)) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) Cancel(_ context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.screenings[id]
	if !ok {
		return repository.ErrScreeningNotFound
	}
	s.Status = model.ScreeningCancelled
	m.screenings[id] = s
	return nil
}

// movieStore / hallStore wrap memStore so the GetByID signatures do not
// clash with the screening methods.

type movieStore struct{ m *memStore }

func (s movieStore) GetByID(_ context.Context, id uint64) (*model.Movie, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	mv, ok := s.m.movies[id]
	if !ok {
		return nil, repository.ErrMovieNotFound
	}
	return &mv, nil
}

type hallStore struct{ m *memStore }

func (s hallStore) GetByID(_ context.Context, id uint64) (*model.Hall, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	h, ok := s.m.halls[id]
	if !ok {
		return nil, repository.ErrHallNotFound
	}
	return &h, nil
}

type seatStore struct{ m *memStore }

func (s seatStore) GetByID(_ context.Context, id uint64) (*model.Seat, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	st, ok := s.m.seats[id]
	if !ok {
		return nil, repository.ErrSeatNotFound
	}
	return &st, nil
}

func (s seatStore) ListActiveByHall(_ context.Context, hallID uint64) ([]model.Seat, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []model.Seat
	for _, seat := range s.m.seats {
		if seat.HallID == hallID && seat.Status == model.SeatActive {
			out = append(out, seat)
		}
	}
	return out, nil
}

// ReservationStore

type reservationStore struct{ m *memStore }

func (s reservationStore) Reserve(_ context.Context, screeningID, seatID, orderID uint64) (*repository.SeatReservation, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	key := [2]uint64{screeningID, seatID}
	if _, taken := s.m.reservations[key]; taken {
		return nil, repository.ErrSeatTaken
	}
	s.m.reservations[key] = orderID
	return &repository.SeatReservation{ScreeningID: screeningID, SeatID: seatID, OrderID: orderID}, nil
}

func (s reservationStore) ReservedSeatIDs(_ context.Context, screeningID uint64) (map[uint64]struct{}, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := make(map[uint64]struct{})
	for key := range s.m.reservations {
		if key[0] == screeningID {
			out[key[1]] = struct{}{}
		}
	}
	return out, nil
}

func (s reservationStore) IsReserved(_ context.Context, screeningID, seatID uint64) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	_, taken := s.m.reservations[[2]uint64{screeningID, seatID}]
	return taken, nil
}

// OrderStore

type orderStore struct{ m *memStore }

func (s orderStore) CreateWithTickets(_ context.Context, order *model.Order, tickets []model.Ticket) (*model.Order, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	// Validate everything before mutating so a failure leaves no trace,
	// mirroring the transactional rollback of the real store.
	for _, t := range tickets {
		if _, taken := s.m.reservations[[2]uint64{t.ScreeningID, t.SeatID}]; taken {
			return nil, repository.ErrSeatTaken
		}
		if s.m.codeExistsLocked(t.Code) {
			return nil, repository.ErrDuplicateCode
		}
	}

	created := *order
	created.ID = s.m.id()
	created.Status = model.OrderPending
	created.Tickets = make([]model.Ticket, len(tickets))
	for i, t := range tickets {
		t.ID = s.m.id()
		t.OrderID = created.ID
		created.Tickets[i] = t
		s.m.reservations[[2]uint64{t.ScreeningID, t.SeatID}] = created.ID
	}
	s.m.orders[created.ID] = created
	return &created, nil
}

func (s orderStore) GetByID(_ context.Context, id uint64) (*model.Order, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	o, ok := s.m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	cp := o
	cp.Tickets = append([]model.Ticket(nil), o.Tickets...)
	return &cp, nil
}

func (s orderStore) ListByUser(_ context.Context, userID uint64) ([]model.Order, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []model.Order
	for _, o := range s.m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s orderStore) MarkCompleted(_ context.Context, id uint64, paymentMethod, transactionID string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	o, ok := s.m.orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	if o.Status != model.OrderPending {
		return repository.ErrOrderNotPending
	}
	o.Status = model.OrderCompleted
	o.PaymentMethod = paymentMethod
	o.TransactionID = &transactionID
	s.m.orders[id] = o
	return nil
}

func (s orderStore) CancelAndRelease(_ context.Context, id uint64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	o, ok := s.m.orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	if o.Status != model.OrderPending && o.Status != model.OrderCompleted {
		return repository.ErrOrderNotCancellable
	}
	o.Status = model.OrderCancelled
	s.m.orders[id] = o
	for key, owner := range s.m.reservations {
		if owner == id {
			delete(s.m.reservations, key)
		}
	}
	return nil
}

// TicketStore

type ticketStore struct{ m *memStore }

func (s ticketStore) GetByCode(_ context.Context, code string) (*repository.TicketDetail, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return s.getByCodeLocked(code)
}

func (s ticketStore) getByCodeLocked(code string) (*repository.TicketDetail, error) {
	for _, o := range s.m.orders {
		for _, t := range o.Tickets {
			if t.Code == code {
				scr := s.m.screenings[t.ScreeningID]
				return &repository.TicketDetail{
					Ticket:            t,
					OrderStatus:       o.Status,
					ScreeningStartsAt: scr.StartsAt,
					ScreeningEndsAt:   scr.EndsAt,
				}, nil
			}
		}
	}
	return nil, repository.ErrTicketNotFound
}

func (s ticketStore) MarkUsed(_ context.Context, code string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for id, o := range s.m.orders {
		for i, t := range o.Tickets {
			if t.Code == code {
				if t.Used {
					return repository.ErrTicketUsed
				}
				o.Tickets[i].Used = true
				s.m.orders[id] = o
				return nil
			}
		}
	}
	return repository.ErrTicketNotFound
}

func (s ticketStore) CodeExists(_ context.Context, code string) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return s.m.codeExistsLocked(code), nil
}

func (m *memStore) codeExistsLocked(code string) bool {
	for _, o := range m.orders {
		for _, t := range o.Tickets {
			if t.Code == code {
				return true
			}
		}
	}
	return false
}

// capturePublisher records published orders for assertions.
type capturePublisher struct {
	mu     sync.Mutex
	orders []*model.Order
	err    error
}

func (p *capturePublisher) PublishOrderSettled(_ context.Context, order *model.Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.orders = append(p.orders, order)
	return nil
}
