package model

import "time"

// Screening lifecycle states.  A screening is created SCHEDULED and may be
// moved to CANCELLED exactly once; there is no transition back.  Screenings
// are never deleted once tickets exist against them.
const (
	ScreeningScheduled = "SCHEDULED"
	ScreeningCancelled = "CANCELLED"
)

// Screening represents a scheduled showing of a movie in a hall for the
// half-open time window [StartsAt, EndsAt).  MovieID and HallID are opaque
// references into catalog data owned outside this service.  The ticket price
// is the price charged at booking time; tickets snapshot it, so later price
// changes never affect issued tickets.
type Screening struct {
	ID               uint64    `json:"id"`
	MovieID          uint64    `json:"movie_id"`
	HallID           uint64    `json:"hall_id"`
	StartsAt         time.Time `json:"starts_at"`
	EndsAt           time.Time `json:"ends_at"`
	TicketPriceCents int64     `json:"ticket_price_cents"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Active reports whether the screening is still scheduled.
func (s *Screening) Active() bool { return s.Status == ScreeningScheduled }

// Started reports whether the screening has begun at the given instant.
// The window is half-open, so the exact start instant counts as started.
func (s *Screening) Started(now time.Time) bool { return !s.StartsAt.After(now) }

// Ended reports whether the screening has finished at the given instant.
func (s *Screening) Ended(now time.Time) bool { return !s.EndsAt.After(now) }
