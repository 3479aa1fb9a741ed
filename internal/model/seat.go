package model

import "time"

// Seat lifecycle states.  ACTIVE seats are bookable; RETIRED seats have been
// soft-removed by the catalog and must be excluded from inventory queries.
// The only legal transition is ACTIVE -> RETIRED.
const (
	SeatActive  = "ACTIVE"
	SeatRetired = "RETIRED"
)

// Seat describes a physical seat within a hall.  Seats are owned by the
// catalog; this service only reads them and excludes retired ones.
type Seat struct {
	ID         uint64    `json:"id"`
	HallID     uint64    `json:"hall_id"`
	RowLabel   string    `json:"row_label"`
	SeatNumber uint32    `json:"seat_number"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Active reports whether the seat can still be booked.
func (s *Seat) Active() bool { return s.Status == SeatActive }
