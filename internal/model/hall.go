package model

import "time"

// Hall lifecycle states mirror the seat states: ACTIVE -> RETIRED, one way.
const (
	HallActive  = "ACTIVE"
	HallRetired = "RETIRED"
)

// Hall is a screening room.  Halls belong to the catalog; the booking core
// reads them only to verify that a screening's hall is still in service and
// to enumerate its seats.
type Hall struct {
	ID        uint64    `json:"id"`
	CinemaID  uint64    `json:"cinema_id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Active reports whether the hall is still in service.
func (h *Hall) Active() bool { return h.Status == HallActive }
