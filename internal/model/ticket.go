package model

import "time"

// Ticket binds one seat to one screening within one order; it is the unit of
// sale.  PriceCents snapshots the screening's price at booking time.  Code is
// a globally unique opaque string presented at the door.  Used starts false
// and flips to true exactly once on redemption.
type Ticket struct {
	ID          uint64    `json:"id"`
	OrderID     uint64    `json:"order_id"`
	ScreeningID uint64    `json:"screening_id"`
	SeatID      uint64    `json:"seat_id"`
	PriceCents  int64     `json:"price_cents"`
	Code        string    `json:"code"`
	Used        bool      `json:"used"`
	CreatedAt   time.Time `json:"created_at"`
}
