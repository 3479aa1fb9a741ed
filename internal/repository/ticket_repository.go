package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/arayajs/cinema-booking/internal/model"
)

// TicketDetail is a ticket joined with the order and screening facts the
// redemption path needs in a single read.
type TicketDetail struct {
	model.Ticket
	OrderStatus       string
	ScreeningStartsAt time.Time
	ScreeningEndsAt   time.Time
}

// TicketRepository provides lookups and redemption writes on tickets.
type TicketRepository struct {
	DB *sql.DB
}

// NewTicketRepository creates a new repository instance.
func NewTicketRepository(db *sql.DB) *TicketRepository {
	return &TicketRepository{DB: db}
}

// GetByCode fetches a ticket by its code together with the owning order's
// status and the screening window.
func (r *TicketRepository) GetByCode(ctx context.Context, code string) (*TicketDetail, error) {
	var d TicketDetail
	err := r.DB.QueryRowContext(ctx,
		`SELECT t.id, t.order_id, t.screening_id, t.seat_id, t.price_cents, t.code, t.used, t.created_at,
		        o.status, s.starts_at, s.ends_at
		 FROM tickets t
		 JOIN orders o ON o.id = t.order_id
		 JOIN screenings s ON s.id = t.screening_id
		 WHERE t.code = ?`, code).
		Scan(&d.ID, &d.OrderID, &d.ScreeningID, &d.SeatID, &d.PriceCents, &d.Code, &d.Used, &d.CreatedAt,
			&d.OrderStatus, &d.ScreeningStartsAt, &d.ScreeningEndsAt)
	if err == sql.ErrNoRows {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// MarkUsed flips the ticket's used flag.  The update is conditional on
// used = 0; losing the race to another redemption returns ErrTicketUsed.
func (r *TicketRepository) MarkUsed(ctx context.Context, code string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE tickets SET used = 1 WHERE code = ? AND used = 0`, code)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByCode(ctx, code); err != nil {
			return err
		}
		return ErrTicketUsed
	}
	return nil
}

// CodeExists reports whether any ticket already carries the code.
func (r *TicketRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		`SELECT 1 FROM tickets WHERE code = ?`, code).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
