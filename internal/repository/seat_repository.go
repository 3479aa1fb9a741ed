package repository

import (
	"context"
	"database/sql"

	"github.com/arayajs/cinema-booking/internal/model"
)

// SeatRepository provides read access to catalog seats.
type SeatRepository struct {
	DB *sql.DB
}

// NewSeatRepository creates a new repository instance.
func NewSeatRepository(db *sql.DB) *SeatRepository {
	return &SeatRepository{DB: db}
}

const seatColumns = `id, hall_id, row_label, seat_number, status, created_at, updated_at`

// GetByID fetches a single seat.
func (r *SeatRepository) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	var s model.Seat
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+seatColumns+` FROM seats WHERE id = ?`, id).
		Scan(&s.ID, &s.HallID, &s.RowLabel, &s.SeatNumber, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrSeatNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListActiveByHall returns the hall's non-retired seats ordered by row and
// number, for stable seat-map rendering.
func (r *SeatRepository) ListActiveByHall(ctx context.Context, hallID uint64) ([]model.Seat, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+seatColumns+` FROM seats
		 WHERE hall_id = ? AND status = ?
		 ORDER BY row_label, seat_number`,
		hallID, model.SeatActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Seat
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.HallID, &s.RowLabel, &s.SeatNumber, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
