package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/arayajs/cinema-booking/internal/model"
)

// ScreeningRepository provides access to the screenings table.
type ScreeningRepository struct {
	DB *sql.DB
}

// NewScreeningRepository creates a new repository instance.
func NewScreeningRepository(db *sql.DB) *ScreeningRepository {
	return &ScreeningRepository{DB: db}
}

const screeningColumns = `id, movie_id, hall_id, starts_at, ends_at, ticket_price_cents, status, created_at, updated_at`

func scanScreening(row *sql.Row) (*model.Screening, error) {
	var s model.Screening
	err := row.Scan(&s.ID, &s.MovieID, &s.HallID, &s.StartsAt, &s.EndsAt,
		&s.TicketPriceCents, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrScreeningNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByID fetches a single screening.
func (r *ScreeningRepository) GetByID(ctx context.Context, id uint64) (*model.Screening, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+screeningColumns+` FROM screenings WHERE id = ?`, id)
	return scanScreening(row)
}

// Create inserts a new SCHEDULED screening and returns it with its
// generated identifier.
func (r *ScreeningRepository) Create(ctx context.Context, s *model.Screening) (*model.Screening, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO screenings (movie_id, hall_id, starts_at, ends_at, ticket_price_cents, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.MovieID, s.HallID, s.StartsAt.UTC(), s.EndsAt.UTC(), s.TicketPriceCents, model.ScreeningScheduled)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// FindOverlapping returns the scheduled screenings in the hall whose window
// intersects [startsAt, endsAt).  Windows are half-open, so a screening that
// ends exactly when another starts does not overlap it.  excludeID skips one
// screening (the one being validated) and may be zero.
func (r *ScreeningRepository) FindOverlapping(ctx context.Context, hallID uint64, startsAt, endsAt time.Time, excludeID uint64) ([]model.Screening, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+screeningColumns+` FROM screenings
		 WHERE hall_id = ? AND status = ? AND id <> ?
		   AND NOT (ends_at <= ? OR starts_at >= ?)`,
		hallID, model.ScreeningScheduled, excludeID, startsAt.UTC(), endsAt.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Screening
	for rows.Next() {
		var s model.Screening
		if err := rows.Scan(&s.ID, &s.MovieID, &s.HallID, &s.StartsAt, &s.EndsAt,
			&s.TicketPriceCents, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Cancel flips a SCHEDULED screening to CANCELLED.  It is a no-op error if
// the screening does not exist or was already cancelled.
func (r *ScreeningRepository) Cancel(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE screenings SET status = ?, updated_at = NOW() WHERE id = ? AND status = ?`,
		model.ScreeningCancelled, id, model.ScreeningScheduled)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish missing from already cancelled.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
