package repository

import (
	"context"
	"database/sql"

	"github.com/arayajs/cinema-booking/internal/model"
)

// HallRepository provides read access to catalog halls.
type HallRepository struct {
	DB *sql.DB
}

// NewHallRepository creates a new repository instance.
func NewHallRepository(db *sql.DB) *HallRepository {
	return &HallRepository{DB: db}
}

// GetByID fetches a single hall.
func (r *HallRepository) GetByID(ctx context.Context, id uint64) (*model.Hall, error) {
	var h model.Hall
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, cinema_id, name, status, created_at, updated_at FROM halls WHERE id = ?`, id).
		Scan(&h.ID, &h.CinemaID, &h.Name, &h.Status, &h.CreatedAt, &h.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrHallNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}
