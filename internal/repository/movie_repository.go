package repository

import (
	"context"
	"database/sql"

	"github.com/arayajs/cinema-booking/internal/model"
)

// MovieRepository provides read access to catalog movies.
type MovieRepository struct {
	DB *sql.DB
}

// NewMovieRepository creates a new repository instance.
func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{DB: db}
}

// GetByID fetches a single movie.
func (r *MovieRepository) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	var m model.Movie
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, title, duration_min, status, created_at, updated_at FROM movies WHERE id = ?`, id).
		Scan(&m.ID, &m.Title, &m.DurationMin, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrMovieNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
