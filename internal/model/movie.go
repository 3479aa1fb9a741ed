package model

import "time"

// Movie is catalog reference data.  The booking core only needs the runtime
// to validate that a screening's scheduled span roughly matches it.
type Movie struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	DurationMin int       `json:"duration_min"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Active reports whether the movie is still screenable.
func (m *Movie) Active() bool { return m.Status == "ACTIVE" }

// Duration returns the canonical runtime as a time.Duration.
func (m *Movie) Duration() time.Duration { return time.Duration(m.DurationMin) * time.Minute }
