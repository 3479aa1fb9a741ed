package service

import (
	"context"
	"fmt"
	"time"

	"github.com/arayajs/cinema-booking/internal/model"
)

// DurationTolerance is how far a screening's scheduled span may deviate
// from the movie's runtime in either direction.  Trailers and cleaning
// account for the slack.
const DurationTolerance = 15 * time.Minute

// ScreeningStore is the calendar's view of screening persistence.
type ScreeningStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Screening, error)
	Create(ctx context.Context, s *model.Screening) (*model.Screening, error)
	FindOverlapping(ctx context.Context, hallID uint64, startsAt, endsAt time.Time, excludeID uint64) ([]model.Screening, error)
	Cancel(ctx context.Context, id uint64) error
}

// MovieStore resolves catalog movies.
type MovieStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Movie, error)
}

// HallStore resolves catalog halls.
type HallStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Hall, error)
}

// Calendar owns the screening schedule: it decides whether a proposed
// screening may be placed in a hall and retires screenings from sale.
type Calendar struct {
	screenings ScreeningStore
	movies     MovieStore
	halls      HallStore
	now        func() time.Time
}

// NewCalendar creates a calendar service.  now may be nil, in which case
// time.Now is used.
func NewCalendar(screenings ScreeningStore, movies MovieStore, halls HallStore, now func() time.Time) *Calendar {
	if now == nil {
		now = time.Now
	}
	return &Calendar{screenings: screenings, movies: movies, halls: halls, now: now}
}

// ScheduleRequest is the input for placing a new screening.
type ScheduleRequest struct {
	MovieID          uint64
	HallID           uint64
	StartsAt         time.Time
	EndsAt           time.Time
	TicketPriceCents int64
}

// Schedule validates and persists a new screening.  The caller must hold
// CapManageScreenings.
func (c *Calendar) Schedule(ctx context.Context, caps []model.Capability, req ScheduleRequest) (*model.Screening, error) {
	if !model.Has(caps, model.CapManageScreenings) {
		return nil, ErrPermissionDenied
	}
	if !req.EndsAt.After(req.StartsAt) {
		return nil, ErrBadInterval
	}
	if req.StartsAt.Before(c.now().UTC()) {
		return nil, ErrPastStart
	}

	hall, err := c.halls.GetByID(ctx, req.HallID)
	if err != nil {
		return nil, err
	}
	if !hall.Active() {
		return nil, ErrHallRetired
	}
	movie, err := c.movies.GetByID(ctx, req.MovieID)
	if err != nil {
		return nil, err
	}
	if !movie.Active() {
		return nil, ErrMovieInactive
	}
	if err := c.validateDuration(movie, req.StartsAt, req.EndsAt); err != nil {
		return nil, err
	}
	if err := c.ValidateNoOverlap(ctx, req.HallID, req.StartsAt, req.EndsAt, 0); err != nil {
		return nil, err
	}

	return c.screenings.Create(ctx, &model.Screening{
		MovieID:          req.MovieID,
		HallID:           req.HallID,
		StartsAt:         req.StartsAt.UTC(),
		EndsAt:           req.EndsAt.UTC(),
		TicketPriceCents: req.TicketPriceCents,
	})
}

// Cancel retires a screening from sale.  Already cancelled screenings are
// left alone; existing orders are unaffected.
func (c *Calendar) Cancel(ctx context.Context, caps []model.Capability, id uint64) error {
	if !model.Has(caps, model.CapManageScreenings) {
		return ErrPermissionDenied
	}
	return c.screenings.Cancel(ctx, id)
}

// Get returns one screening.
func (c *Calendar) Get(ctx context.Context, id uint64) (*model.Screening, error) {
	return c.screenings.GetByID(ctx, id)
}

// ValidateNoOverlap fails with ErrScheduleOverlap when any scheduled
// screening in the hall intersects the half-open window [startsAt, endsAt).
// excludeID skips one screening and may be zero.
func (c *Calendar) ValidateNoOverlap(ctx context.Context, hallID uint64, startsAt, endsAt time.Time, excludeID uint64) error {
	clashes, err := c.screenings.FindOverlapping(ctx, hallID, startsAt, endsAt, excludeID)
	if err != nil {
		return err
	}
	if len(clashes) > 0 {
		return fmt.Errorf("%w: hall %d has %d conflicting screening(s)", ErrScheduleOverlap, hallID, len(clashes))
	}
	return nil
}

func (c *Calendar) validateDuration(movie *model.Movie, startsAt, endsAt time.Time) error {
	span := endsAt.Sub(startsAt)
	diff := span - movie.Duration()
	if diff < 0 {
		diff = -diff
	}
	if diff > DurationTolerance {
		return fmt.Errorf("%w: scheduled %s, movie runs %s", ErrDurationMismatch, span, movie.Duration())
	}
	return nil
}
