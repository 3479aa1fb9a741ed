package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arayajs/cinema-booking/internal/model"
)

func TestScheduleCreatesScreening(t *testing.T) {
	f := newFixture()
	movieID := f.addMovie(120)
	hallID := f.addHall()

	s, err := f.calendar.Schedule(context.Background(), adminCaps, ScheduleRequest{
		MovieID:          movieID,
		HallID:           hallID,
		StartsAt:         f.now.Add(2 * time.Hour),
		EndsAt:           f.now.Add(4 * time.Hour),
		TicketPriceCents: 1500,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ScreeningScheduled, s.Status)
	assert.Equal(t, int64(1500), s.TicketPriceCents)
}

func TestScheduleRequiresCapability(t *testing.T) {
	f := newFixture()
	movieID := f.addMovie(120)
	hallID := f.addHall()

	_, err := f.calendar.Schedule(context.Background(), nil, ScheduleRequest{
		MovieID:  movieID,
		HallID:   hallID,
		StartsAt: f.now.Add(2 * time.Hour),
		EndsAt:   f.now.Add(4 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestScheduleRejectsBadWindow(t *testing.T) {
	f := newFixture()
	movieID := f.addMovie(120)
	hallID := f.addHall()

	_, err := f.calendar.Schedule(context.Background(), adminCaps, ScheduleRequest{
		MovieID:  movieID,
		HallID:   hallID,
		StartsAt: f.now.Add(4 * time.Hour),
		EndsAt:   f.now.Add(2 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrBadInterval)

	_, err = f.calendar.Schedule(context.Background(), adminCaps, ScheduleRequest{
		MovieID:  movieID,
		HallID:   hallID,
		StartsAt: f.now.Add(-2 * time.Hour),
		EndsAt:   f.now.Add(-1 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrPastStart)
}

func TestScheduleRejectsRetiredHallAndInactiveMovie(t *testing.T) {
	f := newFixture()
	movieID := f.addMovie(120)
	hallID := f.addHall()

	hall := f.store.halls[hallID]
	hall.Status = model.HallRetired
	f.store.halls[hallID] = hall

	req := ScheduleRequest{
		MovieID:          movieID,
		HallID:           hallID,
		StartsAt:         f.now.Add(2 * time.Hour),
		EndsAt:           f.now.Add(4 * time.Hour),
		TicketPriceCents: 1000,
	}
	_, err := f.calendar.Schedule(context.Background(), adminCaps, req)
	assert.ErrorIs(t, err, ErrHallRetired)

	hall.Status = model.HallActive
	f.store.halls[hallID] = hall
	movie := f.store.movies[movieID]
	movie.Status = "INACTIVE"
	f.store.movies[movieID] = movie

	_, err = f.calendar.Schedule(context.Background(), adminCaps, req)
	assert.ErrorIs(t, err, ErrMovieInactive)
}

func TestScheduleRejectsDurationMismatch(t *testing.T) {
	f := newFixture()
	movieID := f.addMovie(90)
	hallID := f.addHall()

	// 90 min movie in a 3 hour slot is far outside the tolerance.
	_, err := f.calendar.Schedule(context.Background(), adminCaps, ScheduleRequest{
		MovieID:  movieID,
		HallID:   hallID,
		StartsAt: f.now.Add(2 * time.Hour),
		EndsAt:   f.now.Add(5 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrDurationMismatch)

	// 100 minutes is within the 15 minute tolerance.
	_, err = f.calendar.Schedule(context.Background(), adminCaps, ScheduleRequest{
		MovieID:          movieID,
		HallID:           hallID,
		StartsAt:         f.now.Add(2 * time.Hour),
		EndsAt:           f.now.Add(2*time.Hour + 100*time.Minute),
		TicketPriceCents: 1000,
	})
	assert.NoError(t, err)
}

func TestScheduleOverlapBoundaries(t *testing.T) {
	f := newFixture()
	movieID := f.addMovie(120)
	hallID := f.addHall()

	// Existing screening occupies [T+2h, T+4h).
	f.addScreening(movieID, hallID, 2*time.Hour, 2*time.Hour, 1000)

	// [T+3h, T+5h) intersects it.
	_, err := f.calendar.Schedule(context.Background(), adminCaps, ScheduleRequest{
		MovieID:  movieID,
		HallID:   hallID,
		StartsAt: f.now.Add(3 * time.Hour),
		EndsAt:   f.now.Add(5 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrScheduleOverlap)

	// Back-to-back [T+4h, T+6h) is allowed: the windows are half-open.
	_, err = f.calendar.Schedule(context.Background(), adminCaps, ScheduleRequest{
		MovieID:          movieID,
		HallID:           hallID,
		StartsAt:         f.now.Add(4 * time.Hour),
		EndsAt:           f.now.Add(6 * time.Hour),
		TicketPriceCents: 1000,
	})
	assert.NoError(t, err)

	// A different hall never conflicts.
	otherHall := f.addHall()
	_, err = f.calendar.Schedule(context.Background(), adminCaps, ScheduleRequest{
		MovieID:          movieID,
		HallID:           otherHall,
		StartsAt:         f.now.Add(3 * time.Hour),
		EndsAt:           f.now.Add(5 * time.Hour),
		TicketPriceCents: 1000,
	})
	assert.NoError(t, err)
}

func TestValidateNoOverlapExcludesSelf(t *testing.T) {
	f := newFixture()
	movieID := f.addMovie(120)
	hallID := f.addHall()
	id := f.addScreening(movieID, hallID, 2*time.Hour, 2*time.Hour, 1000)

	// A screening never conflicts with itself.
	err := f.calendar.ValidateNoOverlap(context.Background(), hallID, f.now.Add(2*time.Hour), f.now.Add(4*time.Hour), id)
	assert.NoError(t, err)

	err = f.calendar.ValidateNoOverlap(context.Background(), hallID, f.now.Add(2*time.Hour), f.now.Add(4*time.Hour), 0)
	assert.ErrorIs(t, err, ErrScheduleOverlap)
}

func TestCancelScreeningFreesTheSlot(t *testing.T) {
	f := newFixture()
	movieID := f.addMovie(120)
	hallID := f.addHall()
	id := f.addScreening(movieID, hallID, 2*time.Hour, 2*time.Hour, 1000)

	require.NoError(t, f.calendar.Cancel(context.Background(), adminCaps, id))

	s, err := f.calendar.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.ScreeningCancelled, s.Status)

	// Cancelled screenings no longer block the hall.
	err = f.calendar.ValidateNoOverlap(context.Background(), hallID, f.now.Add(2*time.Hour), f.now.Add(4*time.Hour), 0)
	assert.NoError(t, err)
}
