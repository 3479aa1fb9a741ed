package service

import (
	"errors"

	"github.com/arayajs/cinema-booking/internal/repository"
)

// Validation errors: the request itself is malformed or impossible.
var (
	ErrNoItems          = errors.New("order must contain at least one item")
	ErrBadInterval      = errors.New("screening must end after it starts")
	ErrPastStart        = errors.New("screening cannot start in the past")
	ErrDurationMismatch = errors.New("screening window does not match movie runtime")
	ErrSeatWrongHall    = errors.New("seat does not belong to the screening's hall")
)

// ErrPermissionDenied means the caller did not hold the capability a
// privileged operation requires.
var ErrPermissionDenied = errors.New("caller lacks the required capability")

// State errors: the request is well formed but the entity's current state
// forbids it.
var (
	ErrHallRetired          = errors.New("hall is no longer in service")
	ErrMovieInactive        = errors.New("movie is not screenable")
	ErrScreeningNotBookable = errors.New("screening is not open for booking")
	ErrScreeningStarted     = errors.New("screening has already started")
	ErrScreeningEnded       = errors.New("screening has already ended")
	ErrOrderNotPending      = errors.New("order is not awaiting settlement")
	ErrOrderNotCancellable  = errors.New("order cannot be cancelled")
	ErrOrderNotSettled      = errors.New("ticket's order has not been settled")
	ErrTicketUsed           = errors.New("ticket has already been redeemed")
)

// Conflict errors: the request lost a race against a concurrent writer.
var (
	ErrSeatUnavailable = errors.New("seat is already taken for this screening")
	ErrScheduleOverlap = errors.New("screening overlaps another in the same hall")
)

// ErrPaymentGateway wraps failures talking to the payment provider.
var ErrPaymentGateway = errors.New("payment gateway unavailable")

// IsValidationError reports whether err is a malformed-request error.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrNoItems, ErrBadInterval, ErrPastStart, ErrDurationMismatch, ErrSeatWrongHall,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFoundError reports whether err means a referenced entity is missing.
func IsNotFoundError(err error) bool {
	for _, target := range []error{
		repository.ErrScreeningNotFound, repository.ErrSeatNotFound,
		repository.ErrHallNotFound, repository.ErrMovieNotFound,
		repository.ErrOrderNotFound, repository.ErrTicketNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsStateError reports whether err means the entity's lifecycle forbids the
// operation.
func IsStateError(err error) bool {
	for _, target := range []error{
		ErrHallRetired, ErrMovieInactive,
		ErrScreeningNotBookable, ErrScreeningStarted, ErrScreeningEnded,
		ErrOrderNotPending, ErrOrderNotCancellable, ErrOrderNotSettled, ErrTicketUsed,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsConflictError reports whether err means the request lost a concurrency
// race.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrSeatUnavailable) || errors.Is(err, ErrScheduleOverlap)
}

// IsPermissionError reports whether err means the caller lacked a
// capability.
func IsPermissionError(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

// IsExternalError reports whether err came from a downstream dependency
// rather than this service's own rules.
func IsExternalError(err error) bool {
	return errors.Is(err, ErrPaymentGateway)
}
