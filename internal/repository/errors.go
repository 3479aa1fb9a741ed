package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// Sentinel errors returned by the repositories.  Callers compare with
// errors.Is; the service layer translates them into its own error classes.
var (
	ErrScreeningNotFound = errors.New("screening not found")
	ErrSeatNotFound      = errors.New("seat not found")
	ErrHallNotFound      = errors.New("hall not found")
	ErrMovieNotFound     = errors.New("movie not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrTicketNotFound    = errors.New("ticket not found")

	// ErrSeatTaken means another non-cancelled ticket already holds the
	// seat for the screening.  It surfaces from the unique key on
	// seat_reservations.
	ErrSeatTaken = errors.New("seat already reserved for this screening")

	// ErrDuplicateCode means a generated ticket code collided with an
	// existing one.  The caller regenerates and retries.
	ErrDuplicateCode = errors.New("ticket code already exists")

	// ErrTicketUsed means the ticket was already redeemed.
	ErrTicketUsed = errors.New("ticket already used")

	// ErrOrderNotPending is returned by conditional status updates when
	// the order exists but is no longer PENDING.
	ErrOrderNotPending = errors.New("order is not pending")

	// ErrOrderNotCancellable is returned when the order exists but its
	// status forbids cancellation.
	ErrOrderNotCancellable = errors.New("order cannot be cancelled")
)

const mysqlDupEntry = 1062

// isDuplicateKey reports whether err is a MySQL duplicate-key violation.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDupEntry
}
