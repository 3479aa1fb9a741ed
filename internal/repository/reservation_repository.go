package repository

import (
	"context"
	"database/sql"
	"time"
)

// SeatReservation is one row in seat_reservations: the claim a non-cancelled
// ticket holds on a seat for a screening.  The table carries
// UNIQUE KEY (screening_id, seat_id), which is what makes double booking
// impossible: two concurrent inserts for the same pair race on the index and
// exactly one wins.  Rows are deleted when the owning order is cancelled, so
// the uniqueness constraint is scoped to live tickets only.
type SeatReservation struct {
	ID          uint64
	ScreeningID uint64
	SeatID      uint64
	OrderID     uint64
	CreatedAt   time.Time
}

// ReservationRepository manages seat_reservations rows.
type ReservationRepository struct {
	DB *sql.DB
}

// NewReservationRepository creates a new repository instance.
func NewReservationRepository(db *sql.DB) *ReservationRepository {
	return &ReservationRepository{DB: db}
}

// Reserve claims a seat for a screening on behalf of an order.  A duplicate
// key violation maps to ErrSeatTaken.
func (r *ReservationRepository) Reserve(ctx context.Context, screeningID, seatID, orderID uint64) (*SeatReservation, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO seat_reservations (screening_id, seat_id, order_id) VALUES (?, ?, ?)`,
		screeningID, seatID, orderID)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrSeatTaken
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &SeatReservation{ID: uint64(id), ScreeningID: screeningID, SeatID: seatID, OrderID: orderID}, nil
}

// ReserveTx is the transactional variant used while building an order.
func (r *ReservationRepository) ReserveTx(ctx context.Context, tx *sql.Tx, screeningID, seatID, orderID uint64) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO seat_reservations (screening_id, seat_id, order_id) VALUES (?, ?, ?)`,
		screeningID, seatID, orderID)
	if err != nil && isDuplicateKey(err) {
		return ErrSeatTaken
	}
	return err
}

// ReleaseByOrderTx removes every reservation held by an order.  Called in
// the same transaction that flips the order to CANCELLED so the seats free
// up atomically with the status change.
func (r *ReservationRepository) ReleaseByOrderTx(ctx context.Context, tx *sql.Tx, orderID uint64) error {
	_, err := tx.ExecContext(ctx,
		`DELETE FROM seat_reservations WHERE order_id = ?`, orderID)
	return err
}

// ReservedSeatIDs returns the set of seat IDs currently claimed for the
// screening.
func (r *ReservationRepository) ReservedSeatIDs(ctx context.Context, screeningID uint64) (map[uint64]struct{}, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT seat_id FROM seat_reservations WHERE screening_id = ?`, screeningID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	taken := make(map[uint64]struct{})
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		taken[id] = struct{}{}
	}
	return taken, rows.Err()
}

// IsReserved reports whether a seat is currently claimed for a screening.
func (r *ReservationRepository) IsReserved(ctx context.Context, screeningID, seatID uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		`SELECT 1 FROM seat_reservations WHERE screening_id = ? AND seat_id = ?`,
		screeningID, seatID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
