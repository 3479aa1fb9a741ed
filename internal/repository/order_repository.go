package repository

import (
	"context"
	"database/sql"

	"github.com/arayajs/cinema-booking/internal/model"
)

// OrderRepository manages orders and their tickets.  The multi-row writes
// (create, cancel) run inside a single transaction so an order can never be
// observed half-written: either every ticket and seat reservation lands, or
// none do.
type OrderRepository struct {
	DB           *sql.DB
	reservations *ReservationRepository
}

// NewOrderRepository creates a new repository instance.
func NewOrderRepository(db *sql.DB, reservations *ReservationRepository) *OrderRepository {
	return &OrderRepository{DB: db, reservations: reservations}
}

// CreateWithTickets inserts the order, its tickets, and one seat reservation
// per ticket in one transaction.  A seat collision returns ErrSeatTaken and
// a ticket code collision returns ErrDuplicateCode; in both cases the whole
// transaction rolls back and nothing is persisted.
func (r *OrderRepository) CreateWithTickets(ctx context.Context, order *model.Order, tickets []model.Ticket) (*model.Order, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO orders (user_id, status, total_amount_cents, payment_method)
		 VALUES (?, ?, ?, ?)`,
		order.UserID, model.OrderPending, order.TotalAmountCents, order.PaymentMethod)
	if err != nil {
		return nil, err
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	for i := range tickets {
		t := &tickets[i]
		if err := r.reservations.ReserveTx(ctx, tx, t.ScreeningID, t.SeatID, uint64(orderID)); err != nil {
			return nil, err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO tickets (order_id, screening_id, seat_id, price_cents, code, used)
			 VALUES (?, ?, ?, ?, ?, 0)`,
			orderID, t.ScreeningID, t.SeatID, t.PriceCents, t.Code)
		if err != nil {
			if isDuplicateKey(err) {
				return nil, ErrDuplicateCode
			}
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(orderID))
}

const orderColumns = `id, user_id, status, total_amount_cents, payment_method, transaction_id, created_at, updated_at`

// GetByID fetches an order together with its tickets.
func (r *OrderRepository) GetByID(ctx context.Context, id uint64) (*model.Order, error) {
	var o model.Order
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = ?`, id).
		Scan(&o.ID, &o.UserID, &o.Status, &o.TotalAmountCents, &o.PaymentMethod,
			&o.TransactionID, &o.CreatedAt, &o.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	tickets, err := r.ticketsByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Tickets = tickets
	return &o, nil
}

// ListByUser returns the user's orders, newest first, without tickets.
func (r *OrderRepository) ListByUser(ctx context.Context, userID uint64) ([]model.Order, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalAmountCents, &o.PaymentMethod,
			&o.TransactionID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// MarkCompleted records a payment outcome on a PENDING order.  The update is
// conditional on the current status; when zero rows change the order is
// re-read to distinguish a missing order from one that already left PENDING.
func (r *OrderRepository) MarkCompleted(ctx context.Context, id uint64, paymentMethod, transactionID string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE orders SET status = ?, payment_method = ?, transaction_id = ?, updated_at = NOW()
		 WHERE id = ? AND status = ?`,
		model.OrderCompleted, paymentMethod, transactionID, id, model.OrderPending)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrOrderNotPending
	}
	return nil
}

// CancelAndRelease flips a PENDING or COMPLETED order to CANCELLED and frees
// its seats in one transaction.  The screening-start precondition is checked
// by the caller; here only the status transition is enforced.
func (r *OrderRepository) CancelAndRelease(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = ?, updated_at = NOW()
		 WHERE id = ? AND status IN (?, ?)`,
		model.OrderCancelled, id, model.OrderPending, model.OrderCompleted)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var status string
		err := tx.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = ?`, id).Scan(&status)
		if err == sql.ErrNoRows {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}
		return ErrOrderNotCancellable
	}

	if err := r.reservations.ReleaseByOrderTx(ctx, tx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *OrderRepository) ticketsByOrder(ctx context.Context, orderID uint64) ([]model.Ticket, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, order_id, screening_id, seat_id, price_cents, code, used, created_at
		 FROM tickets WHERE order_id = ? ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Ticket
	for rows.Next() {
		var t model.Ticket
		if err := rows.Scan(&t.ID, &t.OrderID, &t.ScreeningID, &t.SeatID,
			&t.PriceCents, &t.Code, &t.Used, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
