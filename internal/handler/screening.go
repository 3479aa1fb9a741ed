package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arayajs/cinema-booking/internal/service"
)

// ScreeningHandler exposes schedule management and seat availability.
type ScreeningHandler struct {
	Calendar  *service.Calendar
	Inventory *service.Inventory
}

// NewScreeningHandler constructs a ScreeningHandler.
func NewScreeningHandler(calendar *service.Calendar, inventory *service.Inventory) *ScreeningHandler {
	return &ScreeningHandler{Calendar: calendar, Inventory: inventory}
}

// Create handles POST /v1/screenings.  Admin only.
func (h *ScreeningHandler) Create(c echo.Context) error {
	var body struct {
		MovieID          uint64 `json:"movie_id"`
		HallID           uint64 `json:"hall_id"`
		StartsAt         string `json:"starts_at"`
		EndsAt           string `json:"ends_at"`
		TicketPriceCents int64  `json:"ticket_price_cents"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.MovieID == 0 || body.HallID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_id and hall_id are required"})
	}
	if body.TicketPriceCents <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ticket_price_cents must be positive"})
	}
	startsAt, err := time.Parse(time.RFC3339, body.StartsAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "starts_at must be RFC 3339"})
	}
	endsAt, err := time.Parse(time.RFC3339, body.EndsAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ends_at must be RFC 3339"})
	}

	screening, err := h.Calendar.Schedule(c.Request().Context(), currentCaps(c), service.ScheduleRequest{
		MovieID:          body.MovieID,
		HallID:           body.HallID,
		StartsAt:         startsAt,
		EndsAt:           endsAt,
		TicketPriceCents: body.TicketPriceCents,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, screening)
}

// Get handles GET /v1/screenings/:id.
func (h *ScreeningHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screening id"})
	}
	screening, err := h.Calendar.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, screening)
}

// Cancel handles DELETE /v1/screenings/:id.  Admin only.  Existing orders
// keep their tickets; the screening just leaves sale.
func (h *ScreeningHandler) Cancel(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screening id"})
	}
	if err := h.Calendar.Cancel(c.Request().Context(), currentCaps(c), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "cancelled"})
}

// Seats handles GET /v1/screenings/:id/seats: the screening's currently
// available seats.  The response is a snapshot and may go stale the moment
// it is produced.
func (h *ScreeningHandler) Seats(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screening id"})
	}
	seats, err := h.Inventory.ListAvailableSeats(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"screening_id": id, "seats": seats})
}
