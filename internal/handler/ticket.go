package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/arayajs/cinema-booking/internal/service"
)

// TicketHandler exposes door-side validation and redemption.
type TicketHandler struct {
	Ledger *service.Ledger
}

// NewTicketHandler constructs a TicketHandler.
func NewTicketHandler(ledger *service.Ledger) *TicketHandler {
	return &TicketHandler{Ledger: ledger}
}

// Validate handles GET /v1/tickets/:code/validate: reports whether the code
// would be accepted at the door right now, without consuming it.
func (h *TicketHandler) Validate(c echo.Context) error {
	code := normalizeCode(c.Param("code"))
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ticket code is required"})
	}
	ok, detail, err := h.Ledger.Validate(c.Request().Context(), code)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"code":         detail.Code,
		"valid":        ok,
		"used":         detail.Used,
		"screening_id": detail.ScreeningID,
		"seat_id":      detail.SeatID,
	})
}

// Redeem handles POST /v1/tickets/:code/redeem.  Staff and admin only; a
// code redeems exactly once.
func (h *TicketHandler) Redeem(c echo.Context) error {
	code := normalizeCode(c.Param("code"))
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ticket code is required"})
	}
	detail, err := h.Ledger.Redeem(c.Request().Context(), currentCaps(c), code)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"code":         detail.Code,
		"redeemed":     true,
		"screening_id": detail.ScreeningID,
		"seat_id":      detail.SeatID,
	})
}

// normalizeCode upper-cases and trims a ticket code so door scanners may
// send either case.
func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
