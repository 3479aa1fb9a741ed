package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arayajs/cinema-booking/internal/model"
	"github.com/arayajs/cinema-booking/internal/payment"
	"github.com/arayajs/cinema-booking/internal/service"
)

// OrderHandler exposes booking, payment, and cancellation.
type OrderHandler struct {
	Orchestrator *service.Orchestrator
	Settlement   *service.Settlement
	Gateway      payment.Gateway
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(orchestrator *service.Orchestrator, settlement *service.Settlement, gateway payment.Gateway) *OrderHandler {
	return &OrderHandler{Orchestrator: orchestrator, Settlement: settlement, Gateway: gateway}
}

// Create handles POST /v1/orders: books every requested seat atomically and
// returns the PENDING order with its tickets.
func (h *OrderHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Items         []service.CartItem `json:"items"`
		PaymentMethod string             `json:"payment_method"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.PaymentMethod == "" {
		body.PaymentMethod = "card"
	}

	order, err := h.Orchestrator.CreateOrder(c.Request().Context(), userID, body.Items, body.PaymentMethod)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

// Get handles GET /v1/orders/:id.  Owners see their own orders; admins see
// all.
func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.loadOwned(c)
	if order == nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Tickets handles GET /v1/orders/:id/tickets.
func (h *OrderHandler) Tickets(c echo.Context) error {
	order, err := h.loadOwned(c)
	if order == nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"order_id": order.ID, "tickets": order.Tickets})
}

// ListMine handles GET /v1/my-orders.
func (h *OrderHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	orders, err := h.Orchestrator.ListOrdersByUser(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

// Pay handles POST /v1/orders/:id/payment: charges the gateway for the
// order total and settles the order on success.  The charge amount always
// comes from the stored order, never from the request.
func (h *OrderHandler) Pay(c echo.Context) error {
	order, err := h.loadOwned(c)
	if order == nil {
		return err
	}
	if !order.Settleable() {
		return writeServiceError(c, service.ErrOrderNotPending)
	}

	var body struct {
		CardNumber string `json:"card_number"`
		ExpiryDate string `json:"expiry_date"`
		CVV        string `json:"cvv"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	resp, err := h.Gateway.Charge(c.Request().Context(), payment.Request{
		AmountCents: order.TotalAmountCents,
		Method:      order.PaymentMethod,
		CardNumber:  body.CardNumber,
		ExpiryDate:  body.ExpiryDate,
		CVV:         body.CVV,
	})
	if err != nil {
		return writeServiceError(c, service.ErrPaymentGateway)
	}
	if !resp.Success {
		return c.JSON(http.StatusPaymentRequired, echo.Map{"error": "payment declined", "message": resp.Message})
	}

	settled, err := h.Settlement.Settle(c.Request().Context(), order.ID, order.PaymentMethod, resp.TransactionID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, settled)
}

// Cancel handles POST /v1/orders/:id/cancel: voids the order and frees its
// seats, provided none of its screenings has started.
func (h *OrderHandler) Cancel(c echo.Context) error {
	order, err := h.loadOwned(c)
	if order == nil {
		return err
	}
	cancelled, err := h.Settlement.Cancel(c.Request().Context(), order.ID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, cancelled)
}

// loadOwned fetches the order named by the :id parameter and enforces that
// the caller owns it or is an admin.  On failure the response is already
// written; the caller just returns the error alongside the nil order.
func (h *OrderHandler) loadOwned(c echo.Context) (*model.Order, error) {
	userID, err := getUserID(c)
	if err != nil {
		return nil, c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return nil, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}
	order, err := h.Orchestrator.GetOrder(c.Request().Context(), id)
	if err != nil {
		return nil, writeServiceError(c, err)
	}
	role, _ := c.Get("role").(string)
	if order.UserID != userID && role != RoleAdmin {
		return nil, c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return order, nil
}
