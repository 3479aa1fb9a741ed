// Package handler contains the Echo HTTP handlers for the booking API.
// Handlers translate requests into service calls and service errors into
// status codes; all business rules live below them.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/arayajs/cinema-booking/internal/model"
	"github.com/arayajs/cinema-booking/internal/service"
)

// Role names as carried in the JWT's role claim.
const (
	RoleAdmin    = "ADMIN"
	RoleStaff    = "STAFF"
	RoleCustomer = "CUSTOMER"
)

var errNoIdentity = errors.New("no authenticated user in context")

// getUserID extracts the authenticated user's ID stored by the JWT
// middleware.
func getUserID(c echo.Context) (uint64, error) {
	switch v := c.Get("user_id").(type) {
	case uint64:
		return v, nil
	case float64:
		return uint64(v), nil
	case string:
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			return id, nil
		}
	}
	return 0, errNoIdentity
}

// capsForRole maps a role claim to the capabilities handed into the core
// services.  Unknown roles get none.
func capsForRole(role string) []model.Capability {
	switch role {
	case RoleAdmin:
		return []model.Capability{model.CapManageScreenings, model.CapRedeemTickets}
	case RoleStaff:
		return []model.Capability{model.CapRedeemTickets}
	default:
		return nil
	}
}

func currentCaps(c echo.Context) []model.Capability {
	role, _ := c.Get("role").(string)
	return capsForRole(role)
}

// pathID parses a positive uint64 path parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

// writeServiceError maps a service error to an HTTP response.  The mapping
// follows the service's error classes; anything unclassified is a 500.
func writeServiceError(c echo.Context, err error) error {
	msg := err.Error()
	switch {
	case service.IsPermissionError(err):
		return c.JSON(http.StatusForbidden, echo.Map{"error": msg})
	case service.IsValidationError(err):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	case service.IsNotFoundError(err):
		return c.JSON(http.StatusNotFound, echo.Map{"error": msg})
	case service.IsStateError(err), service.IsConflictError(err):
		return c.JSON(http.StatusConflict, echo.Map{"error": msg})
	case service.IsExternalError(err):
		return c.JSON(http.StatusBadGateway, echo.Map{"error": msg})
	default:
		c.Logger().Errorf("internal error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
