// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/arayajs/cinema-booking/internal/config"
	"github.com/arayajs/cinema-booking/internal/handler"
	"github.com/arayajs/cinema-booking/internal/middleware"
)

// Handlers bundles the handler set the router needs.
type Handlers struct {
	Screenings *handler.ScreeningHandler
	Orders     *handler.OrderHandler
	Tickets    *handler.TicketHandler
}

// Register mounts every route on the Echo instance.  Public endpoints carry
// the rate limiter and, for reads, the response cache; protected endpoints
// additionally require a valid access token.  rdb may be nil, which turns
// the Redis middleware into pass-throughs.
func Register(e *echo.Echo, h Handlers, jwtSecret string, rdb *redis.Client) {
	limiter := middleware.NewRateLimit(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)

	e.GET("/healthz", handler.Health)

	// Public browse endpoints: guests compare screenings and seat maps
	// before authenticating.
	e.GET("/v1/screenings/:id", h.Screenings.Get, limiter, cache)
	e.GET("/v1/screenings/:id/seats", h.Screenings.Seats, limiter, cache)
	e.GET("/v1/tickets/:code/validate", h.Tickets.Validate, limiter)

	// Authenticated customer endpoints.
	auth := e.Group("/v1", limiter, middleware.JWTAuth(jwtSecret))
	auth.POST("/orders", h.Orders.Create)
	auth.GET("/orders/:id", h.Orders.Get)
	auth.GET("/orders/:id/tickets", h.Orders.Tickets)
	auth.GET("/my-orders", h.Orders.ListMine)
	auth.POST("/orders/:id/payment", h.Orders.Pay)
	auth.POST("/orders/:id/cancel", h.Orders.Cancel)

	// Schedule management, admin only.
	admin := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole(handler.RoleAdmin))
	admin.POST("/screenings", h.Screenings.Create)
	admin.DELETE("/screenings/:id", h.Screenings.Cancel)

	// Door-side redemption for staff and admins.
	door := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole(handler.RoleStaff, handler.RoleAdmin))
	door.POST("/tickets/:code/redeem", h.Tickets.Redeem)
}
