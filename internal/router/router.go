package router

import (
	"github.com/labstack/echo/v4"

	"github.com/sportsconnect/sportsconnect-api/internal/booking"
	"github.com/sportsconnect/sportsconnect-api/internal/handler"
	"github.com/sportsconnect/sportsconnect-api/internal/middleware"
)

// RegisterRoutes registers routes that need no authentication or
// handler state.  Currently just the health check used by load
// balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the session endpoints.  Register, login and
// the refresh flows are open; /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts either a refresh token in the body or a bearer
	// token, so it stays outside the JWT middleware.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse endpoints:
// coach search, coach detail with reviews, the availability views a
// booking starts from and the sports catalog.  Optional middlewares
// (response cache, rate limiter) are applied to the whole group.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, av *handler.AvailabilityHandler, rv *handler.ReviewHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mw...)
	g.GET("/coaches", p.Coaches)
	g.GET("/coaches/:id", p.Coach)
	g.GET("/coaches/:id/availabilities", av.CoachSlots)
	g.GET("/coaches/:id/available-dates", av.CoachDates)
	g.GET("/coaches/:id/reviews", rv.ByCoach)
	g.GET("/cities", p.Cities)
	g.GET("/sports", p.SportsCatalog)
	g.GET("/sports/categories", p.SportCategories)
}

// RegisterShared registers endpoints both roles use: reading and
// cancelling a reservation they are party to, per-reservation notes
// and the notification feed.  Ownership is enforced in the handlers,
// not here.
func RegisterShared(e *echo.Echo, res *handler.ReservationHandler, n *handler.NotificationHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(booking.RoleCoach, booking.RoleSportif),
	)

	g.GET("/reservations/:id", res.Get)
	g.PATCH("/reservations/:id/cancel", res.Cancel)
	g.PUT("/reservations/:id/notes", res.SetNotes)
	g.PATCH("/reservations/:id/notes", res.SetNotes)

	g.GET("/notifications", n.List)
	g.GET("/notifications/unread", n.Unread)
	g.GET("/notifications/unread/count", n.UnreadCount)
	g.PATCH("/notifications/:id/read", n.MarkRead)
	g.PATCH("/notifications/read-all", n.MarkAllRead)
	g.DELETE("/notifications/:id", n.Delete)
}
