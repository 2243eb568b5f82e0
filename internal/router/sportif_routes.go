package router

import (
	"github.com/labstack/echo/v4"

	"github.com/sportsconnect/sportsconnect-api/internal/booking"
	"github.com/sportsconnect/sportsconnect-api/internal/handler"
	"github.com/sportsconnect/sportsconnect-api/internal/middleware"
)

// RegisterSportif registers SPORTIF-scoped endpoints under
// /v1/sportif.  All routes require a valid JWT and the SPORTIF role.
func RegisterSportif(e *echo.Echo, res *handler.ReservationHandler, pr *handler.ProfileHandler, rv *handler.ReviewHandler, jwtSecret string) {
	g := e.Group(
		"/v1/sportif",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(booking.RoleSportif),
	)

	// ---- Reservations ----
	g.POST("/reservations", res.Create)
	g.GET("/reservations", res.ListSportif)

	// ---- Reviews ----
	g.POST("/reviews", rv.Create)
	g.GET("/reviews", rv.Mine)
	g.PUT("/reviews/:id", rv.Update)
	g.DELETE("/reviews/:id", rv.Delete)

	// ---- Profile ----
	g.PATCH("/profile", pr.UpdateSportif)
	g.PUT("/profile", pr.UpdateSportif)
}
