package router

import (
	"github.com/labstack/echo/v4"

	"github.com/sportsconnect/sportsconnect-api/internal/booking"
	"github.com/sportsconnect/sportsconnect-api/internal/handler"
	"github.com/sportsconnect/sportsconnect-api/internal/middleware"
)

// RegisterCoach registers COACH-scoped endpoints under /v1/coach.
// All routes require a valid JWT and the COACH role.
func RegisterCoach(e *echo.Echo, av *handler.AvailabilityHandler, res *handler.ReservationHandler, pr *handler.ProfileHandler, rv *handler.ReviewHandler, jwtSecret string) {
	g := e.Group(
		"/v1/coach",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(booking.RoleCoach),
	)

	// ---- Availability slots ----
	g.POST("/availabilities", av.CreateSlot)
	g.POST("/availabilities/bulk", av.CreateSlots)
	g.GET("/availabilities", av.MySlots)
	g.PUT("/availabilities/:id", av.UpdateSlot)
	g.DELETE("/availabilities/:id", av.DeleteSlot)
	g.DELETE("/availabilities", av.DeleteSlotsByDate) // ?date=YYYY-MM-DD

	// ---- Reservations ----
	g.GET("/reservations", res.ListCoach)
	g.GET("/reservations/pending", res.ListPending)
	g.GET("/reservations/today", res.Today)
	g.PATCH("/reservations/:id/accept", res.Accept)
	g.PATCH("/reservations/:id/refuse", res.Refuse)
	g.PATCH("/reservations/:id/complete", res.Complete)

	// ---- Profile ----
	g.PATCH("/profile", pr.UpdateCoach)
	g.PUT("/profile", pr.UpdateCoach)
	g.POST("/sports", pr.AddSport)
	g.DELETE("/sports/:sportId", pr.RemoveSport)

	// ---- Reviews ----
	g.POST("/reviews/:id/response", rv.Respond)
}
