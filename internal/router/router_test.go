package router

import (
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sportsconnect/sportsconnect-api/internal/handler"
)

// registerAll wires every route group onto a fresh echo instance with
// empty handlers. Registration must not require live dependencies.
func registerAll(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	RegisterRoutes(e)
	RegisterAuth(e, &handler.AuthHandler{}, "secret")
	RegisterPublic(e, &handler.PublicHandler{}, &handler.AvailabilityHandler{}, &handler.ReviewHandler{})
	RegisterShared(e, &handler.ReservationHandler{}, &handler.NotificationHandler{}, "secret")
	RegisterCoach(e, &handler.AvailabilityHandler{}, &handler.ReservationHandler{}, &handler.ProfileHandler{}, &handler.ReviewHandler{}, "secret")
	RegisterSportif(e, &handler.ReservationHandler{}, &handler.ProfileHandler{}, &handler.ReviewHandler{}, "secret")
	return e
}

func TestRouteTable(t *testing.T) {
	e := registerAll(t)

	registered := make(map[string]bool)
	for _, r := range e.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	want := []string{
		"GET /healthz",
		"POST /v1/auth/register",
		"POST /v1/auth/login",
		"POST /v1/auth/refresh",
		"GET /v1/me",
		"GET /v1/coaches",
		"GET /v1/coaches/:id",
		"GET /v1/coaches/:id/availabilities",
		"GET /v1/coaches/:id/available-dates",
		"POST /v1/coach/availabilities",
		"POST /v1/coach/availabilities/bulk",
		"PUT /v1/coach/availabilities/:id",
		"DELETE /v1/coach/availabilities/:id",
		"PATCH /v1/coach/reservations/:id/accept",
		"PATCH /v1/coach/reservations/:id/refuse",
		"PATCH /v1/coach/reservations/:id/complete",
		"POST /v1/sportif/reservations",
		"GET /v1/reservations/:id",
		"PATCH /v1/reservations/:id/cancel",
		"PUT /v1/reservations/:id/notes",
		"PATCH /v1/reservations/:id/notes",
		"GET /v1/notifications",
	}
	for _, w := range want {
		if !registered[w] {
			t.Errorf("route %s not registered", w)
		}
	}
}
