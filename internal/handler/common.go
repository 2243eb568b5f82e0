package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sportsconnect/sportsconnect-api/internal/booking"
	"github.com/sportsconnect/sportsconnect-api/internal/repository"
)

// getUserID extracts the user id set by the JWT middleware.  The sub
// claim travels through JSON so it usually arrives as a float64.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// resolveActor builds the acting identity for the authenticated user.
// The role claim decides which profile table is consulted; a user
// whose profile row is missing cannot act on bookings.
func resolveActor(ctx context.Context, c echo.Context, coaches *repository.CoachRepo, sportifs *repository.SportifRepo) (booking.Actor, error) {
	uid, err := getUserID(c)
	if err != nil {
		return booking.Actor{}, err
	}
	role, _ := c.Get("role").(string)
	a := booking.Actor{UserID: uid, Role: role}
	switch role {
	case booking.RoleCoach:
		co, err := coaches.GetByUserID(ctx, uid)
		if err != nil {
			return booking.Actor{}, err
		}
		a.CoachID = co.ID
	case booking.RoleSportif:
		sp, err := sportifs.GetByUserID(ctx, uid)
		if err != nil {
			return booking.Actor{}, err
		}
		a.SportifID = sp.ID
	default:
		return booking.Actor{}, errors.New("unknown role in context")
	}
	return a, nil
}

// writeErr maps domain and repository errors onto HTTP responses.
// Conflicting writes, broken invariants and lost update races all
// surface as 409 so clients can re-read and retry.  Transient
// database failures come back as 503.
func writeErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrOverlap):
		return c.JSON(http.StatusConflict, echo.Map{"error": "slot overlaps an existing availability"})
	case errors.Is(err, repository.ErrSlotUnavailable):
		return c.JSON(http.StatusConflict, echo.Map{"error": "slot is no longer available"})
	case errors.Is(err, repository.ErrSlotBooked):
		return c.JSON(http.StatusConflict, echo.Map{"error": "slot is booked"})
	case errors.Is(err, booking.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation state does not allow this action"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation changed concurrently, reload and retry"})
	case errors.Is(err, repository.ErrTransient):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "temporary database error, retry"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
