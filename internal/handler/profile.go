package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sportsconnect/sportsconnect-api/internal/repository"
)

// ProfileHandler serves the authenticated user's own profile and, for
// coaches, the sports they teach.
type ProfileHandler struct {
	Coaches  *repository.CoachRepo
	Sportifs *repository.SportifRepo
	Sports   *repository.SportRepo
}

func NewProfileHandler(co *repository.CoachRepo, sp *repository.SportifRepo, s *repository.SportRepo) *ProfileHandler {
	return &ProfileHandler{Coaches: co, Sportifs: sp, Sports: s}
}

// UpdateCoach patches the coach's own profile.  Absent fields are
// left unchanged.
func (h *ProfileHandler) UpdateCoach(c echo.Context) error {
	var req repository.CoachProfileUpdate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.HourlyRate != nil && *req.HourlyRate < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hourly_rate must not be negative"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := resolveActor(ctx, c, h.Coaches, h.Sportifs)
	if err != nil {
		return writeErr(c, err)
	}
	if err := h.Coaches.UpdateProfile(ctx, a.CoachID, req); err != nil {
		return writeErr(c, err)
	}
	co, err := h.Coaches.GetByID(ctx, a.CoachID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, co)
}

// UpdateSportif patches the sportif's own profile.
func (h *ProfileHandler) UpdateSportif(c echo.Context) error {
	var req repository.SportifProfileUpdate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := resolveActor(ctx, c, h.Coaches, h.Sportifs)
	if err != nil {
		return writeErr(c, err)
	}
	if err := h.Sportifs.UpdateProfile(ctx, a.SportifID, req); err != nil {
		return writeErr(c, err)
	}
	sp, err := h.Sportifs.GetByID(ctx, a.SportifID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, sp)
}

type coachSportReq struct {
	SportID uint64 `json:"sport_id"`
}

// AddSport attaches a sport from the catalog to the coach's profile.
func (h *ProfileHandler) AddSport(c echo.Context) error {
	var req coachSportReq
	if err := c.Bind(&req); err != nil || req.SportID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "sport_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := resolveActor(ctx, c, h.Coaches, h.Sportifs)
	if err != nil {
		return writeErr(c, err)
	}
	if _, err := h.Sports.GetByID(ctx, req.SportID); err != nil {
		return writeErr(c, err)
	}
	if err := h.Coaches.AddSport(ctx, a.CoachID, req.SportID); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "added"})
}

// RemoveSport detaches a sport from the coach's profile.
func (h *ProfileHandler) RemoveSport(c echo.Context) error {
	sportID, err := pathID(c, "sportId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid sport id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := resolveActor(ctx, c, h.Coaches, h.Sportifs)
	if err != nil {
		return writeErr(c, err)
	}
	if err := h.Coaches.RemoveSport(ctx, a.CoachID, sportID); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "removed"})
}
