package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sportsconnect/sportsconnect-api/internal/booking"
	"github.com/sportsconnect/sportsconnect-api/internal/model"
	"github.com/sportsconnect/sportsconnect-api/internal/notify"
	"github.com/sportsconnect/sportsconnect-api/internal/repository"
)

// ReviewHandler serves review creation and management.  A review is
// only accepted for a completed reservation and at most one review
// exists per reservation.
type ReviewHandler struct {
	Reviews      *repository.ReviewRepo
	Reservations *repository.ReservationRepo
	Coaches      *repository.CoachRepo
	Sportifs     *repository.SportifRepo
	Notifier     *notify.Dispatcher
}

func NewReviewHandler(rv *repository.ReviewRepo, res *repository.ReservationRepo, co *repository.CoachRepo, sp *repository.SportifRepo, n *notify.Dispatcher) *ReviewHandler {
	return &ReviewHandler{Reviews: rv, Reservations: res, Coaches: co, Sportifs: sp, Notifier: n}
}

type createReviewReq struct {
	ReservationID uint64  `json:"reservation_id"`
	Rating        uint8   `json:"rating"`
	Comment       *string `json:"comment"`
}

// Create posts a review for one of the sportif's completed sessions.
func (h *ReviewHandler) Create(c echo.Context) error {
	var req createReviewReq
	if err := c.Bind(&req); err != nil || req.ReservationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservation_id required"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := resolveActor(ctx, c, h.Coaches, h.Sportifs)
	if err != nil {
		return writeErr(c, err)
	}

	res, err := h.Reservations.GetByID(ctx, req.ReservationID)
	if err != nil {
		return writeErr(c, err)
	}
	if a.SportifID == 0 || a.SportifID != res.SportifID {
		return writeErr(c, repository.ErrForbidden)
	}
	st, err := booking.ParseStatus(res.Status)
	if err != nil {
		return writeErr(c, err)
	}
	if !booking.IsCompletable(st) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "session is not completed yet"})
	}
	if exists, err := h.Reviews.ExistsForReservation(ctx, req.ReservationID); err != nil {
		return writeErr(c, err)
	} else if exists {
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation already reviewed"})
	}

	rv := &model.Review{
		ReservationID: req.ReservationID,
		SportifID:     a.SportifID,
		CoachID:       res.CoachID,
		Rating:        req.Rating,
		Comment:       trimNote(req.Comment),
	}
	id, err := h.Reviews.Create(ctx, rv)
	if err != nil {
		return writeErr(c, err)
	}
	rv.ID = id

	if uid, err := h.Coaches.UserIDOf(ctx, res.CoachID); err == nil {
		h.Notifier.ReviewReceived(ctx, uid, id, req.Rating)
	}

	return c.JSON(http.StatusCreated, rv)
}

// ByCoach is the public listing of a coach's visible reviews.
func (h *ReviewHandler) ByCoach(c echo.Context) error {
	coachID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid coach id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Reviews.ListByCoach(ctx, coachID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reviews": list})
}

// Mine lists the authenticated sportif's own reviews.
func (h *ReviewHandler) Mine(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := resolveActor(ctx, c, h.Coaches, h.Sportifs)
	if err != nil {
		return writeErr(c, err)
	}
	list, err := h.Reviews.ListBySportif(ctx, a.SportifID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reviews": list})
}

type updateReviewReq struct {
	Rating  uint8   `json:"rating"`
	Comment *string `json:"comment"`
}

// Update edits the rating or comment of the sportif's own review.
func (h *ReviewHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Rating < 1 || req.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := resolveActor(ctx, c, h.Coaches, h.Sportifs)
	if err != nil {
		return writeErr(c, err)
	}
	if err := h.Reviews.Update(ctx, id, a.SportifID, req.Rating, trimNote(req.Comment)); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "updated"})
}

// Delete removes the sportif's own review.
func (h *ReviewHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := resolveActor(ctx, c, h.Coaches, h.Sportifs)
	if err != nil {
		return writeErr(c, err)
	}
	if err := h.Reviews.Delete(ctx, id, a.SportifID); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "deleted"})
}

type respondReviewReq struct {
	Response string `json:"response"`
}

// Respond stores the coach's public reply under one of their reviews.
func (h *ReviewHandler) Respond(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req respondReviewReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Response) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "response required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := resolveActor(ctx, c, h.Coaches, h.Sportifs)
	if err != nil {
		return writeErr(c, err)
	}
	if err := h.Reviews.SetResponse(ctx, id, a.CoachID, strings.TrimSpace(req.Response)); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "saved"})
}
