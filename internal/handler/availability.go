package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sportsconnect/sportsconnect-api/internal/booking"
	"github.com/sportsconnect/sportsconnect-api/internal/repository"
)

// AvailabilityHandler serves coach slot management plus the public
// availability views sportifs book from.
type AvailabilityHandler struct {
	Availability *repository.AvailabilityRepo
	Coaches      *repository.CoachRepo
	Sportifs     *repository.SportifRepo
}

func NewAvailabilityHandler(av *repository.AvailabilityRepo, co *repository.CoachRepo, sp *repository.SportifRepo) *AvailabilityHandler {
	return &AvailabilityHandler{Availability: av, Coaches: co, Sportifs: sp}
}

// validSlot checks formats and ordering of a slot request.  Dates are
// zero-padded ISO so string comparison matches chronological order;
// the same holds for HH:MM:SS times, which is what the overlap
// queries rely on.
func validSlot(in repository.SlotInput) (repository.SlotInput, string) {
	in.Date = strings.TrimSpace(in.Date)
	in.StartTime = normalizeTime(in.StartTime)
	in.EndTime = normalizeTime(in.EndTime)
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return in, "date must be YYYY-MM-DD"
	}
	if _, err := time.Parse("15:04:05", in.StartTime); err != nil {
		return in, "start_time must be HH:MM or HH:MM:SS"
	}
	if _, err := time.Parse("15:04:05", in.EndTime); err != nil {
		return in, "end_time must be HH:MM or HH:MM:SS"
	}
	if !booking.ValidInterval(in.StartTime, in.EndTime) {
		return in, "start_time must be before end_time"
	}
	return in, ""
}

// normalizeTime appends seconds to HH:MM input.
func normalizeTime(s string) string {
	s = strings.TrimSpace(s)
	if len(s) == len("15:04") {
		return s + ":00"
	}
	return s
}

// CreateSlot adds one availability slot for the authenticated coach.
func (h *AvailabilityHandler) CreateSlot(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := resolveActor(ctx, c, h.Coaches, h.Sportifs)
	if err != nil {
		return writeErr(c, err)
	}

	var in repository.SlotInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	in, msg := validSlot(in)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	id, err := h.Availability.Create(ctx, a.CoachID, in)
	if err != nil {
		return writeErr(c, err)
	}
	slot, err := h.Availability.GetByID(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, slot)
}

type bulkSlotsReq struct {
	Slots []repository.SlotInput `json:"slots"`
}

// CreateSlots inserts a batch of slots in one transaction.  Slots
// that overlap existing ones or each other are skipped, not rejected;
// the response reports how many were created.
func (h *AvailabilityHandler) CreateSlots(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	a, err := resolveActor(ctx, c, h.Coaches, h.Sportifs)
	if err != nil {
		return writeErr(c, err)
	}

	var req bulkSlotsReq
	if err := c.Bind(&req); err != nil || len(req.Slots) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slots required"})
	}
	for i, in := range req.Slots {
		cleaned, msg := validSlot(in)
		if msg != "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": msg, "slot_index": i})
		}
		req.Slots[i] = cleaned
	}

	created, err := h.Availability.CreateBulk(ctx, a.CoachID, req.Slots)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"requested": len(req.Slots),
		"created":   created,
		"skipped":   len(req.Slots) - created,
	})
}

// UpdateSlot rewrites one of the coach's free slots.  Booked slots are
// rejected with 409; the new interval goes through the same overlap
// check as creation, minus the slot itself.
func (h *AvailabilityHandler) UpdateSlot(c echo.Context) error {
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

	var in repository.SlotInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	in, msg := validSlot(in)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	if err := h.Availability.Update(ctx, id, a.CoachID, in); err != nil {
		return writeErr(c, err)
	}
	slot, err := h.Availability.GetByID(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, slot)
}

// MySlots lists the authenticated coach's slots, optionally bounded
// by from/to date query params.
func (h *AvailabilityHandler) MySlots(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := resolveActor(ctx, c, h.Coaches, h.Sportifs)
	if err != nil {
		return writeErr(c, err)
	}

	slots, err := h.Availability.ListByCoach(ctx, a.CoachID, c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"slots": slots})
}

// DeleteSlot removes one of the coach's free slots.  Booked slots are
// protected; the reservation must be cancelled or refused first.
func (h *AvailabilityHandler) DeleteSlot(c echo.Context) error {
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

	if err := h.Availability.Delete(ctx, id, a.CoachID); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "deleted"})
}

// DeleteSlotsByDate removes all still-free slots of the coach on one
// date and reports the count.
func (h *AvailabilityHandler) DeleteSlotsByDate(c echo.Context) error {
	date := strings.TrimSpace(c.QueryParam("date"))
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := resolveActor(ctx, c, h.Coaches, h.Sportifs)
	if err != nil {
		return writeErr(c, err)
	}

	n, err := h.Availability.DeleteByCoachAndDate(ctx, a.CoachID, date)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": n})
}

// CoachSlots is the public view of a coach's free slots.  Without a
// date param it returns all future free slots.
func (h *AvailabilityHandler) CoachSlots(c echo.Context) error {
	coachID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid coach id"})
	}
	date := strings.TrimSpace(c.QueryParam("date"))
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	slots, err := h.Availability.ListFree(ctx, coachID, date)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"slots": slots})
}

// CoachDates returns the next dates on which the coach has at least
// one free slot.
func (h *AvailabilityHandler) CoachDates(c echo.Context) error {
	coachID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid coach id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	dates, err := h.Availability.AvailableDates(ctx, coachID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"dates": dates})
}
