package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sportsconnect/sportsconnect-api/internal/booking"
	"github.com/sportsconnect/sportsconnect-api/internal/model"
	"github.com/sportsconnect/sportsconnect-api/internal/notify"
	"github.com/sportsconnect/sportsconnect-api/internal/repository"
)

// ReservationHandler owns the reservation lifecycle.  Every mutation
// runs inside one transaction: the reservation row is locked, the
// transition is validated against the fixed lifecycle, and the status
// write is guarded on the status that was read.  Two concurrent
// actors therefore cannot both move the same reservation; the loser
// gets a conflict.  Notifications go out only after commit.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
	Availability *repository.AvailabilityRepo
	Coaches      *repository.CoachRepo
	Sportifs     *repository.SportifRepo
	Sports       *repository.SportRepo
	Notifier     *notify.Dispatcher
}

func NewReservationHandler(res *repository.ReservationRepo, av *repository.AvailabilityRepo, co *repository.CoachRepo, sp *repository.SportifRepo, s *repository.SportRepo, n *notify.Dispatcher) *ReservationHandler {
	return &ReservationHandler{Reservations: res, Availability: av, Coaches: co, Sportifs: sp, Sports: s, Notifier: n}
}

type createReservationReq struct {
	AvailabilityID uint64  `json:"availability_id"`
	SportID        uint64  `json:"sport_id"`
	Notes          *string `json:"notes"`
}

type reasonReq struct {
	Reason *string `json:"reason"`
}

// reservationView adds the affordance flags clients render buttons
// from.  can_be_cancelled reflects status and session time at the
// moment of the response; the server re-checks on the actual cancel.
type reservationView struct {
	*model.Reservation
	CanBeCancelled bool `json:"can_be_cancelled"`
	IsCompletable  bool `json:"is_completable"`
}

func viewOf(res *model.Reservation, now time.Time) reservationView {
	v := reservationView{Reservation: res}
	st, err := booking.ParseStatus(res.Status)
	if err != nil {
		return v
	}
	if start, err := booking.SessionStart(res.SessionDate, res.StartTime, time.Local); err == nil {
		v.CanBeCancelled = booking.CanBeCancelled(st, start, now)
	}
	v.IsCompletable = booking.IsCompletable(st)
	return v
}

// Create books a free slot for the authenticated sportif.  The slot
// row is locked and then claimed with a compare-and-swap on its
// booked flag, so two sportifs racing for the same slot cannot both
// win even across server processes.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req createReservationReq
	if err := c.Bind(&req); err != nil || req.AvailabilityID == 0 || req.SportID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "availability_id and sport_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	a, err := resolveActor(ctx, c, h.Coaches, h.Sportifs)
	if err != nil {
		return writeErr(c, err)
	}
	if !a.IsSportif() {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only sportifs can book"})
	}

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return writeErr(c, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	slot, err := h.Availability.GetByIDTx(ctx, tx, req.AvailabilityID)
	if err != nil {
		return writeErr(c, err)
	}
	if slot.IsBooked {
		return writeErr(c, repository.ErrSlotUnavailable)
	}
	start, err := booking.SessionStart(slot.Date, slot.StartTime, time.Local)
	if err != nil || !start.After(time.Now()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slot is in the past"})
	}

	coach, err := h.Coaches.GetByID(ctx, slot.CoachID)
	if err != nil {
		return writeErr(c, err)
	}
	if !coach.IsAvailable {
		return c.JSON(http.StatusConflict, echo.Map{"error": "coach is not accepting bookings"})
	}
	teaches, err := h.Coaches.TeachesSport(ctx, slot.CoachID, req.SportID)
	if err != nil {
		return writeErr(c, err)
	}
	if !teaches {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "coach does not teach this sport"})
	}

	ok, err := h.Availability.BookTx(ctx, tx, slot.ID)
	if err != nil {
		return writeErr(c, err)
	}
	if !ok {
		return writeErr(c, repository.ErrSlotUnavailable)
	}

	res := &model.Reservation{
		SportifID:      a.SportifID,
		CoachID:        slot.CoachID,
		AvailabilityID: slot.ID,
		SportID:        req.SportID,
		SessionDate:    slot.Date,
		StartTime:      slot.StartTime,
		EndTime:        slot.EndTime,
		Price:          coach.HourlyRate,
		NotesSportif:   trimNote(req.Notes),
	}
	if err := h.Reservations.CreateTx(ctx, tx, res); err != nil {
		return writeErr(c, err)
	}

	if err := tx.Commit(); err != nil {
		return writeErr(c, err)
	}
	committed = true

	if uid, err := h.Coaches.UserIDOf(ctx, res.CoachID); err == nil {
		h.Notifier.Reservation(ctx, uid, notify.KindReservationRequested, res)
	}

	return c.JSON(http.StatusCreated, viewOf(res, time.Now()))
}

func trimNote(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// Get returns one reservation with affordance flags.  Only the two
// parties may read it.
func (h *ReservationHandler) Get(c echo.Context) error {
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
	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	if !booking.CanViewReservation(a, res) {
		return writeErr(c, repository.ErrForbidden)
	}
	return c.JSON(http.StatusOK, viewOf(res, time.Now()))
}

// Accept moves a pending reservation to accepted.  Coach only.
func (h *ReservationHandler) Accept(c echo.Context) error {
	return h.decide(c, booking.TransitionAccept, nil)
}

// Refuse moves a pending reservation to refused and frees the slot.
// An optional reason lands in the coach notes.  Coach only.
func (h *ReservationHandler) Refuse(c echo.Context) error {
	var req reasonReq
	_ = c.Bind(&req)
	return h.decide(c, booking.TransitionRefuse, trimNote(req.Reason))
}

// Complete marks an accepted reservation as done, opening it for
// review.  Coach only.
func (h *ReservationHandler) Complete(c echo.Context) error {
	return h.decide(c, booking.TransitionComplete, nil)
}

// decide runs a coach-side transition.  The reservation is locked,
// the transition validated, then written with a status guard; any
// concurrent change surfaces as a conflict.
func (h *ReservationHandler) decide(c echo.Context, t booking.Transition, reason *string) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	a, err := resolveActor(ctx, c, h.Coaches, h.Sportifs)
	if err != nil {
		return writeErr(c, err)
	}

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return writeErr(c, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := h.Reservations.GetByIDTx(ctx, tx, id)
	if err != nil {
		return writeErr(c, err)
	}
	if !booking.CanDecideReservation(a, res) {
		return writeErr(c, repository.ErrForbidden)
	}

	st, err := booking.ParseStatus(res.Status)
	if err != nil {
		return writeErr(c, err)
	}
	next, err := st.Next(t)
	if err != nil {
		return writeErr(c, err)
	}

	switch t {
	case booking.TransitionAccept:
		err = h.Reservations.AcceptTx(ctx, tx, id)
	case booking.TransitionRefuse:
		err = h.Reservations.RefuseTx(ctx, tx, id, reason)
	case booking.TransitionComplete:
		err = h.Reservations.CompleteTx(ctx, tx, id)
	default:
		err = booking.ErrInvalidTransition
	}
	if err != nil {
		return writeErr(c, err)
	}

	if booking.FreesSlot(t) {
		if err := h.Availability.FreeTx(ctx, tx, res.AvailabilityID); err != nil {
			return writeErr(c, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return writeErr(c, err)
	}
	committed = true

	res.Status = string(next)
	if t == booking.TransitionRefuse {
		res.NotesCoach = reason
	}
	if uid, err := h.Sportifs.UserIDOf(ctx, res.SportifID); err == nil {
		h.Notifier.Reservation(ctx, uid, kindOf(t), res)
	}

	return c.JSON(http.StatusOK, viewOf(res, time.Now()))
}

func kindOf(t booking.Transition) notify.Kind {
	switch t {
	case booking.TransitionAccept:
		return notify.KindReservationAccepted
	case booking.TransitionRefuse:
		return notify.KindReservationRefused
	case booking.TransitionCancel:
		return notify.KindReservationCancelled
	default:
		return notify.KindReservationCompleted
	}
}

// Cancel cancels a pending or accepted reservation before the session
// starts.  Either party may cancel; who did it and why is recorded
// and the slot returns to the pool.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req reasonReq
	_ = c.Bind(&req)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	a, err := resolveActor(ctx, c, h.Coaches, h.Sportifs)
	if err != nil {
		return writeErr(c, err)
	}

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return writeErr(c, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := h.Reservations.GetByIDTx(ctx, tx, id)
	if err != nil {
		return writeErr(c, err)
	}
	if !booking.CanCancelReservation(a, res) {
		return writeErr(c, repository.ErrForbidden)
	}

	st, err := booking.ParseStatus(res.Status)
	if err != nil {
		return writeErr(c, err)
	}
	start, err := booking.SessionStart(res.SessionDate, res.StartTime, time.Local)
	if err != nil {
		return writeErr(c, err)
	}
	if !booking.CanBeCancelled(st, start, time.Now()) {
		return writeErr(c, booking.ErrInvalidTransition)
	}

	reason := trimNote(req.Reason)
	if err := h.Reservations.CancelTx(ctx, tx, id, res.Status, a.CancelledByTag(), reason); err != nil {
		return writeErr(c, err)
	}
	if err := h.Availability.FreeTx(ctx, tx, res.AvailabilityID); err != nil {
		return writeErr(c, err)
	}

	if err := tx.Commit(); err != nil {
		return writeErr(c, err)
	}
	committed = true

	res.Status = string(booking.StatusAnnulee)
	tag := a.CancelledByTag()
	res.CancelledBy = &tag
	res.CancellationReason = reason

	// Notify the other party, not the one who cancelled.
	var uid uint64
	if a.IsCoach() {
		uid, err = h.Sportifs.UserIDOf(ctx, res.SportifID)
	} else {
		uid, err = h.Coaches.UserIDOf(ctx, res.CoachID)
	}
	if err == nil {
		h.Notifier.Reservation(ctx, uid, notify.KindReservationCancelled, res)
	}

	return c.JSON(http.StatusOK, viewOf(res, time.Now()))
}

// ListCoach lists the authenticated coach's reservations with
// optional status and date range filters.
func (h *ReservationHandler) ListCoach(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := resolveActor(ctx, c, h.Coaches, h.Sportifs)
	if err != nil {
		return writeErr(c, err)
	}
	f := repository.ReservationFilters{
		Status:   c.QueryParam("status"),
		Date:     c.QueryParam("date"),
		FromDate: c.QueryParam("from"),
		ToDate:   c.QueryParam("to"),
	}
	list, err := h.Reservations.ListByCoach(ctx, a.CoachID, f)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": list})
}

// ListPending lists the coach's requests awaiting a decision.
func (h *ReservationHandler) ListPending(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := resolveActor(ctx, c, h.Coaches, h.Sportifs)
	if err != nil {
		return writeErr(c, err)
	}
	list, err := h.Reservations.ListByCoach(ctx, a.CoachID, repository.ReservationFilters{Status: string(booking.StatusEnAttente)})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": list})
}

// Today lists the coach's accepted sessions for the current date.
func (h *ReservationHandler) Today(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := resolveActor(ctx, c, h.Coaches, h.Sportifs)
	if err != nil {
		return writeErr(c, err)
	}
	list, err := h.Reservations.TodaySessions(ctx, a.CoachID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"sessions": list})
}

// ListSportif lists the authenticated sportif's reservations.
func (h *ReservationHandler) ListSportif(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := resolveActor(ctx, c, h.Coaches, h.Sportifs)
	if err != nil {
		return writeErr(c, err)
	}
	list, err := h.Reservations.ListBySportif(ctx, a.SportifID, c.QueryParam("status"))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": list})
}

type noteReq struct {
	Note string `json:"note"`
}

// SetNotes stores the caller's free-form note on a reservation they
// are party to.  The coach and sportif each own a separate note
// column; lifecycle state is untouched.
func (h *ReservationHandler) SetNotes(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req noteReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Note) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "note required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := resolveActor(ctx, c, h.Coaches, h.Sportifs)
	if err != nil {
		return writeErr(c, err)
	}
	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		return writeErr(c, err)
	}
	if !booking.CanViewReservation(a, res) {
		return writeErr(c, repository.ErrForbidden)
	}

	if err := h.Reservations.SetNotes(ctx, id, a.IsCoach(), strings.TrimSpace(req.Note)); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "saved"})
}
