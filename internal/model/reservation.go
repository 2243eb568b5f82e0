package model

import "time"

// Reservation records a sportif's booking of one availability slot.
// The session date and time window are copied from the slot when the
// reservation is created and never change afterwards, so later slot
// mutations cannot rewrite the history of a booking.
//
// Status moves through a fixed lifecycle owned by the booking package:
// en_attente -> acceptee -> terminee, with refusee reachable from
// en_attente and annulee reachable from either non-terminal state.
//
// Fields:
//  ID                 – primary key identifier.
//  SportifID          – sportif who requested the session.
//  CoachID            – coach whose slot was consumed.
//  AvailabilityID     – the slot consumed by this reservation.
//  SportID            – sport being taught.
//  SessionDate        – session date ("2006-01-02"), copied from the slot.
//  StartTime          – session start ("15:04:05"), copied from the slot.
//  EndTime            – session end ("15:04:05"), copied from the slot.
//  Price              – agreed price for the session.
//  Status             – lifecycle state (see booking.Status).
//  NotesSportif       – free-form note from the sportif (nullable).
//  NotesCoach         – free-form note from the coach (nullable).
//  CancelledBy        – "sportif" or "coach" once cancelled (nullable).
//  CancellationReason – optional reason recorded at cancel time (nullable).
//  CreatedAt          – timestamp of creation.
//  UpdatedAt          – timestamp of last update.
type Reservation struct {
	ID                 uint64    // reservations.id
	SportifID          uint64    // reservations.sportif_id
	CoachID            uint64    // reservations.coach_id
	AvailabilityID     uint64    // reservations.availability_id
	SportID            uint64    // reservations.sport_id
	SessionDate        string    // reservations.session_date
	StartTime          string    // reservations.start_time
	EndTime            string    // reservations.end_time
	Price              float64   // reservations.price
	Status             string    // reservations.status
	NotesSportif       *string   // reservations.notes_sportif (nullable)
	NotesCoach         *string   // reservations.notes_coach (nullable)
	CancelledBy        *string   // reservations.cancelled_by (nullable)
	CancellationReason *string   // reservations.cancellation_reason (nullable)
	CreatedAt          time.Time // reservations.created_at
	UpdatedAt          time.Time // reservations.updated_at
}
