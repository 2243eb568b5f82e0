package model

import "time"

// Availability is a bookable time slot published by a coach for a
// given calendar date.  The [StartTime, EndTime) interval is half-open:
// a slot ending at 11:00 does not overlap a slot starting at 11:00.
// For one coach and date, no two slots may overlap regardless of their
// booked state; the repository enforces this inside the insert
// transaction.
//
// A slot is referenced by at most one reservation at a time.  Booking
// flips IsBooked to true; refusing or cancelling the owning
// reservation flips it back.  Booked slots may never be deleted
// directly.
//
// Fields:
//  ID           – primary key identifier.
//  CoachID      – coach who owns the slot.
//  Date         – calendar date in "2006-01-02" form.
//  StartTime    – inclusive start in "15:04:05" form.
//  EndTime      – exclusive end in "15:04:05" form.
//  IsBooked     – whether a reservation currently consumes the slot.
//  IsRecurring  – whether the slot was generated from a weekly pattern.
//  RecurringDay – weekday of the pattern (nullable).
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Availability struct {
	ID           uint64    // availabilities.id
	CoachID      uint64    // availabilities.coach_id
	Date         string    // availabilities.available_date
	StartTime    string    // availabilities.start_time
	EndTime      string    // availabilities.end_time
	IsBooked     bool      // availabilities.is_booked
	IsRecurring  bool      // availabilities.is_recurring
	RecurringDay *string   // availabilities.recurring_day (nullable)
	CreatedAt    time.Time // availabilities.created_at
	UpdatedAt    time.Time // availabilities.updated_at
}
