// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationEvent is published on every reservation state change.
// It contains enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
// Kind is one of reservation.requested, reservation.accepted,
// reservation.refused, reservation.cancelled, reservation.completed.
type ReservationEvent struct {
	ReservationID   uint64 `json:"reservation_id"`
	Kind            string `json:"kind"`
	RecipientUserID uint64 `json:"recipient_user_id"`
	SportifID       uint64 `json:"sportif_id"`
	CoachID         uint64 `json:"coach_id"`
	SessionDate     string `json:"session_date"`
	StartTime       string `json:"start_time"`
	Status          string `json:"status"`
	OccurredAt      string `json:"occurred_at"`
}
