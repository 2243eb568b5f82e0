package model

import "time"

// Review is the feedback a sportif leaves after a completed session.
// Exactly one review may exist per reservation, and only reservations
// in the terminee state unlock review creation.
//
// Fields:
//  ID            – primary key identifier.
//  ReservationID – completed reservation this review refers to.
//  SportifID     – author of the review.
//  CoachID       – coach being reviewed.
//  Rating        – star rating between 1 and 5.
//  Comment       – free-form review body (nullable).
//  CoachResponse – optional public reply by the coach (nullable).
//  IsVisible     – moderation flag; hidden reviews are excluded from
//                  public listings and rating averages.
//  CreatedAt     – timestamp of creation.
//  UpdatedAt     – timestamp of last update.
type Review struct {
	ID            uint64    // reviews.id
	ReservationID uint64    // reviews.reservation_id
	SportifID     uint64    // reviews.sportif_id
	CoachID       uint64    // reviews.coach_id
	Rating        uint8     // reviews.rating
	Comment       *string   // reviews.comment (nullable)
	CoachResponse *string   // reviews.coach_response (nullable)
	IsVisible     bool      // reviews.is_visible
	CreatedAt     time.Time // reviews.created_at
	UpdatedAt     time.Time // reviews.updated_at
}
