package model

import "time"

// Notification is an in-app message shown to a user.  Notifications
// are produced as a best-effort side channel of reservation and review
// state changes; a failed insert is logged and never fails the
// operation that triggered it.
//
// Fields:
//  ID            – primary key identifier.
//  UserID        – recipient user account.
//  Title         – short headline.
//  Message       – body text.
//  Type          – category tag (reservation, confirmation, annulation,
//                  avis, systeme).
//  ReferenceID   – id of the related entity (nullable).
//  ReferenceType – kind of the related entity, e.g. "reservation"
//                  or "review" (nullable).
//  IsRead        – whether the recipient has read the notification.
//  CreatedAt     – timestamp of creation.
type Notification struct {
	ID            uint64    // notifications.id
	UserID        uint64    // notifications.user_id
	Title         string    // notifications.title
	Message       string    // notifications.message
	Type          string    // notifications.type
	ReferenceID   *uint64   // notifications.reference_id (nullable)
	ReferenceType *string   // notifications.reference_type (nullable)
	IsRead        bool      // notifications.is_read
	CreatedAt     time.Time // notifications.created_at
}
