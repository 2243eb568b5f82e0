// Package notify fans notifications out of reservation and review
// state changes.  Dispatch is strictly best-effort: every sink failure
// is logged and swallowed, so a broken notification store or broker
// can never fail or roll back the transition that triggered it.
package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sportsconnect/sportsconnect-api/internal/model"
	"github.com/sportsconnect/sportsconnect-api/internal/queue"
)

// Kind identifies the state change being announced.
type Kind string

const (
	KindReservationRequested Kind = "reservation.requested"
	KindReservationAccepted  Kind = "reservation.accepted"
	KindReservationRefused   Kind = "reservation.refused"
	KindReservationCancelled Kind = "reservation.cancelled"
	KindReservationCompleted Kind = "reservation.completed"
	KindReviewReceived       Kind = "review.received"
)

// Store is the slice of the notification repository the dispatcher
// needs.  Declared here so tests can substitute a mock.
type Store interface {
	Create(ctx context.Context, n *model.Notification) error
}

// Publisher pushes an event to the message broker.  The production
// value is queue_publisher.PublishReservationEvent.
type Publisher func(ctx context.Context, ev queue.ReservationEvent) error

// Dispatcher writes an in-app notification row and publishes a broker
// event for each call.  Both sinks are attempted independently; a
// failure in one does not stop the other.
type Dispatcher struct {
	store   Store
	publish Publisher
}

// NewDispatcher builds a Dispatcher.  publish may be nil to disable
// broker publishing (e.g. in environments without RabbitMQ).
func NewDispatcher(store Store, publish Publisher) *Dispatcher {
	return &Dispatcher{store: store, publish: publish}
}

// template returns the notification type tag, title and message for a
// reservation kind.  Wording mirrors what clients already display.
func template(kind Kind, sessionDate string) (typ, title, message string) {
	switch kind {
	case KindReservationRequested:
		return "reservation", "Nouvelle demande de réservation",
			fmt.Sprintf("Vous avez reçu une nouvelle demande de séance pour le %s", sessionDate)
	case KindReservationAccepted:
		return "confirmation", "Réservation acceptée",
			fmt.Sprintf("Votre séance du %s a été acceptée!", sessionDate)
	case KindReservationRefused:
		return "annulation", "Réservation refusée",
			fmt.Sprintf("Votre demande de séance du %s a été refusée.", sessionDate)
	case KindReservationCancelled:
		return "annulation", "Séance annulée",
			fmt.Sprintf("La séance du %s a été annulée.", sessionDate)
	case KindReservationCompleted:
		return "confirmation", "Séance terminée",
			fmt.Sprintf("Votre séance du %s est terminée. Vous pouvez laisser un avis.", sessionDate)
	}
	return "systeme", "Notification", ""
}

// Reservation announces a reservation state change to the recipient
// user.  It never returns an error; failures are logged.
func (d *Dispatcher) Reservation(ctx context.Context, recipientUserID uint64, kind Kind, res *model.Reservation) {
	typ, title, message := template(kind, res.SessionDate)
	refType := "reservation"
	refID := res.ID
	n := &model.Notification{
		UserID:        recipientUserID,
		Title:         title,
		Message:       message,
		Type:          typ,
		ReferenceID:   &refID,
		ReferenceType: &refType,
	}
	if err := d.store.Create(ctx, n); err != nil {
		log.Printf("notify: store notification failed (reservation %d, kind %s): %v", res.ID, kind, err)
	}
	if d.publish == nil {
		return
	}
	ev := queue.ReservationEvent{
		ReservationID:   res.ID,
		Kind:            string(kind),
		RecipientUserID: recipientUserID,
		SportifID:       res.SportifID,
		CoachID:         res.CoachID,
		SessionDate:     res.SessionDate,
		StartTime:       res.StartTime,
		Status:          res.Status,
		OccurredAt:      time.Now().UTC().Format(time.RFC3339),
	}
	if err := d.publish(ctx, ev); err != nil {
		log.Printf("notify: publish event failed (reservation %d, kind %s): %v", res.ID, kind, err)
	}
}

// ReviewReceived announces a new review to the coach's user account.
// It never returns an error; failures are logged.
func (d *Dispatcher) ReviewReceived(ctx context.Context, coachUserID, reviewID uint64, rating uint8) {
	refType := "review"
	refID := reviewID
	n := &model.Notification{
		UserID:        coachUserID,
		Title:         "Nouvel avis reçu",
		Message:       fmt.Sprintf("Vous avez reçu un avis %d étoiles!", rating),
		Type:          "avis",
		ReferenceID:   &refID,
		ReferenceType: &refType,
	}
	if err := d.store.Create(ctx, n); err != nil {
		log.Printf("notify: store notification failed (review %d): %v", reviewID, err)
	}
}
