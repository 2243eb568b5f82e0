package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/sportsconnect/sportsconnect-api/internal/model"
	"github.com/sportsconnect/sportsconnect-api/internal/queue"
)

type mockStore struct {
	created []*model.Notification
	err     error
}

func (m *mockStore) Create(ctx context.Context, n *model.Notification) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, n)
	return nil
}

func sampleReservation() *model.Reservation {
	return &model.Reservation{
		ID:          42,
		SportifID:   7,
		CoachID:     3,
		SessionDate: "2026-04-01",
		StartTime:   "10:00:00",
		Status:      "en_attente",
	}
}

func TestReservationWritesStoreAndPublishes(t *testing.T) {
	store := &mockStore{}
	var published []queue.ReservationEvent
	d := NewDispatcher(store, func(ctx context.Context, ev queue.ReservationEvent) error {
		published = append(published, ev)
		return nil
	})

	d.Reservation(context.Background(), 99, KindReservationRequested, sampleReservation())

	if len(store.created) != 1 {
		t.Fatalf("stored notifications = %d, want 1", len(store.created))
	}
	n := store.created[0]
	if n.UserID != 99 {
		t.Errorf("notification UserID = %d, want 99", n.UserID)
	}
	if n.Type != "reservation" {
		t.Errorf("notification Type = %q, want %q", n.Type, "reservation")
	}
	if n.ReferenceID == nil || *n.ReferenceID != 42 {
		t.Errorf("notification ReferenceID = %v, want 42", n.ReferenceID)
	}

	if len(published) != 1 {
		t.Fatalf("published events = %d, want 1", len(published))
	}
	ev := published[0]
	if ev.ReservationID != 42 || ev.RecipientUserID != 99 {
		t.Errorf("event = %+v, want reservation 42 for user 99", ev)
	}
	if ev.Kind != string(KindReservationRequested) {
		t.Errorf("event Kind = %q, want %q", ev.Kind, KindReservationRequested)
	}
}

func TestReservationStoreFailureStillPublishes(t *testing.T) {
	store := &mockStore{err: errors.New("db down")}
	var published int
	d := NewDispatcher(store, func(ctx context.Context, ev queue.ReservationEvent) error {
		published++
		return nil
	})

	// Must not panic or surface the store error.
	d.Reservation(context.Background(), 99, KindReservationAccepted, sampleReservation())

	if published != 1 {
		t.Errorf("published events = %d, want 1 despite store failure", published)
	}
}

func TestReservationPublishFailureStillStores(t *testing.T) {
	store := &mockStore{}
	d := NewDispatcher(store, func(ctx context.Context, ev queue.ReservationEvent) error {
		return errors.New("broker down")
	})

	d.Reservation(context.Background(), 99, KindReservationCancelled, sampleReservation())

	if len(store.created) != 1 {
		t.Errorf("stored notifications = %d, want 1 despite publish failure", len(store.created))
	}
}

func TestReservationNilPublisher(t *testing.T) {
	store := &mockStore{}
	d := NewDispatcher(store, nil)

	d.Reservation(context.Background(), 99, KindReservationCompleted, sampleReservation())

	if len(store.created) != 1 {
		t.Errorf("stored notifications = %d, want 1 with nil publisher", len(store.created))
	}
}

func TestTemplateWording(t *testing.T) {
	tests := []struct {
		kind      Kind
		wantType  string
		wantTitle string
	}{
		{KindReservationRequested, "reservation", "Nouvelle demande de réservation"},
		{KindReservationAccepted, "confirmation", "Réservation acceptée"},
		{KindReservationRefused, "annulation", "Réservation refusée"},
		{KindReservationCancelled, "annulation", "Séance annulée"},
		{KindReservationCompleted, "confirmation", "Séance terminée"},
	}
	for _, tt := range tests {
		typ, title, msg := template(tt.kind, "2026-04-01")
		if typ != tt.wantType {
			t.Errorf("template(%s) type = %q, want %q", tt.kind, typ, tt.wantType)
		}
		if title != tt.wantTitle {
			t.Errorf("template(%s) title = %q, want %q", tt.kind, title, tt.wantTitle)
		}
		if msg == "" {
			t.Errorf("template(%s) message is empty", tt.kind)
		}
	}
}

func TestReviewReceived(t *testing.T) {
	store := &mockStore{}
	d := NewDispatcher(store, nil)

	d.ReviewReceived(context.Background(), 5, 77, 4)

	if len(store.created) != 1 {
		t.Fatalf("stored notifications = %d, want 1", len(store.created))
	}
	n := store.created[0]
	if n.UserID != 5 {
		t.Errorf("notification UserID = %d, want 5", n.UserID)
	}
	if n.Type != "avis" {
		t.Errorf("notification Type = %q, want %q", n.Type, "avis")
	}
	if n.ReferenceID == nil || *n.ReferenceID != 77 {
		t.Errorf("notification ReferenceID = %v, want 77", n.ReferenceID)
	}
}
