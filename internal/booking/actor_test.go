package booking

import (
	"testing"

	"github.com/sportsconnect/sportsconnect-api/internal/model"
)

func TestCanViewReservation(t *testing.T) {
	res := &model.Reservation{ID: 1, CoachID: 10, SportifID: 20}
	tests := []struct {
		name string
		a    Actor
		want bool
	}{
		{name: "owning coach", a: Actor{UserID: 1, Role: RoleCoach, CoachID: 10}, want: true},
		{name: "other coach", a: Actor{UserID: 2, Role: RoleCoach, CoachID: 11}, want: false},
		{name: "owning sportif", a: Actor{UserID: 3, Role: RoleSportif, SportifID: 20}, want: true},
		{name: "other sportif", a: Actor{UserID: 4, Role: RoleSportif, SportifID: 21}, want: false},
		{name: "unknown role", a: Actor{UserID: 5, Role: "ADMIN"}, want: false},
		{name: "coach with zero profile id", a: Actor{UserID: 6, Role: RoleCoach}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanViewReservation(tt.a, res); got != tt.want {
				t.Errorf("CanViewReservation(%+v) = %v, want %v", tt.a, got, tt.want)
			}
		})
	}
}

func TestCanDecideReservation(t *testing.T) {
	res := &model.Reservation{ID: 1, CoachID: 10, SportifID: 20}

	if !CanDecideReservation(Actor{Role: RoleCoach, CoachID: 10}, res) {
		t.Errorf("owning coach cannot decide, want true")
	}
	if CanDecideReservation(Actor{Role: RoleCoach, CoachID: 11}, res) {
		t.Errorf("other coach can decide, want false")
	}
	// The owning sportif may view but never decide.
	sp := Actor{Role: RoleSportif, SportifID: 20}
	if !CanViewReservation(sp, res) {
		t.Fatalf("owning sportif cannot view, want true")
	}
	if CanDecideReservation(sp, res) {
		t.Errorf("sportif can decide, want false")
	}
}

func TestCanCancelReservation(t *testing.T) {
	res := &model.Reservation{ID: 1, CoachID: 10, SportifID: 20}

	if !CanCancelReservation(Actor{Role: RoleCoach, CoachID: 10}, res) {
		t.Errorf("owning coach cannot cancel, want true")
	}
	if !CanCancelReservation(Actor{Role: RoleSportif, SportifID: 20}, res) {
		t.Errorf("owning sportif cannot cancel, want true")
	}
	if CanCancelReservation(Actor{Role: RoleSportif, SportifID: 99}, res) {
		t.Errorf("unrelated sportif can cancel, want false")
	}
}

func TestCancelledByTag(t *testing.T) {
	if got := (Actor{Role: RoleCoach, CoachID: 10}).CancelledByTag(); got != "coach" {
		t.Errorf("CancelledByTag() = %q, want %q", got, "coach")
	}
	if got := (Actor{Role: RoleSportif, SportifID: 20}).CancelledByTag(); got != "sportif" {
		t.Errorf("CancelledByTag() = %q, want %q", got, "sportif")
	}
}

func TestCanMutateSlot(t *testing.T) {
	slot := &model.Availability{ID: 1, CoachID: 10}

	if !CanMutateSlot(Actor{Role: RoleCoach, CoachID: 10}, slot) {
		t.Errorf("owning coach cannot mutate slot, want true")
	}
	if CanMutateSlot(Actor{Role: RoleCoach, CoachID: 11}, slot) {
		t.Errorf("other coach can mutate slot, want false")
	}
	if CanMutateSlot(Actor{Role: RoleSportif, SportifID: 20}, slot) {
		t.Errorf("sportif can mutate slot, want false")
	}
}
