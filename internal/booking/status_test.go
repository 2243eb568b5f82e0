package booking

import (
	"errors"
	"testing"
	"time"
)

var allStatuses = []Status{StatusEnAttente, StatusAcceptee, StatusRefusee, StatusAnnulee, StatusTerminee}
var allTransitions = []Transition{TransitionAccept, TransitionRefuse, TransitionCancel, TransitionComplete}

func TestNextFullMatrix(t *testing.T) {
	// Every (state, transition) pair has an explicit expectation;
	// an empty want means the transition must be rejected.
	want := map[Status]map[Transition]Status{
		StatusEnAttente: {
			TransitionAccept: StatusAcceptee,
			TransitionRefuse: StatusRefusee,
			TransitionCancel: StatusAnnulee,
		},
		StatusAcceptee: {
			TransitionCancel:   StatusAnnulee,
			TransitionComplete: StatusTerminee,
		},
		StatusRefusee:  {},
		StatusAnnulee:  {},
		StatusTerminee: {},
	}

	for _, s := range allStatuses {
		for _, tr := range allTransitions {
			got, err := s.Next(tr)
			exp, ok := want[s][tr]
			if !ok {
				if err == nil {
					t.Errorf("%s.Next(%s) = %s, want ErrInvalidTransition", s, tr, got)
				} else if !errors.Is(err, ErrInvalidTransition) {
					t.Errorf("%s.Next(%s) error = %v, want ErrInvalidTransition", s, tr, err)
				}
				if s.CanTransition(tr) {
					t.Errorf("%s.CanTransition(%s) = true, want false", s, tr)
				}
				continue
			}
			if err != nil {
				t.Errorf("%s.Next(%s) error = %v, want %s", s, tr, err, exp)
				continue
			}
			if got != exp {
				t.Errorf("%s.Next(%s) = %s, want %s", s, tr, got, exp)
			}
			if !s.CanTransition(tr) {
				t.Errorf("%s.CanTransition(%s) = false, want true", s, tr)
			}
		}
	}
}

func TestIsTerminal(t *testing.T) {
	want := map[Status]bool{
		StatusEnAttente: false,
		StatusAcceptee:  false,
		StatusRefusee:   true,
		StatusAnnulee:   true,
		StatusTerminee:  true,
	}
	for s, exp := range want {
		if got := s.IsTerminal(); got != exp {
			t.Errorf("%s.IsTerminal() = %v, want %v", s, got, exp)
		}
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range allStatuses {
		got, err := ParseStatus(string(s))
		if err != nil || got != s {
			t.Errorf("ParseStatus(%q) = %v, %v, want %v, nil", s, got, err, s)
		}
	}
	for _, bad := range []string{"", "pending", "ACCEPTEE", "annule"} {
		if _, err := ParseStatus(bad); err == nil {
			t.Errorf("ParseStatus(%q) error = nil, want error", bad)
		}
	}
}

func TestFreesSlot(t *testing.T) {
	want := map[Transition]bool{
		TransitionAccept:   false,
		TransitionRefuse:   true,
		TransitionCancel:   true,
		TransitionComplete: false,
	}
	for tr, exp := range want {
		if got := FreesSlot(tr); got != exp {
			t.Errorf("FreesSlot(%s) = %v, want %v", tr, got, exp)
		}
	}
}

func TestSessionStart(t *testing.T) {
	got, err := SessionStart("2026-03-15", "09:30:00", time.UTC)
	if err != nil {
		t.Fatalf("SessionStart returned error: %v", err)
	}
	want := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("SessionStart = %v, want %v", got, want)
	}

	if _, err := SessionStart("15/03/2026", "09:30:00", time.UTC); err == nil {
		t.Errorf("SessionStart with bad date: error = nil, want error")
	}
}

func TestCanBeCancelled(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		s     Status
		start time.Time
		want  bool
	}{
		{name: "pending and future", s: StatusEnAttente, start: now.Add(time.Hour), want: true},
		{name: "accepted and future", s: StatusAcceptee, start: now.Add(24 * time.Hour), want: true},
		{name: "pending but already started", s: StatusEnAttente, start: now.Add(-time.Minute), want: false},
		{name: "accepted starting exactly now", s: StatusAcceptee, start: now, want: false},
		{name: "refused", s: StatusRefusee, start: now.Add(time.Hour), want: false},
		{name: "cancelled", s: StatusAnnulee, start: now.Add(time.Hour), want: false},
		{name: "completed", s: StatusTerminee, start: now.Add(time.Hour), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanBeCancelled(tt.s, tt.start, now); got != tt.want {
				t.Errorf("CanBeCancelled(%s, %v) = %v, want %v", tt.s, tt.start, got, tt.want)
			}
		})
	}
}

func TestIsCompletable(t *testing.T) {
	for _, s := range allStatuses {
		want := s == StatusTerminee
		if got := IsCompletable(s); got != want {
			t.Errorf("IsCompletable(%s) = %v, want %v", s, got, want)
		}
	}
}
