// Package booking contains the pure domain rules of the reservation
// lifecycle: the status state machine, the slot overlap test and the
// authorization guard.  Nothing in this package touches the database
// or the clock directly; time is always an explicit argument so the
// rules stay deterministic under test.
package booking

import (
	"errors"
	"fmt"
	"time"
)

// Status is the lifecycle state of a reservation.  The tags are the
// exact strings stored in the reservations.status column.
type Status string

const (
	StatusEnAttente Status = "en_attente" // initial, awaiting coach decision
	StatusAcceptee  Status = "acceptee"   // confirmed by the coach
	StatusRefusee   Status = "refusee"    // rejected by the coach (terminal)
	StatusAnnulee   Status = "annulee"    // cancelled by either party (terminal)
	StatusTerminee  Status = "terminee"   // session completed (terminal)
)

// Transition names a mutation of the reservation state machine.
type Transition string

const (
	TransitionAccept   Transition = "accept"
	TransitionRefuse   Transition = "refuse"
	TransitionCancel   Transition = "cancel"
	TransitionComplete Transition = "complete"
)

// ErrInvalidTransition is returned when a transition is attempted from
// a state that does not allow it.  Handlers translate it into a 409
// response; it is distinct from authorization failures.
var ErrInvalidTransition = errors.New("invalid reservation state transition")

// ParseStatus converts a stored status tag into a Status.  Unknown
// tags are reported as an error rather than silently accepted so that
// a corrupt row cannot drive the state machine.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusEnAttente, StatusAcceptee, StatusRefusee, StatusAnnulee, StatusTerminee:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown reservation status %q", s)
}

// IsTerminal reports whether no further transition may leave the state.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusRefusee, StatusAnnulee, StatusTerminee:
		return true
	}
	return false
}

// Next returns the status a transition leads to.  The second return
// value is ErrInvalidTransition when the transition is not allowed
// from the current state.  The switch is exhaustive over the five
// states so that adding a status forces this table to be revisited.
func (s Status) Next(t Transition) (Status, error) {
	switch s {
	case StatusEnAttente:
		switch t {
		case TransitionAccept:
			return StatusAcceptee, nil
		case TransitionRefuse:
			return StatusRefusee, nil
		case TransitionCancel:
			return StatusAnnulee, nil
		}
	case StatusAcceptee:
		switch t {
		case TransitionCancel:
			return StatusAnnulee, nil
		case TransitionComplete:
			return StatusTerminee, nil
		}
	case StatusRefusee, StatusAnnulee, StatusTerminee:
		// terminal states accept nothing
	}
	return "", fmt.Errorf("%w: %s from %s", ErrInvalidTransition, t, s)
}

// CanTransition reports whether t is allowed from s.
func (s Status) CanTransition(t Transition) bool {
	_, err := s.Next(t)
	return err == nil
}

// FreesSlot reports whether taking transition t must release the
// availability slot consumed by the reservation.  Refusal and
// cancellation return the slot to the pool; completion does not.
func FreesSlot(t Transition) bool {
	return t == TransitionRefuse || t == TransitionCancel
}

// SessionStart combines a session date ("2006-01-02") and start time
// ("15:04:05") into a single timestamp in the given location.  It is
// the datetime compared against "now" for the cancellation window.
func SessionStart(date, startTime string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation("2006-01-02 15:04:05", date+" "+startTime, loc)
}

// CanBeCancelled is the standalone cancellation predicate: the
// reservation must still be pending or accepted and the session must
// start strictly in the future at the moment of the call.  It is
// read-only so callers can preview the affordance without attempting
// the mutation.
func CanBeCancelled(s Status, sessionStart, now time.Time) bool {
	if s != StatusEnAttente && s != StatusAcceptee {
		return false
	}
	return sessionStart.After(now)
}

// IsCompletable reports whether a reservation in status s gates
// downstream review and invoice creation.  Consumers should use this
// instead of re-deriving terminal-state rules.
func IsCompletable(s Status) bool {
	return s == StatusTerminee
}
