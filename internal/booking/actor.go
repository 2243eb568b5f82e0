package booking

import "github.com/sportsconnect/sportsconnect-api/internal/model"

// Role values stored in users.role and carried in JWT claims.
const (
	RoleCoach   = "COACH"
	RoleSportif = "SPORTIF"
)

// Actor is the authenticated caller of a core operation, resolved by
// the auth middleware and profile lookup.  Exactly one of CoachID or
// SportifID is non-zero depending on Role.  Operations receive the
// actor as an explicit parameter; there is no ambient request state.
type Actor struct {
	UserID    uint64
	Role      string
	CoachID   uint64
	SportifID uint64
}

// IsCoach reports whether the actor holds the coach role.
func (a Actor) IsCoach() bool { return a.Role == RoleCoach }

// IsSportif reports whether the actor holds the sportif role.
func (a Actor) IsSportif() bool { return a.Role == RoleSportif }

// CanViewReservation reports whether the actor is party to the
// reservation: the owning coach or the owning sportif.  It never
// errors; callers translate false into a 403 response.
func CanViewReservation(a Actor, r *model.Reservation) bool {
	switch a.Role {
	case RoleCoach:
		return a.CoachID != 0 && a.CoachID == r.CoachID
	case RoleSportif:
		return a.SportifID != 0 && a.SportifID == r.SportifID
	}
	return false
}

// CanDecideReservation reports whether the actor may accept, refuse or
// complete the reservation.  Only the owning coach has decision
// rights; a sportif never does, regardless of ownership.
func CanDecideReservation(a Actor, r *model.Reservation) bool {
	return a.Role == RoleCoach && a.CoachID != 0 && a.CoachID == r.CoachID
}

// CanCancelReservation reports whether the actor may cancel the
// reservation.  Either owning party may cancel while the status and
// session time allow it; the time/status window itself is checked by
// CanBeCancelled.
func CanCancelReservation(a Actor, r *model.Reservation) bool {
	return CanViewReservation(a, r)
}

// CancelledByTag returns the value recorded in cancelled_by for a
// cancellation performed by this actor.
func (a Actor) CancelledByTag() string {
	if a.Role == RoleCoach {
		return "coach"
	}
	return "sportif"
}

// CanMutateSlot reports whether the actor may create, delete or toggle
// the given availability slot.  Mutation is reserved to the owning
// coach; read access to free slots is public and not guarded here.
func CanMutateSlot(a Actor, slot *model.Availability) bool {
	return a.Role == RoleCoach && a.CoachID != 0 && a.CoachID == slot.CoachID
}
