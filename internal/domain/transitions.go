package domain

// TimingGuard ограничение по времени для перехода
type TimingGuard int

const (
	// GuardNone переход не зависит от времени слота
	GuardNone TimingGuard = iota
	// GuardBeforeStart переход разрешен только до начала слота
	GuardBeforeStart
	// GuardAfterEnd переход разрешен только после окончания слота
	GuardAfterEnd
)

// Transition is a single allowed edge in the appointment state machine
type Transition struct {
	From  AppointmentStatus
	To    AppointmentStatus
	Roles []Role // roles allowed to perform the transition; admin passes every gate
	Guard TimingGuard
}

// transitionsTable is the exhaustive list of legal edges
// Any (from, to) pair not listed is an illegal transition
var transitionsTable = []Transition{
	// Host approves a pending request
	{From: StatusPending, To: StatusReserved, Roles: []Role{RoleHost}, Guard: GuardNone},

	// Either party backs out of a pending request, no timing constraint:
	// nothing was confirmed yet
	{From: StatusPending, To: StatusCancelled, Roles: []Role{RoleHost, RoleAttendee}, Guard: GuardNone},

	// Either party cancels a confirmed appointment, only before it starts
	{From: StatusReserved, To: StatusCancelled, Roles: []Role{RoleHost, RoleAttendee}, Guard: GuardBeforeStart},

	// Host records the outcome, only after the scheduled end
	{From: StatusReserved, To: StatusCompleted, Roles: []Role{RoleHost}, Guard: GuardAfterEnd},
	{From: StatusReserved, To: StatusMissed, Roles: []Role{RoleHost}, Guard: GuardAfterEnd},
}

// TransitionFor returns the allowed transition for a (from, to) pair
func TransitionFor(from, to AppointmentStatus) (Transition, bool) {
	for _, tr := range transitionsTable {
		if tr.From == from && tr.To == to {
			return tr, true
		}
	}
	return Transition{}, false
}

// AllowsRole returns true if the given role may perform the transition
func (t Transition) AllowsRole(role Role) bool {
	if role == RoleAdmin {
		return true
	}
	for _, r := range t.Roles {
		if r == role {
			return true
		}
	}
	return false
}
