package domain

// Role represents the party type of an actor
type Role string

const (
	RoleHost     Role = "host"
	RoleAttendee Role = "attendee"
	RoleAdmin    Role = "admin"
)

// AccountStatus статус учетной записи, приходит от identity-сервиса
type AccountStatus string

const (
	AccountActive   AccountStatus = "active"
	AccountPending  AccountStatus = "pending"
	AccountInactive AccountStatus = "inactive"
)

// ActorContext identifies the already-authenticated actor of a core operation
// Passed explicitly into every role-gated call, never held as process state
type ActorContext struct {
	UserID        int64
	Role          Role
	AccountStatus AccountStatus
}

// IsValidRole returns true for one of the three known roles
func IsValidRole(r Role) bool {
	return r == RoleHost || r == RoleAttendee || r == RoleAdmin
}

// CanActAsHost returns true if the actor may perform host-gated actions
// Admins pass every host gate
func (a ActorContext) CanActAsHost() bool {
	return a.Role == RoleHost || a.Role == RoleAdmin
}

// CanActAsAttendee returns true if the actor may perform attendee-gated actions
func (a ActorContext) CanActAsAttendee() bool {
	return a.Role == RoleAttendee || a.Role == RoleAdmin
}
