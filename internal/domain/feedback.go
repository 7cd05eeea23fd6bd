package domain

import "time"

// Feedback represents post-appointment feedback left by one of the parties
// At most one record exists per (appointment, author role) pair
type Feedback struct {
	ID            int64
	AppointmentID int64
	AuthorRole    Role
	Rating        int
	Notes         *string

	CreatedAt time.Time
}
