package domain

import "time"

// EventType тип события жизненного цикла
type EventType string

const (
	EventAppointmentCreated EventType = "appointment.created"
	EventStatusChanged      EventType = "appointment.status_changed"
	EventFeedbackRecorded   EventType = "feedback.recorded"
)

// Event is a discrete lifecycle event emitted after a successful operation
// Consumers (notifications, exports) receive events at least once;
// the core never waits for consumer completion
type Event struct {
	Type          EventType
	AppointmentID int64
	SlotID        int64
	ProgramID     int64
	HostID        int64
	AttendeeID    int64
	FromStatus    AppointmentStatus // заполнен только для status_changed
	ToStatus      AppointmentStatus // заполнен только для status_changed
	OccurredAt    time.Time
}
