package domain

import (
	"time"

	"github.com/mentorweb/MW-SchedulingService/pkg/types"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusReserved  AppointmentStatus = "reserved"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
	StatusMissed    AppointmentStatus = "missed"
)

// Appointment represents a booking of exactly one slot
type Appointment struct {
	ID         int64
	SlotID     int64
	ProgramID  int64
	HostID     int64
	AttendeeID int64
	Status     AppointmentStatus

	// Denormalized slot/program data for history
	ProgramName      string
	Date             time.Time
	StartTime        types.TimeString
	EndTime          types.TimeString
	PhysicalLocation *string
	MeetingURL       *string
	Notes            *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if no further transition is defined for the status
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCancelled ||
		a.Status == StatusCompleted ||
		a.Status == StatusMissed
}

// IsActive returns true if the appointment still holds its slot
// Cancelled appointments release the slot, terminal completed/missed keep it for history
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// StartsAt returns the scheduled start as a point in time
func (a *Appointment) StartsAt() (time.Time, error) {
	return a.StartTime.At(a.Date)
}

// EndsAt returns the scheduled end as a point in time
func (a *Appointment) EndsAt() (time.Time, error) {
	return a.EndTime.At(a.Date)
}

// AttendeeAppointmentsFilter фильтр для получения записей участника
type AttendeeAppointmentsFilter struct {
	AttendeeID int64
	ProgramID  *int64             // Фильтр по программе (опционально)
	Status     *AppointmentStatus // Фильтр по статусу (опционально)
}

// HostAppointmentsFilter фильтр для получения записей хоста
type HostAppointmentsFilter struct {
	HostID    int64
	ProgramID *int64             // Фильтр по программе (опционально)
	Status    *AppointmentStatus // Фильтр по статусу (опционально)
}
