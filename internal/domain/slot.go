package domain

import (
	"time"

	"github.com/mentorweb/MW-SchedulingService/pkg/types"
)

// SlotStatus represents the availability status of a slot
type SlotStatus string

const (
	SlotStatusOpen     SlotStatus = "open"
	SlotStatusReserved SlotStatus = "reserved"
	SlotStatusInactive SlotStatus = "inactive"
)

// Slot represents a single bookable time unit published by a host
type Slot struct {
	ID               int64
	ProgramID        int64
	HostID           int64
	Date             time.Time // Calendar date, time part zeroed
	StartTime        types.TimeString
	EndTime          types.TimeString
	DurationMinutes  int
	PhysicalLocation *string
	MeetingURL       *string
	IsDropin         bool
	Status           SlotStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable returns true if the slot can accept a booking
func (s *Slot) IsBookable() bool {
	return s.Status == SlotStatusOpen
}

// StartsAt returns the slot start as a point in time
func (s *Slot) StartsAt() (time.Time, error) {
	return s.StartTime.At(s.Date)
}

// EndsAt returns the slot end as a point in time
func (s *Slot) EndsAt() (time.Time, error) {
	return s.EndTime.At(s.Date)
}

// IsInPast returns true if the slot's start has already passed
func (s *Slot) IsInPast(now time.Time) bool {
	startsAt, err := s.StartsAt()
	if err != nil {
		return false
	}
	return startsAt.Before(now)
}

// ProgramSlotsFilter фильтр для получения слотов программы
type ProgramSlotsFilter struct {
	ProgramID int64
	StartDate *time.Time  // Начало периода (опционально)
	EndDate   *time.Time  // Конец периода (опционально)
	Status    *SlotStatus // Фильтр по статусу (опционально)
}
