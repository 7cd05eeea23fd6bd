package models

import (
	"time"

	"github.com/mentorweb/MW-SchedulingService/internal/domain"
)

// Perspective определяет, чьи записи запрашиваются
type Perspective string

const (
	PerspectiveHost     Perspective = "host"
	PerspectiveAttendee Perspective = "attendee"
)

// Request модели

// GetUserAppointmentsRequest запрос на получение записей пользователя
type GetUserAppointmentsRequest struct {
	Actor       domain.ActorContext
	UserID      int64       // Чьи записи запрашиваются
	Perspective Perspective // host - записи хоста, attendee - записи участника
	ProgramID   *int64      // Фильтр по программе (опционально)
	SortKey     string      // Name | Day | Date | Location | Status; пустая строка - без сортировки
	Descending  bool        // Обратный порядок сортировки
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID         int64  `json:"id"`
	SlotID     int64  `json:"slotId"`
	ProgramID  int64  `json:"programId"`
	HostID     int64  `json:"hostId"`
	AttendeeID int64  `json:"attendeeId"`
	Status     string `json:"status"`

	// Денормализованные данные
	ProgramName      string  `json:"programName"`
	Date             string  `json:"date"`      // "2025-10-15"
	StartTime        string  `json:"startTime"` // "10:00"
	EndTime          string  `json:"endTime"`   // "10:30"
	PhysicalLocation *string `json:"physicalLocation,omitempty"`
	MeetingURL       *string `json:"meetingUrl,omitempty"`
	Notes            *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentBucketsResponse записи пользователя, разложенные по корзинам
// Отмененные записи не попадают ни в одну корзину
type AppointmentBucketsResponse struct {
	Pending  []AppointmentResponse `json:"pending"`  // Ожидают подтверждения хоста
	Upcoming []AppointmentResponse `json:"upcoming"` // Подтверждены и еще не начались
	Past     []AppointmentResponse `json:"past"`     // Завершены, пропущены или уже начались
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		SlotID:             a.SlotID,
		ProgramID:          a.ProgramID,
		HostID:             a.HostID,
		AttendeeID:         a.AttendeeID,
		Status:             string(a.Status),
		ProgramName:        a.ProgramName,
		Date:               a.Date.Format(domain.DateFormat),
		StartTime:          a.StartTime.String(),
		EndTime:            a.EndTime.String(),
		PhysicalLocation:   a.PhysicalLocation,
		MeetingURL:         a.MeetingURL,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) []AppointmentResponse {
	resp := make([]AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		if converted := FromDomainAppointment(a); converted != nil {
			resp = append(resp, *converted)
		}
	}
	return resp
}
