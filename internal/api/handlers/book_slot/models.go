package book_slot

import (
	"time"

	"github.com/mentorweb/MW-SchedulingService/internal/domain"
	bookSlot "github.com/mentorweb/MW-SchedulingService/internal/usecase/book_slot"
)

// BookSlotRequest HTTP request model
type BookSlotRequest struct {
	Notes *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID          int64   `json:"id"`
	SlotID      int64   `json:"slotId"`
	ProgramID   int64   `json:"programId"`
	HostID      int64   `json:"hostId"`
	AttendeeID  int64   `json:"attendeeId"`
	Status      string  `json:"status"`
	ProgramName string  `json:"programName"`
	Date        string  `json:"date"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	Location    *string `json:"physicalLocation,omitempty"`
	MeetingURL  *string `json:"meetingUrl,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookSlot.Response) *AppointmentResponse {
	a := resp.Appointment

	return &AppointmentResponse{
		ID:          a.ID,
		SlotID:      a.SlotID,
		ProgramID:   a.ProgramID,
		HostID:      a.HostID,
		AttendeeID:  a.AttendeeID,
		Status:      string(a.Status),
		ProgramName: a.ProgramName,
		Date:        a.Date.Format(domain.DateFormat),
		StartTime:   a.StartTime.String(),
		EndTime:     a.EndTime.String(),
		Location:    a.PhysicalLocation,
		MeetingURL:  a.MeetingURL,
		Notes:       a.Notes,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   a.UpdatedAt.Format(time.RFC3339),
	}
}
