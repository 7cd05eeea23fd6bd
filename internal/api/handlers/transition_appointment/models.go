package transition_appointment

import (
	"time"

	"github.com/mentorweb/MW-SchedulingService/internal/domain"
	transitionAppointment "github.com/mentorweb/MW-SchedulingService/internal/usecase/transition_appointment"
)

// TransitionAppointmentRequest HTTP request model
type TransitionAppointmentRequest struct {
	Status             string  `json:"status"` // reserved | cancelled | completed | missed
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID                 int64   `json:"id"`
	SlotID             int64   `json:"slotId"`
	Status             string  `json:"status"`
	ProgramName        string  `json:"programName"`
	Date               string  `json:"date"`
	StartTime          string  `json:"startTime"`
	EndTime            string  `json:"endTime"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	UpdatedAt          string  `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transitionAppointment.Response) *AppointmentResponse {
	a := resp.Appointment

	return &AppointmentResponse{
		ID:                 a.ID,
		SlotID:             a.SlotID,
		Status:             string(a.Status),
		ProgramName:        a.ProgramName,
		Date:               a.Date.Format(domain.DateFormat),
		StartTime:          a.StartTime.String(),
		EndTime:            a.EndTime.String(),
		CancellationReason: a.CancellationReason,
		UpdatedAt:          a.UpdatedAt.Format(time.RFC3339),
	}
}
