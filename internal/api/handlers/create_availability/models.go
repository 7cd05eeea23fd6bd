package create_availability

import (
	"time"

	"github.com/mentorweb/MW-SchedulingService/internal/domain"
	expandAvailability "github.com/mentorweb/MW-SchedulingService/internal/usecase/expand_availability"
	"github.com/mentorweb/MW-SchedulingService/pkg/types"
)

// DayIntervalRequest одно недельное окно доступности
type DayIntervalRequest struct {
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "16:00"
}

// WeeklyPatternRequest недельный паттерн доступности
// Отсутствующий день - без доступности
type WeeklyPatternRequest struct {
	Monday    *DayIntervalRequest `json:"monday,omitempty"`
	Tuesday   *DayIntervalRequest `json:"tuesday,omitempty"`
	Wednesday *DayIntervalRequest `json:"wednesday,omitempty"`
	Thursday  *DayIntervalRequest `json:"thursday,omitempty"`
	Friday    *DayIntervalRequest `json:"friday,omitempty"`
	Saturday  *DayIntervalRequest `json:"saturday,omitempty"`
	Sunday    *DayIntervalRequest `json:"sunday,omitempty"`
}

// CreateAvailabilityRequest HTTP request model
type CreateAvailabilityRequest struct {
	Pattern          WeeklyPatternRequest `json:"pattern"`
	StartDate        string               `json:"startDate"` // "2025-10-01"
	EndDate          string               `json:"endDate"`   // "2025-10-31"
	DurationMinutes  int                  `json:"durationMinutes"`
	PhysicalLocation *string              `json:"physicalLocation,omitempty"`
	MeetingURL       *string              `json:"meetingUrl,omitempty"`
	IsDropin         bool                 `json:"isDropin"`
}

// SlotResponse HTTP модель созданного слота
type SlotResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
}

// CreateAvailabilityResponse HTTP response model
type CreateAvailabilityResponse struct {
	ProgramID int64          `json:"programId"`
	Created   []SlotResponse `json:"created"`
	Skipped   int            `json:"skipped"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAvailabilityRequest) ToUseCaseRequest(actor domain.ActorContext, programID int64) (*expandAvailability.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	pattern, err := r.Pattern.toDomain()
	if err != nil {
		return nil, err
	}

	return &expandAvailability.Request{
		Actor:            actor,
		ProgramID:        programID,
		Pattern:          pattern,
		StartDate:        startDate,
		EndDate:          endDate,
		DurationMinutes:  r.DurationMinutes,
		PhysicalLocation: r.PhysicalLocation,
		MeetingURL:       r.MeetingURL,
		IsDropin:         r.IsDropin,
	}, nil
}

func (p *WeeklyPatternRequest) toDomain() (domain.WeeklyPattern, error) {
	var pattern domain.WeeklyPattern

	days := []struct {
		req *DayIntervalRequest
		dst **domain.DayInterval
	}{
		{p.Monday, &pattern.Monday},
		{p.Tuesday, &pattern.Tuesday},
		{p.Wednesday, &pattern.Wednesday},
		{p.Thursday, &pattern.Thursday},
		{p.Friday, &pattern.Friday},
		{p.Saturday, &pattern.Saturday},
		{p.Sunday, &pattern.Sunday},
	}

	for _, day := range days {
		if day.req == nil {
			continue
		}

		startTime, err := types.NewTimeStringFromString(day.req.StartTime)
		if err != nil {
			return pattern, err
		}
		endTime, err := types.NewTimeStringFromString(day.req.EndTime)
		if err != nil {
			return pattern, err
		}

		*day.dst = &domain.DayInterval{StartTime: startTime, EndTime: endTime}
	}

	return pattern, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *expandAvailability.Response) *CreateAvailabilityResponse {
	created := make([]SlotResponse, 0, len(resp.Created))
	for _, s := range resp.Created {
		created = append(created, SlotResponse{
			ID:        s.ID,
			Date:      s.Date.Format(domain.DateFormat),
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			Status:    string(s.Status),
		})
	}

	return &CreateAvailabilityResponse{
		ProgramID: resp.ProgramID,
		Created:   created,
		Skipped:   resp.Skipped,
	}
}
