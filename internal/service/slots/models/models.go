package models

import (
	"errors"
	"time"

	"github.com/mentorweb/MW-SchedulingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе слота
	ErrInvalidStatus = errors.New("invalid slot status")
)

// Request модели

// GetProgramSlotsRequest запрос на получение слотов программы
type GetProgramSlotsRequest struct {
	ProgramID int64      `json:"programId"`
	StartDate *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate   *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
	Status    *string    `json:"status,omitempty"`    // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetProgramSlotsRequest) ToDomainFilter() (domain.ProgramSlotsFilter, error) {
	filter := domain.ProgramSlotsFilter{
		ProgramID: r.ProgramID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}

	if r.Status != nil {
		status, err := ToDomainSlotStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateSlotStatusRequest запрос на переключение статуса слота
type UpdateSlotStatusRequest struct {
	Actor  domain.ActorContext
	SlotID int64
	Status string // open | inactive
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID               int64   `json:"id"`
	ProgramID        int64   `json:"programId"`
	HostID           int64   `json:"hostId"`
	Date             string  `json:"date"`      // "2025-10-15"
	StartTime        string  `json:"startTime"` // "10:00"
	EndTime          string  `json:"endTime"`   // "10:30"
	DurationMinutes  int     `json:"durationMinutes"`
	PhysicalLocation *string `json:"physicalLocation,omitempty"`
	MeetingURL       *string `json:"meetingUrl,omitempty"`
	IsDropin         bool    `json:"isDropin"`
	Status           string  `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// Методы конвертации

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	if s == nil {
		return nil
	}

	return &SlotResponse{
		ID:               s.ID,
		ProgramID:        s.ProgramID,
		HostID:           s.HostID,
		Date:             s.Date.Format(domain.DateFormat),
		StartTime:        s.StartTime.String(),
		EndTime:          s.EndTime.String(),
		DurationMinutes:  s.DurationMinutes,
		PhysicalLocation: s.PhysicalLocation,
		MeetingURL:       s.MeetingURL,
		IsDropin:         s.IsDropin,
		Status:           string(s.Status),
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(slots []*domain.Slot) *SlotListResponse {
	resp := &SlotListResponse{
		Slots: make([]SlotResponse, 0, len(slots)),
	}

	for _, s := range slots {
		if converted := FromDomainSlot(s); converted != nil {
			resp.Slots = append(resp.Slots, *converted)
		}
	}

	return resp
}

// ToDomainSlotStatus конвертирует строку в domain.SlotStatus с валидацией
func ToDomainSlotStatus(status string) (domain.SlotStatus, error) {
	s := domain.SlotStatus(status)

	switch s {
	case domain.SlotStatusOpen, domain.SlotStatusReserved, domain.SlotStatusInactive:
		return s, nil
	}

	return "", ErrInvalidStatus
}
