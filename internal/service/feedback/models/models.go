package models

import (
	"time"

	"github.com/mentorweb/MW-SchedulingService/internal/domain"
)

// Request модели

// SubmitFeedbackRequest запрос на отправку отзыва
type SubmitFeedbackRequest struct {
	Actor         domain.ActorContext
	AppointmentID int64
	Rating        int     // 1..5
	Notes         *string // Текст отзыва (опционально)
}

// Response модели

// FeedbackResponse ответ с данными отзыва
type FeedbackResponse struct {
	ID            int64     `json:"id"`
	AppointmentID int64     `json:"appointmentId"`
	AuthorRole    string    `json:"authorRole"`
	Rating        int       `json:"rating"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FeedbackListResponse ответ со списком отзывов записи
type FeedbackListResponse struct {
	Feedback []FeedbackResponse `json:"feedback"`
}

// Методы конвертации

// FromDomainFeedback конвертирует domain модель в DTO
func FromDomainFeedback(f *domain.Feedback) *FeedbackResponse {
	if f == nil {
		return nil
	}

	return &FeedbackResponse{
		ID:            f.ID,
		AppointmentID: f.AppointmentID,
		AuthorRole:    string(f.AuthorRole),
		Rating:        f.Rating,
		Notes:         f.Notes,
		CreatedAt:     f.CreatedAt,
	}
}

// FromDomainFeedbackList конвертирует список domain моделей в DTO
func FromDomainFeedbackList(feedbacks []*domain.Feedback) *FeedbackListResponse {
	resp := &FeedbackListResponse{
		Feedback: make([]FeedbackResponse, 0, len(feedbacks)),
	}

	for _, f := range feedbacks {
		if converted := FromDomainFeedback(f); converted != nil {
			resp.Feedback = append(resp.Feedback, *converted)
		}
	}

	return resp
}
