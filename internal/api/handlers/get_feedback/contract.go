package get_feedback

import (
	"context"

	"github.com/mentorweb/MW-SchedulingService/internal/domain"
	"github.com/mentorweb/MW-SchedulingService/internal/service/feedback/models"
)

type FeedbackService interface {
	GetByAppointment(ctx context.Context, appointmentID int64, actor domain.ActorContext) (*models.FeedbackListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
