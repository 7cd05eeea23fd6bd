package submit_feedback

import (
	"context"

	"github.com/mentorweb/MW-SchedulingService/internal/service/feedback/models"
)

type FeedbackService interface {
	Submit(ctx context.Context, req *models.SubmitFeedbackRequest) (*models.FeedbackResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
