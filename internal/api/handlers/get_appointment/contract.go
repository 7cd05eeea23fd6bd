package get_appointment

import (
	"context"

	"github.com/mentorweb/MW-SchedulingService/internal/domain"
	"github.com/mentorweb/MW-SchedulingService/internal/service/appointments/models"
)

type AppointmentsService interface {
	GetByID(ctx context.Context, id int64, actor domain.ActorContext) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
