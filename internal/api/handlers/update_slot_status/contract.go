package update_slot_status

import (
	"context"

	"github.com/mentorweb/MW-SchedulingService/internal/service/slots/models"
)

type SlotsService interface {
	UpdateStatus(ctx context.Context, req *models.UpdateSlotStatusRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
