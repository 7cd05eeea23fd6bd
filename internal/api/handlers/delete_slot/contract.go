package delete_slot

import (
	"context"

	"github.com/mentorweb/MW-SchedulingService/internal/domain"
)

type SlotsService interface {
	Delete(ctx context.Context, slotID int64, actor domain.ActorContext) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
