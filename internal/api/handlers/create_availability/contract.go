package create_availability

import (
	"context"

	expandAvailability "github.com/mentorweb/MW-SchedulingService/internal/usecase/expand_availability"
)

type ExpandAvailabilityUseCase interface {
	Execute(ctx context.Context, req *expandAvailability.Request) (*expandAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
