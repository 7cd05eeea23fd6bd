package transition_appointment

import (
	"fmt"

	"github.com/mentorweb/MW-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if !domain.IsValidRole(req.Actor.Role) {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Actor.Role)
	}

	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	switch req.TargetStatus {
	case domain.StatusPending, domain.StatusReserved, domain.StatusCancelled,
		domain.StatusCompleted, domain.StatusMissed:
	default:
		return fmt.Errorf("%w: unknown target status %q", ErrInvalidInput, req.TargetStatus)
	}

	if req.CancellationReason != nil {
		if req.TargetStatus != domain.StatusCancelled {
			return fmt.Errorf("%w: cancellationReason is only valid for cancellation", ErrInvalidInput)
		}
		if len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
			return fmt.Errorf("%w: cancellationReason exceeds %d characters",
				ErrInvalidInput, domain.MaxCancellationReasonLength)
		}
	}

	return nil
}
