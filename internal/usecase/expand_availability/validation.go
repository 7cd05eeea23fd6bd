package expand_availability

import (
	"fmt"

	"github.com/mentorweb/MW-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Отклоняет запрос до создания каких-либо слотов - частичных записей не бывает
func validateRequest(req *Request) error {
	if !req.Actor.CanActAsHost() {
		return fmt.Errorf("%w: only hosts may publish availability", ErrInvalidInput)
	}

	if req.ProgramID <= 0 {
		return fmt.Errorf("%w: programID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	if req.StartDate.After(req.EndDate) {
		return fmt.Errorf("%w: startDate %s is after endDate %s", ErrInvalidRange,
			req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}

	if req.EndDate.Sub(req.StartDate).Hours() > 24*domain.MaxExpansionRangeDays {
		return fmt.Errorf("%w: range exceeds %d days", ErrInvalidRange, domain.MaxExpansionRangeDays)
	}

	if req.DurationMinutes != 0 &&
		(req.DurationMinutes < domain.MinSlotDurationMinutes || req.DurationMinutes > domain.MaxSlotDurationMinutes) {
		return fmt.Errorf("%w: durationMinutes must be 0 or in [%d, %d]", ErrInvalidInput,
			domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	return validatePattern(req.Pattern)
}

// validatePattern проверяет каждый заданный интервал паттерна
func validatePattern(pattern domain.WeeklyPattern) error {
	intervals := pattern.Intervals()
	if len(intervals) == 0 {
		return fmt.Errorf("%w: pattern has no intervals", ErrInvalidInput)
	}

	for day, interval := range intervals {
		if err := interval.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: %s start time: %v", ErrInvalidInterval, day, err)
		}
		if err := interval.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: %s end time: %v", ErrInvalidInterval, day, err)
		}
		if !interval.IsValid() {
			return fmt.Errorf("%w: %s interval %s-%s ends before it starts", ErrInvalidInterval,
				day, interval.StartTime, interval.EndTime)
		}
	}

	return nil
}
