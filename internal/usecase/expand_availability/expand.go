package expand_availability

import (
	"time"

	"github.com/mentorweb/MW-SchedulingService/internal/domain"
	"github.com/mentorweb/MW-SchedulingService/pkg/types"
)

// buildSlots разворачивает недельный паттерн в дискретные слоты
// Идет по каждой календарной дате диапазона [startDate, endDate] включительно;
// дата без интервала в паттерне слотов не дает
//
// Политика subdivision: при durationMinutes > 0 интервал нарезается на
// последовательные слоты длиной durationMinutes; хвост короче длительности
// отбрасывается. При durationMinutes == 0 интервал дает ровно один слот
//
// Результат отсортирован по дате, затем по времени начала - по построению
func buildSlots(req *Request, hostID int64) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	start := dateOnly(req.StartDate)
	end := dateOnly(req.EndDate)

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		interval := req.Pattern.IntervalFor(date.Weekday())
		if interval == nil {
			continue
		}

		daySlots, err := buildDaySlots(req, hostID, date, *interval)
		if err != nil {
			return nil, err
		}
		slots = append(slots, daySlots...)
	}

	return slots, nil
}

// buildDaySlots эмитит слоты одной даты для интервала паттерна
func buildDaySlots(req *Request, hostID int64, date time.Time, interval domain.DayInterval) ([]*domain.Slot, error) {
	// Без subdivision: один слот на весь интервал
	if req.DurationMinutes == 0 {
		return []*domain.Slot{newSlot(req, hostID, date, interval.StartTime, interval.EndTime, 0)}, nil
	}

	slots := make([]*domain.Slot, 0)
	current := interval.StartTime

	for current.IsBefore(interval.EndTime) {
		slotEnd, err := current.AddMinutes(req.DurationMinutes)
		if err != nil {
			return nil, err
		}
		// Хвост короче durationMinutes не эмитится
		if slotEnd.IsAfter(interval.EndTime) {
			break
		}

		slots = append(slots, newSlot(req, hostID, date, current, slotEnd, req.DurationMinutes))
		current = slotEnd
	}

	return slots, nil
}

func newSlot(req *Request, hostID int64, date time.Time, start, end types.TimeString, duration int) *domain.Slot {
	return &domain.Slot{
		ProgramID:        req.ProgramID,
		HostID:           hostID,
		Date:             date,
		StartTime:        start,
		EndTime:          end,
		DurationMinutes:  duration,
		PhysicalLocation: req.PhysicalLocation,
		MeetingURL:       req.MeetingURL,
		IsDropin:         req.IsDropin,
		Status:           domain.SlotStatusOpen,
	}
}

// filterDuplicates отбрасывает кандидатов, совпадающих по (дата, время начала)
// с уже существующим не-inactive слотом программы
// Повторная отправка паттерна аддитивна, но не дублирует уже созданные
// (в том числе забронированные) слоты
func filterDuplicates(candidates, existing []*domain.Slot) (kept []*domain.Slot, skipped int) {
	type key struct {
		date  string
		start string
	}

	seen := make(map[key]struct{}, len(existing))
	for _, s := range existing {
		if s.Status == domain.SlotStatusInactive {
			continue
		}
		seen[key{s.Date.Format(domain.DateFormat), s.StartTime.String()}] = struct{}{}
	}

	kept = make([]*domain.Slot, 0, len(candidates))
	for _, c := range candidates {
		k := key{c.Date.Format(domain.DateFormat), c.StartTime.String()}
		if _, ok := seen[k]; ok {
			skipped++
			continue
		}
		kept = append(kept, c)
	}

	return kept, skipped
}

// dateOnly обнуляет временную часть даты
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
