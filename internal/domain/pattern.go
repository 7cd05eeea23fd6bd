package domain

import (
	"time"

	"github.com/mentorweb/MW-SchedulingService/pkg/types"
)

// DayInterval одно недельное окно доступности хоста
type DayInterval struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// IsValid returns true if the interval ends strictly after it starts
func (i DayInterval) IsValid() bool {
	return i.StartTime.IsBefore(i.EndTime)
}

// WeeklyPattern maps each weekday to an optional availability interval
// A submitted pattern is immutable: re-submitting produces new slots,
// existing slots are never mutated by the expander
type WeeklyPattern struct {
	Monday    *DayInterval
	Tuesday   *DayInterval
	Wednesday *DayInterval
	Thursday  *DayInterval
	Friday    *DayInterval
	Saturday  *DayInterval
	Sunday    *DayInterval
}

// IntervalFor returns the interval for the given weekday, nil if the day is closed
func (p *WeeklyPattern) IntervalFor(weekday time.Weekday) *DayInterval {
	switch weekday {
	case time.Monday:
		return p.Monday
	case time.Tuesday:
		return p.Tuesday
	case time.Wednesday:
		return p.Wednesday
	case time.Thursday:
		return p.Thursday
	case time.Friday:
		return p.Friday
	case time.Saturday:
		return p.Saturday
	case time.Sunday:
		return p.Sunday
	default:
		return nil
	}
}

// Intervals returns all defined intervals, keyed by weekday
func (p *WeeklyPattern) Intervals() map[time.Weekday]DayInterval {
	result := make(map[time.Weekday]DayInterval)
	for _, day := range []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	} {
		if interval := p.IntervalFor(day); interval != nil {
			result[day] = *interval
		}
	}
	return result
}
