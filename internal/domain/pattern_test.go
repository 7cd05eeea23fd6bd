package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mentorweb/MW-SchedulingService/pkg/types"
)

func interval(start, end string) *DayInterval {
	return &DayInterval{
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

func TestDayInterval_IsValid(t *testing.T) {
	assert.True(t, interval("10:00", "16:00").IsValid())
	assert.False(t, interval("16:00", "10:00").IsValid())
	// Пустой интервал недопустим
	assert.False(t, interval("10:00", "10:00").IsValid())
}

func TestWeeklyPattern_IntervalFor(t *testing.T) {
	pattern := WeeklyPattern{
		Monday: interval("10:00", "16:00"),
		Friday: interval("09:00", "12:00"),
	}

	monday := pattern.IntervalFor(time.Monday)
	assert.NotNil(t, monday)
	assert.Equal(t, types.TimeString("10:00"), monday.StartTime)

	assert.Nil(t, pattern.IntervalFor(time.Tuesday))
	assert.Nil(t, pattern.IntervalFor(time.Sunday))
}

func TestWeeklyPattern_Intervals(t *testing.T) {
	pattern := WeeklyPattern{
		Monday:   interval("10:00", "16:00"),
		Saturday: interval("11:00", "13:00"),
	}

	intervals := pattern.Intervals()
	assert.Len(t, intervals, 2)
	assert.Contains(t, intervals, time.Monday)
	assert.Contains(t, intervals, time.Saturday)
}
