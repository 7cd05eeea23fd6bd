package appointments

import (
	"sort"
	"time"

	"github.com/mentorweb/MW-SchedulingService/internal/domain"
)

// Ключи сортировки, принимаемые GetUserAppointments
const (
	SortKeyName     = "Name"
	SortKeyDay      = "Day"
	SortKeyDate     = "Date"
	SortKeyLocation = "Location"
	SortKeyStatus   = "Status"
)

// weekdayOrder порядок дней недели для ключа Day: рабочая неделя
// начинается с понедельника, выходные в конце
var weekdayOrder = map[time.Weekday]int{
	time.Monday:    0,
	time.Tuesday:   1,
	time.Wednesday: 2,
	time.Thursday:  3,
	time.Friday:    4,
	time.Saturday:  5,
	time.Sunday:    6,
}

// sortAppointments сортирует записи по заданному ключу
// Сортировка стабильная: записи с равным ключом сохраняют исходный
// порядок. Неизвестный ключ оставляет порядок как есть
func sortAppointments(appointments []*domain.Appointment, key string, descending bool) {
	less := lessFunc(appointments, key)
	if less == nil {
		return
	}

	if descending {
		asc := less
		less = func(i, j int) bool { return asc(j, i) }
	}

	sort.SliceStable(appointments, less)
}

func lessFunc(a []*domain.Appointment, key string) func(i, j int) bool {
	switch key {
	case SortKeyName:
		return func(i, j int) bool { return a[i].ProgramName < a[j].ProgramName }
	case SortKeyDay:
		// Внутри одного дня недели записи сохраняют исходный порядок
		return func(i, j int) bool {
			return weekdayOrder[a[i].Date.Weekday()] < weekdayOrder[a[j].Date.Weekday()]
		}
	case SortKeyDate:
		return func(i, j int) bool {
			if !a[i].Date.Equal(a[j].Date) {
				return a[i].Date.Before(a[j].Date)
			}
			return a[i].StartTime.IsBefore(a[j].StartTime)
		}
	case SortKeyLocation:
		// Записи без места встречи идут после записей с местом
		return func(i, j int) bool {
			li, lj := a[i].PhysicalLocation, a[j].PhysicalLocation
			switch {
			case li == nil:
				return false
			case lj == nil:
				return true
			}
			return *li < *lj
		}
	case SortKeyStatus:
		return func(i, j int) bool { return a[i].Status < a[j].Status }
	}
	return nil
}
