package domain

// Default configuration values
const (
	DefaultFeedbackRatingMin = 1
	DefaultFeedbackRatingMax = 5
)

// Business validation constants
const (
	MinSlotDurationMinutes      = 5
	MaxSlotDurationMinutes      = 480 // 8 hours
	MaxExpansionRangeDays       = 366 // one submission covers at most a year
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// DateFormat формат календарной даты (YYYY-MM-DD)
const DateFormat = "2006-01-02"

// TerminalStatuses список терминальных статусов записи
// Из них не определено ни одного перехода
var TerminalStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusCompleted,
	StatusMissed,
}

// ActiveStatuses список статусов, удерживающих слот
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusReserved,
	StatusCompleted,
	StatusMissed,
}
