package programservice

// Program модель программы (course offering) из ProgramService
type Program struct {
	ID               int64   `json:"id"`
	CourseID         int64   `json:"courseId"`
	HostID           int64   `json:"hostId"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	DurationMinutes  int     `json:"durationMinutes"`
	AutoApprove      bool    `json:"autoApprove"` // записи минуют статус pending
	IsDropins        bool    `json:"isDropins"`
	PhysicalLocation *string `json:"physicalLocation,omitempty"`
	MeetingURL       *string `json:"meetingUrl,omitempty"`
}

// ErrorResponse модель ошибки от ProgramService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
