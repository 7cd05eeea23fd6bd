package identityservice

// User модель актора из IdentityService
type User struct {
	ID            int64  `json:"id"`
	Email         string `json:"email"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Role          string `json:"role"`          // host, attendee, admin
	AccountStatus string `json:"accountStatus"` // pending, active, inactive
	MeetingURL    *string `json:"meetingUrl,omitempty"`
}

// ErrorResponse модель ошибки от IdentityService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
