package submit_feedback

// SubmitFeedbackRequest HTTP request model
type SubmitFeedbackRequest struct {
	Rating int     `json:"rating"` // 1..5
	Notes  *string `json:"notes,omitempty"`
}
