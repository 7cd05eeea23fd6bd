package feedback

import "errors"

var (
	// ErrFeedbackNotFound возвращается, когда отзыв не найден
	ErrFeedbackNotFound = errors.New("feedback.repository: feedback not found")

	// ErrFeedbackExists возвращается при повторном отзыве той же роли
	// на ту же запись (уникальный индекс appointment_id + author_role)
	ErrFeedbackExists = errors.New("feedback.repository: feedback already exists for this appointment and role")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("feedback.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("feedback.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("feedback.repository: failed to scan row")
)
