package feedback

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrAccessDenied возвращается, когда актор не участник записи
	ErrAccessDenied = errors.New("access denied")

	// ErrFeedbackNotAllowed возвращается, когда статус записи
	// не допускает отзыв (не завершена или отменена)
	ErrFeedbackNotAllowed = errors.New("feedback is not allowed for this appointment")

	// ErrFeedbackExists возвращается при повторном отзыве той же стороны
	ErrFeedbackExists = errors.New("feedback already submitted for this appointment")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
