package transition_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("transition_appointment: appointment not found")

	// ErrIllegalTransition возвращается для пары статусов,
	// отсутствующей в таблице переходов
	ErrIllegalTransition = errors.New("transition_appointment: illegal status transition")

	// ErrAccessDenied возвращается, когда актор не участник записи
	// или его роль не допущена к переходу
	ErrAccessDenied = errors.New("transition_appointment: access denied")

	// ErrTooEarly возвращается, когда переход разрешен только
	// после окончания слота, а слот еще не закончился
	ErrTooEarly = errors.New("transition_appointment: appointment has not ended yet")

	// ErrTooLate возвращается, когда переход разрешен только
	// до начала слота, а слот уже начался
	ErrTooLate = errors.New("transition_appointment: appointment has already started")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("transition_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("transition_appointment: internal error")
)
