package expand_availability

import "errors"

var (
	// ErrInvalidRange возвращается, когда startDate позже endDate
	// или диапазон превышает максимально допустимый
	ErrInvalidRange = errors.New("expand_availability: invalid date range")

	// ErrInvalidInterval возвращается, когда интервал паттерна
	// заканчивается не позже, чем начинается
	ErrInvalidInterval = errors.New("expand_availability: invalid pattern interval")

	// ErrProgramNotFound возвращается, когда программа не найдена
	ErrProgramNotFound = errors.New("expand_availability: program not found")

	// ErrNotProgramHost возвращается, когда актор не является хостом программы
	ErrNotProgramHost = errors.New("expand_availability: actor is not the host of the program")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("expand_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("expand_availability: internal error")
)
