package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot not found")

	// ErrAccessDenied возвращается, когда актор не хост слота
	ErrAccessDenied = errors.New("access denied")

	// ErrSlotReserved возвращается при попытке переключить статус
	// забронированного слота
	ErrSlotReserved = errors.New("slot is reserved and cannot be toggled")

	// ErrSlotBooked возвращается при попытке удалить слот
	// с не-отмененной записью
	ErrSlotBooked = errors.New("slot has an active appointment")

	// ErrInvalidStatus возвращается при недопустимом целевом статусе слота
	ErrInvalidStatus = errors.New("invalid slot status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
