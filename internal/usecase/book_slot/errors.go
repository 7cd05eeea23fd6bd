package book_slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("book_slot: slot not found")

	// ErrSlotUnavailable возвращается, когда слот уже занят или неактивен
	// Ровно один из конкурентных запросов на слот получает запись,
	// остальные - эту ошибку
	ErrSlotUnavailable = errors.New("book_slot: slot is not available")

	// ErrSlotInPast возвращается при попытке забронировать прошедший слот
	ErrSlotInPast = errors.New("book_slot: slot start time has already passed")

	// ErrOwnSlot возвращается, когда хост пытается забронировать свой слот
	ErrOwnSlot = errors.New("book_slot: host cannot book their own slot")

	// ErrProgramNotFound возвращается, когда программа слота не найдена
	ErrProgramNotFound = errors.New("book_slot: program not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_slot: internal error")
)
