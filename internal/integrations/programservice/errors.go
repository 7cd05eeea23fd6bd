package programservice

import "errors"

var (
	// ErrProgramNotFound возвращается, когда программа не найдена
	ErrProgramNotFound = errors.New("programservice client: program not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("programservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("programservice client: invalid response")
)
