package ratesservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("ratesservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("ratesservice client: invalid response")

	// ErrServiceDegraded курсы недоступны, вызывающий использует статическую таблицу
	ErrServiceDegraded = errors.New("ratesservice unavailable: graceful degradation applied")
)
