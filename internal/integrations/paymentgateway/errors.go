package paymentgateway

import "errors"

var (
	// ErrInvalidRequest запрос не прошел базовую проверку шлюза
	ErrInvalidRequest = errors.New("paymentgateway: invalid request")

	// ErrCancelled обработка прервана до получения результата
	ErrCancelled = errors.New("paymentgateway: processing cancelled")
)
