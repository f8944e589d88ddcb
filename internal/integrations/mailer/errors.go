package mailer

import "errors"

var (
	// ErrNotFound письмо для бронирования не отправлялось
	ErrNotFound = errors.New("mailer: confirmation not found")

	// ErrDeliveryInProgress предыдущая отправка еще не завершена
	ErrDeliveryInProgress = errors.New("mailer: delivery in progress")

	// ErrResendLimit исчерпан лимит повторных отправок
	ErrResendLimit = errors.New("mailer: resend limit reached")

	// ErrClosed почтовый сервис остановлен
	ErrClosed = errors.New("mailer: closed")
)
