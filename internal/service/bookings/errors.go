package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrEmailNotFound письмо по бронированию еще не отправлялось
	ErrEmailNotFound = errors.New("confirmation email not found")

	// ErrEmailInProgress письмо еще отправляется
	ErrEmailInProgress = errors.New("confirmation email is still being sent")

	// ErrResendLimit исчерпан лимит повторных отправок
	ErrResendLimit = errors.New("resend limit reached")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
