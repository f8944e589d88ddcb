package submit_payment

import "errors"

var (
	// ErrSessionNotFound сессия не найдена или закрыта
	ErrSessionNotFound = errors.New("submit_payment: session not found")

	// ErrHoldNotActive нет активного удержания (истекло или не начато)
	ErrHoldNotActive = errors.New("submit_payment: booking hold is not active")

	// ErrAlreadyBooked по сессии уже оформлено бронирование
	ErrAlreadyBooked = errors.New("submit_payment: booking already completed")

	// ErrPaymentInProgress по сессии уже идет оплата
	ErrPaymentInProgress = errors.New("submit_payment: payment already in progress")

	// ErrInvalidPaymentDetails данные формы оплаты неполные или некорректные
	ErrInvalidPaymentDetails = errors.New("submit_payment: invalid payment details")

	// ErrTermsNotAccepted не приняты условия
	ErrTermsNotAccepted = errors.New("submit_payment: terms and conditions must be accepted")

	// ErrAmountMismatch сумма клиента не совпадает с текущей ценой
	ErrAmountMismatch = errors.New("submit_payment: amount does not match current price")

	// ErrSlotFull в слоте нет мест; после списания ответ содержит номер транзакции
	ErrSlotFull = errors.New("submit_payment: exam slot is fully booked")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_payment: internal error")
)
