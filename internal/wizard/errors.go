package wizard

import "errors"

var (
	// ErrInvalidInput значение выбора не распознано
	ErrInvalidInput = errors.New("wizard: invalid input")

	// ErrStepLocked шаг еще недоступен (не выполнены предыдущие шаги)
	ErrStepLocked = errors.New("wizard: step is locked")

	// ErrPrerequisiteNotRequired загрузка документа не нужна для полного экзамена
	ErrPrerequisiteNotRequired = errors.New("wizard: prerequisite is not required for this exam option")

	// ErrDateUnavailable дата недоступна или все слоты заняты
	ErrDateUnavailable = errors.New("wizard: date is not available")

	// ErrSlotUnavailable слот не найден или заполнен
	ErrSlotUnavailable = errors.New("wizard: time slot is not available")

	// ErrHoldNotActive нет активного удержания для оплаты
	ErrHoldNotActive = errors.New("wizard: no active hold")

	// ErrPaymentInProgress по сессии уже идет оплата
	ErrPaymentInProgress = errors.New("wizard: payment in progress")

	// ErrBookingCompleted бронирование уже оформлено, сессия только для чтения
	ErrBookingCompleted = errors.New("wizard: booking already completed")

	// ErrSessionClosed сессия завершена
	ErrSessionClosed = errors.New("wizard: session closed")

	// ErrInternal внутренняя ошибка (недоступен внешний сервис)
	ErrInternal = errors.New("wizard: internal error")
)
