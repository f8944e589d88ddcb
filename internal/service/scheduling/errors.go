package scheduling

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrSlotNotFound слот не найден
	ErrSlotNotFound = errors.New("exam slot not found")

	// ErrSlotConflict слот с таким временем, уровнем и форматом уже существует
	ErrSlotConflict = errors.New("exam slot already exists for this date and time")

	// ErrSlotHasBookings слот нельзя удалить или перенести, на него есть бронирования
	ErrSlotHasBookings = errors.New("exam slot has bookings")

	// ErrCapacityBelowBooked вместимость меньше числа занятых мест
	ErrCapacityBelowBooked = errors.New("capacity cannot be less than booked seats")

	// ErrBlackoutDate дата попадает в период закрытия
	ErrBlackoutDate = errors.New("date falls within a blackout period")

	// ErrBlackoutNotFound период закрытия не найден
	ErrBlackoutNotFound = errors.New("blackout period not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
