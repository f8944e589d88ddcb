package examslot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("examslot.repository: exam slot not found")

	// ErrSlotFull возвращается, когда в слоте нет свободных мест
	ErrSlotFull = errors.New("examslot.repository: exam slot is full")

	// ErrSlotOverlap возвращается, когда слот пересекается с существующим (уникальный индекс)
	ErrSlotOverlap = errors.New("examslot.repository: exam slot already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("examslot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("examslot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("examslot.repository: failed to scan row")
)
