package blackout

import "errors"

var (
	// ErrBlackoutNotFound возвращается, когда период не найден
	ErrBlackoutNotFound = errors.New("blackout.repository: blackout period not found")

	ErrBuildQuery = errors.New("blackout.repository: failed to build query")
	ErrExecQuery  = errors.New("blackout.repository: failed to execute query")
	ErrScanRow    = errors.New("blackout.repository: failed to scan row")
)
