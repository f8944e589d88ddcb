package holdstore

import "errors"

var (
	// ErrHoldConflict у сессии уже зарегистрировано другое удержание
	ErrHoldConflict = errors.New("holdstore: session already holds another reservation")

	// ErrRedis ошибка обращения к redis
	ErrRedis = errors.New("holdstore: redis error")
)
