package sessions

import "errors"

var (
	// ErrSessionNotFound сессия не найдена или уже завершена
	ErrSessionNotFound = errors.New("sessions: session not found")

	// ErrTooManySessions достигнут лимит одновременных сессий
	ErrTooManySessions = errors.New("sessions: too many active sessions")
)
