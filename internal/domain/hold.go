package domain

import "time"

// HoldState состояние удержания слота
type HoldState string

const (
	HoldIdle    HoldState = "idle"
	HoldHeld    HoldState = "held"
	HoldExpired HoldState = "expired"
)

const (
	DefaultHoldDuration = 900 * time.Second

	HoldExpiredNotice = "Booking hold expired. Please restart the booking process."
)

// HoldReservation временная блокировка слота на время оплаты
type HoldReservation struct {
	ID        string
	CreatedAt time.Time
	Duration  time.Duration
}

func (h HoldReservation) ExpiresAt() time.Time {
	return h.CreatedAt.Add(h.Duration)
}

// Remaining сколько осталось до истечения; 0 если уже истекло
func (h HoldReservation) Remaining(now time.Time) time.Duration {
	left := h.ExpiresAt().Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// DurationSeconds длительность удержания в секундах
func (h HoldReservation) DurationSeconds() int {
	return int(h.Duration / time.Second)
}
