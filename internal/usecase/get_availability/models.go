package get_availability

import (
	"time"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
)

// Причины недоступности дня
const (
	ReasonPast     = "past"
	ReasonBlackout = "blackout"
	ReasonNoSlots  = "no_slots"
)

// Request модель запроса доступности
type Request struct {
	Date       time.Time
	Level      domain.Level
	ExamOption domain.ExamOption
}

// Response доступность дня; Blackout заполнен, если день закрыт
type Response struct {
	Availability domain.DayAvailability
	Blackout     *domain.BlackoutPeriod
}
