package wizard

import (
	"time"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
)

// Dependencies внешние коллабораторы мастера
// HoldRegistry, Recorder и Logger необязательны
type Dependencies struct {
	Availability AvailabilityLookup
	Pricing      PricingLookup
	Uploads      UploadValidator
	HoldRegistry HoldRegistry
	Recorder     Recorder
	Logger       Logger
}

// Snapshot неизменяемый срез состояния сессии
type Snapshot struct {
	SessionID       string
	State           domain.SelectionState
	Step            domain.Step
	ProgressAllowed bool
	// RequiredDocument пусто, если загрузка не нужна или формат не выбран
	RequiredDocument string
	// Slot выбранный слот (SlotID, длительность, место), nil если время не выбрано
	Slot *domain.TimeSlot

	HoldState domain.HoldState
	Hold      *domain.HoldReservation
	// HoldRemaining оставшееся время удержания
	HoldRemaining time.Duration

	Notice           string
	BookingReference string
	LastActivity     time.Time
}
