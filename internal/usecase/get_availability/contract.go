package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
)

// ExamSlotRepository интерфейс репозитория слотов экзамена
type ExamSlotRepository interface {
	ListForDay(ctx context.Context, date time.Time, level domain.Level, option domain.ExamOption) ([]*domain.ExamSlot, error)
}

// BlackoutRepository интерфейс репозитория периодов закрытия
type BlackoutRepository interface {
	ListCovering(ctx context.Context, date time.Time) ([]*domain.BlackoutPeriod, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
