package scheduling

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
)

// ExamSlotRepository интерфейс репозитория слотов экзамена
type ExamSlotRepository interface {
	Create(ctx context.Context, slot *domain.ExamSlot) (*domain.ExamSlot, error)
	GetByID(ctx context.Context, id int64) (*domain.ExamSlot, error)
	List(ctx context.Context, filter domain.ExamSlotFilter) ([]*domain.ExamSlot, error)
	Update(ctx context.Context, slot *domain.ExamSlot) (*domain.ExamSlot, error)
	Delete(ctx context.Context, id int64) error
}

// BlackoutRepository интерфейс репозитория периодов закрытия
type BlackoutRepository interface {
	Create(ctx context.Context, period *domain.BlackoutPeriod) (*domain.BlackoutPeriod, error)
	List(ctx context.Context) ([]*domain.BlackoutPeriod, error)
	ListCovering(ctx context.Context, date time.Time) ([]*domain.BlackoutPeriod, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
