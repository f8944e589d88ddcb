package wizard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
	"github.com/m04kA/SMC-ExamBookingService/internal/upload"
)

// AvailabilityLookup доступность дня для уровня и формата экзамена
type AvailabilityLookup interface {
	GetAvailability(ctx context.Context, date time.Time, level domain.Level, option domain.ExamOption) (domain.DayAvailability, error)
}

// PricingLookup цена формата экзамена в валюте
type PricingLookup interface {
	GetPrice(ctx context.Context, option domain.ExamOption, currency domain.Currency) (float64, error)
}

// UploadValidator проверка документа-пререквизита
type UploadValidator interface {
	Validate(f upload.File) upload.Result
}

// HoldRegistry внешний реестр активных удержаний (redis)
type HoldRegistry interface {
	Acquire(ctx context.Context, sessionID, holdID string, ttl time.Duration) error
	Release(ctx context.Context, sessionID, holdID string) error
}

// Recorder метрики мастера
type Recorder interface {
	ObserveStep(step int)
	ObserveHold(event string)
	ObserveUpload(accepted bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
