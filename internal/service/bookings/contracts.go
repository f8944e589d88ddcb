package bookings

import (
	"context"

	"github.com/m04kA/SMC-ExamBookingService/internal/calendar"
	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
	"github.com/m04kA/SMC-ExamBookingService/internal/integrations/mailer"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
}

// CalendarGenerator экспорт бронирования в календарь
type CalendarGenerator interface {
	Export(b *domain.Booking) (calendar.Export, error)
}

// Mailer письма-подтверждения
type Mailer interface {
	Send(reference, email string) (mailer.Status, error)
	Resend(reference string) (mailer.Status, error)
	Status(reference string) (mailer.Status, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
