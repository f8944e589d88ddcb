package submit_payment

import (
	"context"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
	"github.com/m04kA/SMC-ExamBookingService/internal/integrations/mailer"
	"github.com/m04kA/SMC-ExamBookingService/internal/integrations/paymentgateway"
	"github.com/m04kA/SMC-ExamBookingService/internal/wizard"
)

// SessionRegistry реестр сессий мастера
type SessionRegistry interface {
	Get(id string) (*wizard.Wizard, error)
}

// HoldStore внешний реестр удержаний
type HoldStore interface {
	IsActive(ctx context.Context, sessionID, holdID string) (bool, error)
}

// ExamSlotRepository интерфейс репозитория слотов экзамена
type ExamSlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ExamSlot, error)
	IncrementBooked(ctx context.Context, id int64) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// PaymentGateway платежный шлюз
type PaymentGateway interface {
	Charge(ctx context.Context, req paymentgateway.Request) (domain.PaymentOutcome, error)
}

// Mailer отправка письма-подтверждения
type Mailer interface {
	Send(reference, email string) (mailer.Status, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Recorder метрики платежей
type Recorder interface {
	ObservePayment(method, status string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
