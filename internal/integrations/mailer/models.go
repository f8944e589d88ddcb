package mailer

import (
	"time"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
)

// Status состояние письма-подтверждения
type Status struct {
	Reference   string
	Email       string
	Status      domain.EmailStatus
	Resends     int
	ResendsLeft int
	SentAt      time.Time
	DeliveredAt time.Time
}

// CanResend повторная отправка доступна
func (s Status) CanResend() bool {
	return s.Status != domain.EmailSending && s.ResendsLeft > 0
}
