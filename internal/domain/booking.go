package domain

import (
	"time"

	"github.com/m04kA/SMC-ExamBookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking подтвержденная запись на экзамен (создается после успешной оплаты)
type Booking struct {
	ID              int64
	Reference       string // BK-XXXXXXXX
	ExamSlotID      int64
	Level           Level
	ExamOption      ExamOption
	ExamDate        time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Location        string
	Status          BookingStatus

	// Данные оплаты
	Amount        float64
	Currency      Currency
	PaymentMethod PaymentMethod
	TransactionID string

	CandidateName  string
	CandidateEmail string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies a seat
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed
}

// StartsAt момент начала экзамена в UTC
func (b *Booking) StartsAt() (time.Time, error) {
	return b.StartTime.On(b.ExamDate)
}

// Duration длительность экзамена
func (b *Booking) Duration() time.Duration {
	return time.Duration(b.DurationMinutes) * time.Minute
}

// EmailStatus статус письма-подтверждения
type EmailStatus string

const (
	EmailSending   EmailStatus = "sending"
	EmailDelivered EmailStatus = "delivered"
	EmailFailed    EmailStatus = "failed"
)
