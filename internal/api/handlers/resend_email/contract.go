package resend_email

import (
	"context"

	"github.com/m04kA/SMC-ExamBookingService/internal/service/bookings/models"
)

type BookingService interface {
	ResendEmail(ctx context.Context, reference string) (*models.EmailStatusResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
