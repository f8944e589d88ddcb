package get_email_status

import (
	"context"

	"github.com/m04kA/SMC-ExamBookingService/internal/service/bookings/models"
)

type BookingService interface {
	EmailStatus(ctx context.Context, reference string) (*models.EmailStatusResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
