package get_booking_calendar

import (
	"context"

	"github.com/m04kA/SMC-ExamBookingService/internal/service/bookings/models"
)

type BookingService interface {
	Calendar(ctx context.Context, reference string) (*models.CalendarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
