package list_blackouts

import (
	"context"

	"github.com/m04kA/SMC-ExamBookingService/internal/service/scheduling/models"
)

type SchedulingService interface {
	ListBlackouts(ctx context.Context) (*models.BlackoutListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
