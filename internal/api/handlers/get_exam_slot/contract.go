package get_exam_slot

import (
	"context"

	"github.com/m04kA/SMC-ExamBookingService/internal/service/scheduling/models"
)

type SchedulingService interface {
	GetExamSlot(ctx context.Context, id int64) (*models.ExamSlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
