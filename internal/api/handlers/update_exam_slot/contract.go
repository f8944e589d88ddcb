package update_exam_slot

import (
	"context"

	"github.com/m04kA/SMC-ExamBookingService/internal/service/scheduling/models"
)

type SchedulingService interface {
	UpdateExamSlot(ctx context.Context, id int64, req *models.UpdateExamSlotRequest) (*models.ExamSlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
