package create_exam_slot

import (
	"context"

	"github.com/m04kA/SMC-ExamBookingService/internal/service/scheduling/models"
)

type SchedulingService interface {
	CreateExamSlot(ctx context.Context, req *models.CreateExamSlotRequest) (*models.ExamSlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
