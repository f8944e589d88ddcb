package list_exam_slots

import (
	"context"

	"github.com/m04kA/SMC-ExamBookingService/internal/service/scheduling/models"
)

type SchedulingService interface {
	ListExamSlots(ctx context.Context, req *models.ListExamSlotsRequest) (*models.ExamSlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
