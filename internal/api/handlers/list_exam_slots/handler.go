package list_exam_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ExamBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ExamBookingService/internal/service/scheduling"
	"github.com/m04kA/SMC-ExamBookingService/internal/service/scheduling/models"
)

type Handler struct {
	service SchedulingService
	logger  Logger
}

func NewHandler(service SchedulingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/exam-slots?startDate=&endDate=&level=&examOption=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := &models.ListExamSlotsRequest{
		StartDate:  q.Get("startDate"),
		EndDate:    q.Get("endDate"),
		Level:      q.Get("level"),
		ExamOption: q.Get("examOption"),
	}

	slots, err := h.service.ListExamSlots(r.Context(), req)
	if err != nil {
		if errors.Is(err, scheduling.ErrInvalidInput) {
			h.logger.Warn("GET /admin/exam-slots - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("GET /admin/exam-slots - Failed to list slots: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, slots)
}
