package create_exam_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ExamBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ExamBookingService/internal/service/scheduling"
	"github.com/m04kA/SMC-ExamBookingService/internal/service/scheduling/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgSlotConflict       = "an exam slot with this date, time, level and exam option already exists"
	msgBlackoutDate       = "the exam date falls within a blackout period"
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

// Handle POST /api/v1/admin/exam-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateExamSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/exam-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot, err := h.service.CreateExamSlot(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, scheduling.ErrInvalidInput):
			h.logger.Warn("POST /admin/exam-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, scheduling.ErrSlotConflict):
			h.logger.Warn("POST /admin/exam-slots - Slot conflict: date=%s, time=%s", req.ExamDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, scheduling.ErrBlackoutDate):
			h.logger.Warn("POST /admin/exam-slots - Blackout date: date=%s", req.ExamDate)
			handlers.RespondConflict(w, msgBlackoutDate)

		default:
			h.logger.Error("POST /admin/exam-slots - Failed to create slot: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/exam-slots - Slot created: id=%d, date=%s, time=%s", slot.ID, slot.ExamDate, slot.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, slot)
}
