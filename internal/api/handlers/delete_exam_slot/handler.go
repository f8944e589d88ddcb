package delete_exam_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ExamBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ExamBookingService/internal/service/scheduling"
)

const (
	msgInvalidSlotID   = "invalid exam slot ID"
	msgNotFound        = "exam slot not found"
	msgSlotHasBookings = "exam slot with bookings cannot be deleted"
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

// Handle DELETE /api/v1/admin/exam-slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/exam-slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	if err := h.service.DeleteExamSlot(r.Context(), slotID); err != nil {
		switch {
		case errors.Is(err, scheduling.ErrSlotNotFound):
			h.logger.Warn("DELETE /admin/exam-slots/{id} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, scheduling.ErrSlotHasBookings):
			h.logger.Warn("DELETE /admin/exam-slots/{id} - Slot has bookings: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgSlotHasBookings)

		default:
			h.logger.Error("DELETE /admin/exam-slots/{id} - Failed to delete slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/exam-slots/{id} - Slot deleted: slot_id=%d", slotID)
	handlers.RespondNoContent(w)
}
