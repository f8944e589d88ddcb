package update_exam_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ExamBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ExamBookingService/internal/service/scheduling"
	"github.com/m04kA/SMC-ExamBookingService/internal/service/scheduling/models"
)

const (
	msgInvalidSlotID       = "invalid exam slot ID"
	msgInvalidRequestBody  = "invalid request body"
	msgNotFound            = "exam slot not found"
	msgSlotConflict        = "an exam slot with this date, time, level and exam option already exists"
	msgSlotHasBookings     = "exam slot with bookings cannot be rescheduled"
	msgCapacityBelowBooked = "capacity cannot be less than the number of booked seats"
	msgBlackoutDate        = "the exam date falls within a blackout period"
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

// Handle PUT /api/v1/admin/exam-slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /admin/exam-slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req models.UpdateExamSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/exam-slots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot, err := h.service.UpdateExamSlot(r.Context(), slotID, &req)
	if err != nil {
		switch {
		case errors.Is(err, scheduling.ErrInvalidInput):
			h.logger.Warn("PUT /admin/exam-slots/{id} - Invalid input: slot_id=%d, error=%v", slotID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, scheduling.ErrSlotNotFound):
			h.logger.Warn("PUT /admin/exam-slots/{id} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, scheduling.ErrSlotConflict):
			h.logger.Warn("PUT /admin/exam-slots/{id} - Slot conflict: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, scheduling.ErrSlotHasBookings):
			h.logger.Warn("PUT /admin/exam-slots/{id} - Slot has bookings: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgSlotHasBookings)

		case errors.Is(err, scheduling.ErrCapacityBelowBooked):
			h.logger.Warn("PUT /admin/exam-slots/{id} - Capacity below booked: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgCapacityBelowBooked)

		case errors.Is(err, scheduling.ErrBlackoutDate):
			h.logger.Warn("PUT /admin/exam-slots/{id} - Blackout date: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgBlackoutDate)

		default:
			h.logger.Error("PUT /admin/exam-slots/{id} - Failed to update slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/exam-slots/{id} - Slot updated: slot_id=%d", slotID)
	handlers.RespondJSON(w, http.StatusOK, slot)
}
