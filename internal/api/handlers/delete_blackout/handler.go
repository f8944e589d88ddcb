package delete_blackout

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ExamBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ExamBookingService/internal/service/scheduling"
)

const (
	msgInvalidBlackoutID = "invalid blackout ID"
	msgNotFound          = "blackout period not found"
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

// Handle DELETE /api/v1/admin/blackouts/{blackoutId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	blackoutID, err := strconv.ParseInt(mux.Vars(r)["blackoutId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/blackouts/{id} - Invalid blackout ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlackoutID)
		return
	}

	if err := h.service.DeleteBlackout(r.Context(), blackoutID); err != nil {
		if errors.Is(err, scheduling.ErrBlackoutNotFound) {
			h.logger.Warn("DELETE /admin/blackouts/{id} - Blackout not found: blackout_id=%d", blackoutID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /admin/blackouts/{id} - Failed to delete blackout: blackout_id=%d, error=%v", blackoutID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/blackouts/{id} - Blackout deleted: blackout_id=%d", blackoutID)
	handlers.RespondNoContent(w)
}
