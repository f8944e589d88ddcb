package create_blackout

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ExamBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ExamBookingService/internal/service/scheduling"
	"github.com/m04kA/SMC-ExamBookingService/internal/service/scheduling/models"
)

const msgInvalidRequestBody = "invalid request body"

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

// Handle POST /api/v1/admin/blackouts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBlackoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blackouts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	period, err := h.service.CreateBlackout(r.Context(), &req)
	if err != nil {
		if errors.Is(err, scheduling.ErrInvalidInput) {
			h.logger.Warn("POST /admin/blackouts - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("POST /admin/blackouts - Failed to create blackout: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/blackouts - Blackout created: id=%d, %s..%s", period.ID, period.StartDate, period.EndDate)
	handlers.RespondJSON(w, http.StatusCreated, period)
}
