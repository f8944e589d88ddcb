package list_blackouts

import (
	"net/http"

	"github.com/m04kA/SMC-ExamBookingService/internal/api/handlers"
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

// Handle GET /api/v1/admin/blackouts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	periods, err := h.service.ListBlackouts(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/blackouts - Failed to list blackouts: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, periods)
}
