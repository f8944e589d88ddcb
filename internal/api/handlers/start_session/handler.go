package start_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ExamBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ExamBookingService/internal/service/sessions"
	"github.com/m04kA/SMC-ExamBookingService/internal/service/sessions/models"
)

const msgTooManySessions = "too many active booking sessions, please try again later"

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	wz, err := h.service.StartSession()
	if err != nil {
		if errors.Is(err, sessions.ErrTooManySessions) {
			h.logger.Warn("POST /sessions - Session limit reached")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgTooManySessions)
			return
		}
		h.logger.Error("POST /sessions - Failed to start session: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /sessions - Session started: session_id=%s", wz.ID())
	handlers.RespondJSON(w, http.StatusCreated, models.FromSnapshot(wz.Snapshot()))
}
