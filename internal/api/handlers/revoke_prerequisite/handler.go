package revoke_prerequisite

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ExamBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ExamBookingService/internal/service/sessions"
	"github.com/m04kA/SMC-ExamBookingService/internal/service/sessions/models"
)

const msgSessionNotFound = "booking session not found"

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

// Handle DELETE /api/v1/sessions/{sessionId}/prerequisite
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	wz, err := h.service.Get(sessionID)
	if err != nil {
		if errors.Is(err, sessions.ErrSessionNotFound) {
			h.logger.Warn("DELETE /sessions/{id}/prerequisite - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)
			return
		}
		h.logger.Error("DELETE /sessions/{id}/prerequisite - Failed to get session: session_id=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	snap, err := wz.RevokePrerequisite(r.Context())
	if err != nil {
		h.logger.Warn("DELETE /sessions/{id}/prerequisite - Revoke rejected: session_id=%s, error=%v", sessionID, err)
		handlers.RespondWizardError(w, err, snap)
		return
	}

	h.logger.Info("DELETE /sessions/{id}/prerequisite - Document revoked: session_id=%s, step=%d", sessionID, snap.Step)
	handlers.RespondJSON(w, http.StatusOK, models.FromSnapshot(snap))
}
