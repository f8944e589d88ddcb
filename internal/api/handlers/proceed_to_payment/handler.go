package proceed_to_payment

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

// Handle POST /api/v1/sessions/{sessionId}/hold
// Повторный запрос при активном удержании возвращает то же удержание
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	wz, err := h.service.Get(sessionID)
	if err != nil {
		if errors.Is(err, sessions.ErrSessionNotFound) {
			h.logger.Warn("POST /sessions/{id}/hold - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)
			return
		}
		h.logger.Error("POST /sessions/{id}/hold - Failed to get session: session_id=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	if _, err := wz.ProceedToPayment(r.Context()); err != nil {
		status := handlers.RespondWizardError(w, err, wz.Snapshot())
		if status >= http.StatusInternalServerError {
			h.logger.Error("POST /sessions/{id}/hold - Failed to start hold: session_id=%s, error=%v", sessionID, err)
		} else {
			h.logger.Warn("POST /sessions/{id}/hold - Hold rejected: session_id=%s, error=%v", sessionID, err)
		}
		return
	}

	amount, currency, err := wz.Quote(r.Context())
	if err != nil {
		h.logger.Error("POST /sessions/{id}/hold - Failed to quote price: session_id=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	snap := wz.Snapshot()
	resp := HoldResponse{
		Amount:   amount,
		Currency: string(currency),
		Session:  models.FromSnapshot(snap),
	}
	if info, ok := currency.Info(); ok {
		resp.CurrencySymbol = info.Symbol
	}
	resp.Hold = resp.Session.Hold

	h.logger.Info("POST /sessions/{id}/hold - Hold started: session_id=%s, amount=%.2f %s",
		sessionID, amount, currency)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}
