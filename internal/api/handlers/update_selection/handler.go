package update_selection

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ExamBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
	"github.com/m04kA/SMC-ExamBookingService/internal/service/sessions"
	"github.com/m04kA/SMC-ExamBookingService/internal/service/sessions/models"
	"github.com/m04kA/SMC-ExamBookingService/internal/wizard"
	"github.com/m04kA/SMC-ExamBookingService/pkg/types"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgSessionNotFound    = "booking session not found"
	msgUnknownField       = "field must be one of: level, examOption, date, time, currency"
	msgInvalidLevel       = "invalid level, expected A1..D2"
	msgInvalidExamOption  = "invalid exam option, expected oral, written or both"
	msgInvalidDate        = "invalid date format, expected YYYY-MM-DD"
	msgInvalidTime        = "invalid time format, expected HH:MM"
	msgInvalidCurrency    = "unsupported currency"
)

var errUnknownField = errors.New("unknown selection field")

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

// Handle PUT /api/v1/sessions/{sessionId}/selection
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req UpdateSelectionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /sessions/{id}/selection - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	wz, err := h.service.Get(sessionID)
	if err != nil {
		if errors.Is(err, sessions.ErrSessionNotFound) {
			h.logger.Warn("PUT /sessions/{id}/selection - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)
			return
		}
		h.logger.Error("PUT /sessions/{id}/selection - Failed to get session: session_id=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	apply, msg, err := parseSelection(req)
	if err != nil {
		h.logger.Warn("PUT /sessions/{id}/selection - Invalid value: session_id=%s, field=%s, error=%v",
			sessionID, req.Field, err)
		handlers.RespondBadRequest(w, msg)
		return
	}

	snap, err := apply(r.Context(), wz)
	if err != nil {
		status := handlers.RespondWizardError(w, err, snap)
		if status >= http.StatusInternalServerError {
			h.logger.Error("PUT /sessions/{id}/selection - Failed to apply selection: session_id=%s, field=%s, error=%v",
				sessionID, req.Field, err)
		} else {
			h.logger.Warn("PUT /sessions/{id}/selection - Selection rejected: session_id=%s, field=%s, error=%v",
				sessionID, req.Field, err)
		}
		return
	}

	h.logger.Info("PUT /sessions/{id}/selection - Selection applied: session_id=%s, field=%s, step=%d",
		sessionID, req.Field, snap.Step)
	handlers.RespondJSON(w, http.StatusOK, models.FromSnapshot(snap))
}

type applyFunc func(ctx context.Context, wz *wizard.Wizard) (wizard.Snapshot, error)

// parseSelection разбирает значение поля; при ошибке возвращает сообщение для клиента
func parseSelection(req UpdateSelectionRequest) (applyFunc, string, error) {
	switch req.Field {
	case FieldLevel:
		level, err := domain.ParseLevel(req.Value)
		if err != nil {
			return nil, msgInvalidLevel, err
		}
		return func(ctx context.Context, wz *wizard.Wizard) (wizard.Snapshot, error) {
			return wz.SelectLevel(ctx, level)
		}, "", nil

	case FieldExamOption:
		option, err := domain.ParseExamOption(req.Value)
		if err != nil {
			return nil, msgInvalidExamOption, err
		}
		return func(ctx context.Context, wz *wizard.Wizard) (wizard.Snapshot, error) {
			return wz.SelectExamOption(ctx, option)
		}, "", nil

	case FieldDate:
		date, err := time.Parse(domain.DateFormat, req.Value)
		if err != nil {
			return nil, msgInvalidDate, err
		}
		return func(ctx context.Context, wz *wizard.Wizard) (wizard.Snapshot, error) {
			return wz.SelectDate(ctx, date)
		}, "", nil

	case FieldTime:
		t, err := types.NewTimeStringFromString(req.Value)
		if err != nil {
			return nil, msgInvalidTime, err
		}
		return func(ctx context.Context, wz *wizard.Wizard) (wizard.Snapshot, error) {
			return wz.SelectTime(ctx, t)
		}, "", nil

	case FieldCurrency:
		currency, err := domain.ParseCurrency(req.Value)
		if err != nil {
			return nil, msgInvalidCurrency, err
		}
		return func(_ context.Context, wz *wizard.Wizard) (wizard.Snapshot, error) {
			return wz.SelectCurrency(currency)
		}, "", nil

	default:
		return nil, msgUnknownField, fmt.Errorf("%w: %q", errUnknownField, req.Field)
	}
}
