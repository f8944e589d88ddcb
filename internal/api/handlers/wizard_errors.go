package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ExamBookingService/internal/wizard"
)

const (
	msgInvalidSelection      = "invalid selection value"
	msgStepLocked            = "this step is not available yet, complete the previous steps first"
	msgDateUnavailable       = "selected date is not available"
	msgSlotUnavailable       = "selected time slot is not available"
	msgPrerequisiteNotNeeded = "no prerequisite document is required for the full exam"
	msgHoldNotActive         = "booking hold is not active"
	msgBookingCompleted      = "booking is already completed for this session"
	msgSessionClosed         = "booking session is closed"
	msgPaymentInProgress     = "a payment for this session is already being processed"
)

// GateViolationResponse ошибка перехода на недоступный шаг; Step текущий шаг сессии
type GateViolationResponse struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	Step     int    `json:"step"`
	StepName string `json:"stepName"`
}

// RespondWizardError отвечает на ошибку мастера и возвращает HTTP статус
func RespondWizardError(w http.ResponseWriter, err error, snap wizard.Snapshot) int {
	switch {
	case errors.Is(err, wizard.ErrInvalidInput):
		RespondBadRequest(w, msgInvalidSelection)
		return http.StatusBadRequest

	case wizard.IsGateViolation(err):
		RespondJSON(w, http.StatusConflict, GateViolationResponse{
			Code:     http.StatusConflict,
			Message:  gateMessage(err),
			Step:     int(snap.Step),
			StepName: snap.Step.String(),
		})
		return http.StatusConflict

	case errors.Is(err, wizard.ErrHoldNotActive):
		RespondConflict(w, msgHoldNotActive)
		return http.StatusConflict

	case errors.Is(err, wizard.ErrBookingCompleted):
		RespondConflict(w, msgBookingCompleted)
		return http.StatusConflict

	case errors.Is(err, wizard.ErrPaymentInProgress):
		RespondConflict(w, msgPaymentInProgress)
		return http.StatusConflict

	case errors.Is(err, wizard.ErrSessionClosed):
		RespondError(w, http.StatusGone, msgSessionClosed)
		return http.StatusGone

	default:
		RespondInternalError(w)
		return http.StatusInternalServerError
	}
}

func gateMessage(err error) string {
	switch {
	case errors.Is(err, wizard.ErrDateUnavailable):
		return msgDateUnavailable
	case errors.Is(err, wizard.ErrSlotUnavailable):
		return msgSlotUnavailable
	case errors.Is(err, wizard.ErrPrerequisiteNotRequired):
		return msgPrerequisiteNotNeeded
	default:
		return msgStepLocked
	}
}
