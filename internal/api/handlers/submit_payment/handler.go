package submit_payment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ExamBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
	submitPayment "github.com/m04kA/SMC-ExamBookingService/internal/usecase/submit_payment"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgSessionNotFound    = "booking session not found"
	msgHoldNotActive      = "booking hold has expired or was not started, please restart the booking process"
	msgAlreadyBooked      = "booking is already completed for this session"
	msgInvalidDetails     = "invalid payment details"
	msgTermsNotAccepted   = "you must accept the terms and conditions"
	msgAmountMismatch     = "payment amount does not match the current price"
	msgSlotFull           = "the selected exam session is fully booked"
	msgPaymentInProgress  = "a payment for this session is already being processed"
)

type Handler struct {
	useCase SubmitPaymentUseCase
	logger  Logger
}

func NewHandler(useCase SubmitPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{sessionId}/payment
// Отказ шлюза и запрос проверки возвращаются с 402, удержание сохраняется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req SubmitPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(sessionID))
	if err != nil {
		switch {
		case errors.Is(err, submitPayment.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{id}/payment - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, submitPayment.ErrHoldNotActive):
			h.logger.Warn("POST /sessions/{id}/payment - Hold not active: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgHoldNotActive)

		case errors.Is(err, submitPayment.ErrPaymentInProgress):
			h.logger.Warn("POST /sessions/{id}/payment - Payment in progress: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgPaymentInProgress)

		case errors.Is(err, submitPayment.ErrAlreadyBooked):
			h.logger.Warn("POST /sessions/{id}/payment - Already booked: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgAlreadyBooked)

		case errors.Is(err, submitPayment.ErrTermsNotAccepted):
			h.logger.Warn("POST /sessions/{id}/payment - Terms not accepted: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgTermsNotAccepted)

		case errors.Is(err, submitPayment.ErrInvalidPaymentDetails):
			h.logger.Warn("POST /sessions/{id}/payment - Invalid payment details: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidDetails)

		case errors.Is(err, submitPayment.ErrAmountMismatch):
			h.logger.Warn("POST /sessions/{id}/payment - Amount mismatch: session_id=%s, error=%v", sessionID, err)
			handlers.RespondConflict(w, msgAmountMismatch)

		case errors.Is(err, submitPayment.ErrSlotFull):
			if result != nil && result.Outcome.TransactionID != "" {
				h.logger.Error("POST /sessions/{id}/payment - Slot full after charge: session_id=%s, transaction_id=%s",
					sessionID, result.Outcome.TransactionID)
				handlers.RespondJSON(w, http.StatusConflict, SlotFullResponse{
					Code:          http.StatusConflict,
					Message:       msgSlotFull,
					TransactionID: result.Outcome.TransactionID,
				})
				return
			}
			h.logger.Warn("POST /sessions/{id}/payment - Slot full: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgSlotFull)

		default:
			h.logger.Error("POST /sessions/{id}/payment - Failed to process payment: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	if result.Outcome.Status != domain.PaymentSuccess {
		h.logger.Warn("POST /sessions/{id}/payment - Payment not completed: session_id=%s, status=%s",
			sessionID, result.Outcome.Status)
		handlers.RespondJSON(w, http.StatusPaymentRequired, response)
		return
	}

	h.logger.Info("POST /sessions/{id}/payment - Booking confirmed: session_id=%s, reference=%s",
		sessionID, result.Booking.Reference)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
