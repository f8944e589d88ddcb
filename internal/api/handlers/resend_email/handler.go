package resend_email

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ExamBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ExamBookingService/internal/service/bookings"
)

const (
	msgInvalidReference = "invalid booking reference"
	msgNotFound         = "booking not found"
	msgInProgress       = "confirmation email is still being sent"
	msgResendLimit      = "maximum number of resends reached"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{reference}/email/resend
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reference := mux.Vars(r)["reference"]

	status, err := h.service.ResendEmail(r.Context(), reference)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{reference}/email/resend - Invalid reference: %q", reference)
			handlers.RespondBadRequest(w, msgInvalidReference)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{reference}/email/resend - Booking not found: reference=%s", reference)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrEmailInProgress):
			h.logger.Warn("POST /bookings/{reference}/email/resend - Email in progress: reference=%s", reference)
			handlers.RespondConflict(w, msgInProgress)

		case errors.Is(err, bookings.ErrResendLimit):
			h.logger.Warn("POST /bookings/{reference}/email/resend - Resend limit reached: reference=%s", reference)
			handlers.RespondError(w, http.StatusTooManyRequests, msgResendLimit)

		default:
			h.logger.Error("POST /bookings/{reference}/email/resend - Failed to resend: reference=%s, error=%v", reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{reference}/email/resend - Email resent: reference=%s, resends_left=%d",
		reference, status.ResendsLeft)
	handlers.RespondJSON(w, http.StatusAccepted, status)
}
