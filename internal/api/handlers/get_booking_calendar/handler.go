package get_booking_calendar

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ExamBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ExamBookingService/internal/service/bookings"
)

const (
	contentTypeICS = "text/calendar; charset=utf-8"
	formatJSON     = "json"

	msgInvalidReference = "invalid booking reference"
	msgNotFound         = "booking not found"
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

// Handle GET /api/v1/bookings/{reference}/calendar.ics
// ?format=json возвращает ICS вместе со ссылками Google и Outlook
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reference := mux.Vars(r)["reference"]

	export, err := h.service.Calendar(r.Context(), reference)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings/{reference}/calendar.ics - Invalid reference: %q", reference)
			handlers.RespondBadRequest(w, msgInvalidReference)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{reference}/calendar.ics - Booking not found: reference=%s", reference)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/{reference}/calendar.ics - Failed to export: reference=%s, error=%v", reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if r.URL.Query().Get("format") == formatJSON {
		handlers.RespondJSON(w, http.StatusOK, export)
		return
	}

	w.Header().Set("Content-Type", contentTypeICS)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(export.ICS)); err != nil {
		h.logger.Error("GET /bookings/{reference}/calendar.ics - Failed to write response: %v", err)
	}
}
