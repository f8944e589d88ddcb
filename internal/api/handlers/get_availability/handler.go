package get_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ExamBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
	getAvailability "github.com/m04kA/SMC-ExamBookingService/internal/usecase/get_availability"
)

const (
	msgInvalidDate       = "invalid date format, expected YYYY-MM-DD"
	msgInvalidLevel      = "invalid level, expected A1..D2"
	msgInvalidExamOption = "invalid exam option, expected oral, written or both"
	msgInvalidInput      = "invalid availability request"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?date=2025-03-15&level=B2&examOption=written
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	date, err := time.Parse(domain.DateFormat, q.Get("date"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	level, err := domain.ParseLevel(q.Get("level"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid level: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLevel)
		return
	}
	option, err := domain.ParseExamOption(q.Get("examOption"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid exam option: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExamOption)
		return
	}

	req := &getAvailability.Request{Date: date, Level: level, ExamOption: option}
	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput), errors.Is(err, getAvailability.ErrInvalidDate):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /availability - Failed to get availability: date=%s, error=%v", q.Get("date"), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(req, result))
}
