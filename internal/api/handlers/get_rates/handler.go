package get_rates

import (
	"net/http"

	"github.com/m04kA/SMC-ExamBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
)

type Handler struct {
	service RatesService
	logger  Logger
}

func NewHandler(service RatesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/rates
// Порядок валют по справочнику domain
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rates, err := h.service.Rates(r.Context())
	if err != nil {
		h.logger.Error("GET /rates - Failed to get rates: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	resp := RatesResponse{
		BaseCurrency: string(domain.BaseCurrency),
		Rates:        make([]RateResponse, 0, len(rates)),
	}
	for _, info := range domain.Currencies() {
		rate, ok := rates[info.Code]
		if !ok {
			continue
		}
		resp.Rates = append(resp.Rates, RateResponse{
			Code:        string(info.Code),
			Name:        info.Name,
			Symbol:      info.Symbol,
			Rate:        rate,
			ZeroDecimal: info.ZeroDecimal,
		})
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
