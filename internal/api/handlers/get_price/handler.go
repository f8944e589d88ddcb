package get_price

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ExamBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
)

const (
	msgInvalidExamOption = "invalid exam option, expected oral, written or both"
	msgInvalidCurrency   = "unsupported currency"
)

type Handler struct {
	service PricingService
	logger  Logger
}

func NewHandler(service PricingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/prices/{examOption}?currency=EUR
// Без currency цена возвращается в базовой валюте
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	option, err := domain.ParseExamOption(mux.Vars(r)["examOption"])
	if err != nil {
		h.logger.Warn("GET /prices/{option} - Invalid exam option: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExamOption)
		return
	}

	currency := domain.BaseCurrency
	if raw := r.URL.Query().Get("currency"); raw != "" {
		currency, err = domain.ParseCurrency(raw)
		if err != nil {
			h.logger.Warn("GET /prices/{option} - Invalid currency: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCurrency)
			return
		}
	}

	base, err := h.service.BasePrice(option)
	if err != nil {
		h.logger.Error("GET /prices/{option} - Failed to get base price: option=%s, error=%v", option, err)
		handlers.RespondInternalError(w)
		return
	}
	amount, err := h.service.GetPrice(r.Context(), option, currency)
	if err != nil {
		h.logger.Error("GET /prices/{option} - Failed to convert price: option=%s, currency=%s, error=%v",
			option, currency, err)
		handlers.RespondInternalError(w)
		return
	}

	resp := PriceResponse{
		ExamOption:   string(option),
		BasePrice:    base,
		BaseCurrency: string(domain.BaseCurrency),
		Amount:       amount,
		Currency:     string(currency),
	}
	if info, ok := option.Info(); ok {
		resp.ExamOptionName = info.Name
	}
	if info, ok := currency.Info(); ok {
		resp.CurrencySymbol = info.Symbol
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
