package get_price

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ExamBookingService/internal/pricing"
	"github.com/m04kA/SMC-ExamBookingService/pkg/logger"
)

func get(path string) *httptest.ResponseRecorder {
	log := logger.NewNop()
	r := mux.NewRouter()
	r.HandleFunc("/prices/{examOption}", NewHandler(pricing.NewLookup(pricing.DefaultConfig(), nil, log), log).Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandler_Price(t *testing.T) {
	tests := []struct {
		path     string
		amount   float64
		currency string
		symbol   string
	}{
		{"/prices/written?currency=EUR", 140.25, "EUR", "€"},
		{"/prices/written", 165, "USD", "$"},
		{"/prices/oral?currency=jpy", 12708, "JPY", "¥"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(tt.path)
			require.Equal(t, http.StatusOK, rec.Code)

			var resp PriceResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.amount, resp.Amount)
			assert.Equal(t, tt.currency, resp.Currency)
			assert.Equal(t, tt.symbol, resp.CurrencySymbol)
			assert.Equal(t, "USD", resp.BaseCurrency)
		})
	}
}

func TestHandler_BadInput(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, get("/prices/essay").Code)
	assert.Equal(t, http.StatusBadRequest, get("/prices/oral?currency=XYZ").Code)
}
