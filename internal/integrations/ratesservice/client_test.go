package ratesservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
	"github.com/m04kA/SMC-ExamBookingService/pkg/logger"
)

func TestClient_GetRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rates", r.URL.Path)
		assert.Equal(t, "USD", r.URL.Query().Get("base"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"USD","rates":{"EUR":0.9,"JPY":150,"XTS":3}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", domain.CurrencyUSD, time.Second, logger.NewNop())
	rates, err := c.GetRates(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[domain.Currency]float64{
		domain.CurrencyUSD: 1,
		domain.CurrencyEUR: 0.9,
		domain.CurrencyJPY: 150,
	}, rates)
}

func TestClient_GetRates_InvalidResponses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"code":500,"message":"boom"}`},
		{name: "broken json", status: http.StatusOK, body: `{"rates":`},
		{name: "other base", status: http.StatusOK, body: `{"base":"EUR","rates":{"USD":1.1}}`},
		{name: "negative rate", status: http.StatusOK, body: `{"base":"USD","rates":{"EUR":-1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, domain.CurrencyUSD, time.Second, logger.NewNop())
			_, err := c.GetRates(context.Background())
			assert.ErrorIs(t, err, ErrInvalidResponse)

			_, err = c.GetRatesWithGracefulDegradation(context.Background())
			assert.ErrorIs(t, err, ErrServiceDegraded)
		})
	}
}

func TestClient_GetRates_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, domain.CurrencyUSD, 200*time.Millisecond, logger.NewNop())
	_, err := c.GetRates(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
