package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
	"github.com/m04kA/SMC-ExamBookingService/pkg/logger"
)

type stubRates struct {
	rates map[domain.Currency]float64
	err   error
	calls int
}

func (s *stubRates) GetRatesWithGracefulDegradation(context.Context) (map[domain.Currency]float64, error) {
	s.calls++
	return s.rates, s.err
}

func TestLookup_GetPrice(t *testing.T) {
	l := NewLookup(DefaultConfig(), nil, logger.NewNop())
	ctx := context.Background()

	tests := []struct {
		option   domain.ExamOption
		currency domain.Currency
		want     float64
	}{
		{domain.ExamWritten, domain.CurrencyEUR, 140.25},
		{domain.ExamOral, domain.CurrencyUSD, 85},
		{domain.ExamBoth, domain.CurrencyGBP, 167.9},
		{domain.ExamBoth, domain.CurrencyINR, 19117.6},
		{domain.ExamWritten, domain.CurrencyJPY, 24668},
		{domain.ExamOral, domain.CurrencyJPY, 12708},
	}

	for _, tt := range tests {
		t.Run(string(tt.option)+"/"+string(tt.currency), func(t *testing.T) {
			got, err := l.GetPrice(ctx, tt.option, tt.currency)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestLookup_Errors(t *testing.T) {
	l := NewLookup(DefaultConfig(), nil, logger.NewNop())

	_, err := l.GetPrice(context.Background(), "practical", domain.CurrencyUSD)
	assert.ErrorIs(t, err, ErrUnknownExamOption)

	_, err = l.GetPrice(context.Background(), domain.ExamOral, "XYZ")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestLookup_RemoteRatesOverrideStatic(t *testing.T) {
	remote := &stubRates{rates: map[domain.Currency]float64{domain.CurrencyEUR: 0.9, "XTS": 5}}
	cfg := DefaultConfig()
	cfg.CacheTTL = time.Minute
	l := NewLookup(cfg, remote, logger.NewNop())

	got, err := l.GetPrice(context.Background(), domain.ExamOral, domain.CurrencyEUR)
	require.NoError(t, err)
	assert.InDelta(t, 76.5, got, 1e-9)

	rates, err := l.Rates(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, rates, domain.Currency("XTS"))
	assert.Equal(t, 1, remote.calls, "cached within ttl")
}

func TestLookup_DegradedRemoteFallsBackToStatic(t *testing.T) {
	remote := &stubRates{err: errors.New("unavailable")}
	l := NewLookup(DefaultConfig(), remote, logger.NewNop())

	got, err := l.GetPrice(context.Background(), domain.ExamWritten, domain.CurrencyEUR)
	require.NoError(t, err)
	assert.InDelta(t, 140.25, got, 1e-9)
}

func TestRound(t *testing.T) {
	assert.InDelta(t, 12708, Round(12707.5, 0), 1e-9)
	assert.InDelta(t, 140.25, Round(165*0.85, 2), 1e-9)
}
