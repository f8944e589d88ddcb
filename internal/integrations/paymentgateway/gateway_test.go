package paymentgateway

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
	"github.com/m04kA/SMC-ExamBookingService/pkg/logger"
)

func validRequest() Request {
	return Request{SessionID: "s1", Method: domain.PaymentCard, Amount: 230, Currency: domain.CurrencyUSD}
}

func TestGateway_FixedOutcomes(t *testing.T) {
	tests := []struct {
		status domain.PaymentStatus
		check  func(t *testing.T, o domain.PaymentOutcome)
	}{
		{domain.PaymentSuccess, func(t *testing.T, o domain.PaymentOutcome) {
			assert.Regexp(t, `^TXN\d+$`, o.TransactionID)
			assert.Empty(t, o.ErrorCode)
		}},
		{domain.PaymentFailed, func(t *testing.T, o domain.PaymentOutcome) {
			assert.Equal(t, ErrorCodeCardDeclined, o.ErrorCode)
			assert.NotEmpty(t, o.ErrorMessage)
			assert.Empty(t, o.TransactionID)
		}},
		{domain.PaymentVerificationRequired, func(t *testing.T, o domain.PaymentOutcome) {
			assert.Equal(t, "https://bank-verification-demo.com", o.VerificationURL)
			assert.Empty(t, o.TransactionID)
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			g := New(Config{}, clock.NewMock(), FixedDecider(tt.status), logger.NewNop())
			out, err := g.Charge(context.Background(), validRequest())
			require.NoError(t, err)
			assert.Equal(t, tt.status, out.Status)
			tt.check(t, out)
		})
	}
}

func TestGateway_WaitsForProcessingDelay(t *testing.T) {
	clk := clock.NewMock()
	g := New(Config{ProcessingDelay: 3 * time.Second}, clk, FixedDecider(domain.PaymentSuccess), logger.NewNop())

	done := make(chan domain.PaymentOutcome, 1)
	go func() {
		out, err := g.Charge(context.Background(), validRequest())
		assert.NoError(t, err)
		done <- out
	}()

	// ждем регистрации таймера в mock-часах
	time.Sleep(20 * time.Millisecond)
	select {
	case <-done:
		t.Fatal("charge completed before the processing delay")
	default:
	}

	clk.Add(3 * time.Second)
	select {
	case out := <-done:
		assert.Equal(t, domain.PaymentSuccess, out.Status)
	case <-time.After(time.Second):
		t.Fatal("charge did not complete")
	}
}

func TestGateway_CancelledContext(t *testing.T) {
	clk := clock.NewMock()
	g := New(Config{ProcessingDelay: time.Minute}, clk, FixedDecider(domain.PaymentSuccess), logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Charge(ctx, validRequest())
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestGateway_InvalidRequest(t *testing.T) {
	g := New(Config{}, clock.NewMock(), FixedDecider(domain.PaymentSuccess), logger.NewNop())

	req := validRequest()
	req.Method = "cash"
	_, err := g.Charge(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	req = validRequest()
	req.Amount = 0
	_, err = g.Charge(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestRandomDecider(t *testing.T) {
	always := NewRandomDecider(1, 1)
	for i := 0; i < 50; i++ {
		assert.Equal(t, domain.PaymentSuccess, always.Decide(validRequest()))
	}

	seen := make(map[domain.PaymentStatus]bool)
	never := NewRandomDecider(0, 7)
	for i := 0; i < 300; i++ {
		seen[never.Decide(validRequest())] = true
	}
	assert.Len(t, seen, 3)
}
