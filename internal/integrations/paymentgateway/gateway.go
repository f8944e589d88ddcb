package paymentgateway

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Config параметры симулятора
type Config struct {
	ProcessingDelay time.Duration
	VerificationURL string
}

// Gateway симулятор платежного шлюза
// Один вызов Charge - одна попытка, повторов нет.
type Gateway struct {
	cfg     Config
	clock   clock.Clock
	decider Decider
	log     Logger
}

func New(cfg Config, clk clock.Clock, decider Decider, log Logger) *Gateway {
	if cfg.VerificationURL == "" {
		cfg.VerificationURL = "https://bank-verification-demo.com"
	}
	return &Gateway{cfg: cfg, clock: clk, decider: decider, log: log}
}

// Charge ждет ProcessingDelay и возвращает исход от Decider
// Отмена ctx во время ожидания возвращает ErrCancelled, исход не вычисляется
func (g *Gateway) Charge(ctx context.Context, req Request) (domain.PaymentOutcome, error) {
	if !req.Method.Valid() {
		return domain.PaymentOutcome{}, fmt.Errorf("%w: unsupported method %q", ErrInvalidRequest, req.Method)
	}
	if req.Amount <= 0 {
		return domain.PaymentOutcome{}, fmt.Errorf("%w: amount must be positive", ErrInvalidRequest)
	}

	if g.cfg.ProcessingDelay > 0 {
		timer := g.clock.Timer(g.cfg.ProcessingDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			g.log.Warn("Charge: session=%s cancelled: %v", req.SessionID, ctx.Err())
			return domain.PaymentOutcome{}, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
		case <-timer.C:
		}
	}

	status := g.decider.Decide(req)
	outcome := domain.PaymentOutcome{Status: status}

	switch status {
	case domain.PaymentSuccess:
		outcome.TransactionID = fmt.Sprintf("TXN%d", g.clock.Now().UnixMilli())
	case domain.PaymentFailed:
		outcome.ErrorCode = ErrorCodeCardDeclined
		outcome.ErrorMessage = msgCardDeclined
	case domain.PaymentVerificationRequired:
		outcome.ErrorMessage = msgVerificationRequired
		outcome.VerificationURL = g.cfg.VerificationURL
	}

	g.log.Info("Charge: session=%s, method=%s, amount=%.2f %s, status=%s",
		req.SessionID, req.Method, req.Amount, req.Currency, status)
	return outcome, nil
}
