package get_rates

import (
	"context"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
)

type RatesService interface {
	Rates(ctx context.Context) (map[domain.Currency]float64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
