package get_price

import (
	"context"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
)

type PricingService interface {
	BasePrice(option domain.ExamOption) (float64, error)
	GetPrice(ctx context.Context, option domain.ExamOption, currency domain.Currency) (float64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
