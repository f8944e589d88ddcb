package paymentgateway

import "github.com/m04kA/SMC-ExamBookingService/internal/domain"

const (
	ErrorCodeCardDeclined = "CARD_DECLINED"

	msgCardDeclined         = "Your card was declined. Please check your card details or try a different payment method."
	msgVerificationRequired = "Additional verification required by your bank"
)

// Request списание за бронирование
type Request struct {
	SessionID string
	Method    domain.PaymentMethod
	Amount    float64
	Currency  domain.Currency
}
