package submit_payment

import (
	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
)

// Request модель запроса на оплату
type Request struct {
	SessionID string
	// HoldID необязателен; если передан, должен совпадать с активным удержанием
	HoldID  string
	Method  domain.PaymentMethod
	Details domain.PaymentDetails
	// Amount сумма, показанная пользователю; nil - не проверять
	Amount *float64

	CandidateName  string
	CandidateEmail string
}

// Response результат оплаты
// Booking заполнен только при успешной оплате
type Response struct {
	Outcome         domain.PaymentOutcome
	RecoveryActions []string
	Amount          float64
	Currency        domain.Currency
	Booking         *domain.Booking
	EmailStatus     domain.EmailStatus
}
