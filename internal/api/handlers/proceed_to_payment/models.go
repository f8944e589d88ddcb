package proceed_to_payment

import (
	"github.com/m04kA/SMC-ExamBookingService/internal/service/sessions/models"
)

// HoldResponse удержание слота и сумма к оплате
type HoldResponse struct {
	Hold           *models.HoldResponse    `json:"hold"`
	Amount         float64                 `json:"amount"`
	Currency       string                  `json:"currency"`
	CurrencySymbol string                  `json:"currencySymbol"`
	Session        *models.SessionResponse `json:"session"`
}
