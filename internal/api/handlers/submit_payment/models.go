package submit_payment

import (
	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
	bookingModels "github.com/m04kA/SMC-ExamBookingService/internal/service/bookings/models"
	submitPayment "github.com/m04kA/SMC-ExamBookingService/internal/usecase/submit_payment"
)

// CardDetails данные карты
type CardDetails struct {
	Number      string `json:"number"` // 16 цифр, пробелы допускаются
	ExpiryMonth int    `json:"expiryMonth"`
	ExpiryYear  int    `json:"expiryYear"`
	CVV         string `json:"cvv"`
	Name        string `json:"name"`
}

// SubmitPaymentRequest HTTP запрос на оплату
// Заполняются поля выбранного способа: card, upiId, bankCode или walletProvider
type SubmitPaymentRequest struct {
	HoldID         string       `json:"holdId"`
	Method         string       `json:"method"`
	Amount         *float64     `json:"amount,omitempty"`
	CandidateName  string       `json:"candidateName"`
	CandidateEmail string       `json:"candidateEmail"`
	Card           *CardDetails `json:"card,omitempty"`
	UPIID          string       `json:"upiId,omitempty"`
	BankCode       string       `json:"bankCode,omitempty"`
	WalletProvider string       `json:"walletProvider,omitempty"`
	AcceptTerms    bool         `json:"acceptTerms"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitPaymentRequest) ToUseCaseRequest(sessionID string) *submitPayment.Request {
	details := domain.PaymentDetails{
		UPIID:          r.UPIID,
		BankCode:       r.BankCode,
		WalletProvider: r.WalletProvider,
		AcceptTerms:    r.AcceptTerms,
	}
	if r.Card != nil {
		details.CardNumber = r.Card.Number
		details.ExpiryMonth = r.Card.ExpiryMonth
		details.ExpiryYear = r.Card.ExpiryYear
		details.CVV = r.Card.CVV
		details.CardholderName = r.Card.Name
	}

	return &submitPayment.Request{
		SessionID:      sessionID,
		HoldID:         r.HoldID,
		Method:         domain.PaymentMethod(r.Method),
		Details:        details,
		Amount:         r.Amount,
		CandidateName:  r.CandidateName,
		CandidateEmail: r.CandidateEmail,
	}
}

// PaymentResponse результат оплаты
// Booking заполнен при успехе, RecoveryActions при отказе или проверке
type PaymentResponse struct {
	Status          string                         `json:"status"`
	TransactionID   string                         `json:"transactionId,omitempty"`
	ErrorCode       string                         `json:"errorCode,omitempty"`
	ErrorMessage    string                         `json:"errorMessage,omitempty"`
	VerificationURL string                         `json:"verificationUrl,omitempty"`
	RecoveryActions []string                       `json:"recoveryActions,omitempty"`
	Amount          float64                        `json:"amount"`
	Currency        string                         `json:"currency"`
	Booking         *bookingModels.BookingResponse `json:"booking,omitempty"`
	EmailStatus     string                         `json:"emailStatus,omitempty"`
}

// SlotFullResponse 409 после списания: место заняли во время оплаты
type SlotFullResponse struct {
	Code          int    `json:"code"`
	Message       string `json:"message"`
	TransactionID string `json:"transactionId"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(r *submitPayment.Response) *PaymentResponse {
	resp := &PaymentResponse{
		Status:          string(r.Outcome.Status),
		TransactionID:   r.Outcome.TransactionID,
		ErrorCode:       r.Outcome.ErrorCode,
		ErrorMessage:    r.Outcome.ErrorMessage,
		VerificationURL: r.Outcome.VerificationURL,
		RecoveryActions: r.RecoveryActions,
		Amount:          r.Amount,
		Currency:        string(r.Currency),
		EmailStatus:     string(r.EmailStatus),
	}
	if r.Booking != nil {
		resp.Booking = bookingModels.FromDomainBooking(r.Booking)
	}
	return resp
}
