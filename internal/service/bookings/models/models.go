package models

import (
	"time"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
	"github.com/m04kA/SMC-ExamBookingService/internal/integrations/mailer"
)

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	Reference       string  `json:"reference"`
	ExamSlotID      int64   `json:"examSlotId"`
	Level           string  `json:"level"`
	LevelName       string  `json:"levelName"`
	ExamOption      string  `json:"examOption"`
	ExamOptionName  string  `json:"examOptionName"`
	ExamDate        string  `json:"examDate"`  // "2025-03-15"
	StartTime       string  `json:"startTime"` // "09:00"
	DurationMinutes int     `json:"durationMinutes"`
	Location        string  `json:"location"`
	Status          string  `json:"status"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	CurrencySymbol  string  `json:"currencySymbol"`
	PaymentMethod   string  `json:"paymentMethod"`
	TransactionID   string  `json:"transactionId"`
	CandidateName   string  `json:"candidateName"`
	CandidateEmail  string  `json:"candidateEmail"`
	CreatedAt       string  `json:"createdAt"`
}

// EmailStatusResponse статус письма-подтверждения
type EmailStatusResponse struct {
	Reference   string  `json:"reference"`
	Email       string  `json:"email"`
	Status      string  `json:"status"`
	Resends     int     `json:"resends"`
	ResendsLeft int     `json:"resendsLeft"`
	CanResend   bool    `json:"canResend"`
	SentAt      string  `json:"sentAt"`
	DeliveredAt *string `json:"deliveredAt,omitempty"`
}

// CalendarResponse ссылки для добавления в календарь
type CalendarResponse struct {
	FileName   string `json:"fileName"`
	ICS        string `json:"ics"`
	GoogleURL  string `json:"googleUrl"`
	OutlookURL string `json:"outlookUrl"`
}

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		Reference:       b.Reference,
		ExamSlotID:      b.ExamSlotID,
		Level:           string(b.Level),
		ExamOption:      string(b.ExamOption),
		ExamDate:        b.ExamDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		Location:        b.Location,
		Status:          string(b.Status),
		Amount:          b.Amount,
		Currency:        string(b.Currency),
		PaymentMethod:   string(b.PaymentMethod),
		TransactionID:   b.TransactionID,
		CandidateName:   b.CandidateName,
		CandidateEmail:  b.CandidateEmail,
		CreatedAt:       b.CreatedAt.UTC().Format(time.RFC3339),
	}

	for _, l := range domain.Levels() {
		if l.Code == b.Level {
			resp.LevelName = l.Name
		}
	}
	if info, ok := b.ExamOption.Info(); ok {
		resp.ExamOptionName = info.Name
	}
	if info, ok := b.Currency.Info(); ok {
		resp.CurrencySymbol = info.Symbol
	}

	return resp
}

// FromMailerStatus конвертирует статус письма
func FromMailerStatus(s mailer.Status) *EmailStatusResponse {
	resp := &EmailStatusResponse{
		Reference:   s.Reference,
		Email:       s.Email,
		Status:      string(s.Status),
		Resends:     s.Resends,
		ResendsLeft: s.ResendsLeft,
		CanResend:   s.CanResend(),
		SentAt:      s.SentAt.UTC().Format(time.RFC3339),
	}
	if !s.DeliveredAt.IsZero() {
		delivered := s.DeliveredAt.UTC().Format(time.RFC3339)
		resp.DeliveredAt = &delivered
	}
	return resp
}
