package submit_payment

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
)

const (
	cardNumberDigits = 16
	minCVVDigits     = 3
	maxCVVDigits     = 4
)

// validateRequest валидирует форму оплаты для выбранного способа
func validateRequest(req *Request, now time.Time) error {
	if strings.TrimSpace(req.SessionID) == "" {
		return fmt.Errorf("%w: sessionId is required", ErrInvalidPaymentDetails)
	}

	if !req.Method.Valid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidPaymentDetails, req.Method)
	}

	if strings.TrimSpace(req.CandidateName) == "" {
		return fmt.Errorf("%w: candidate name is required", ErrInvalidPaymentDetails)
	}

	if _, err := mail.ParseAddress(req.CandidateEmail); err != nil {
		return fmt.Errorf("%w: invalid email %q", ErrInvalidPaymentDetails, req.CandidateEmail)
	}

	if err := validateDetails(req.Method, req.Details, now); err != nil {
		return err
	}

	if !req.Details.AcceptTerms {
		return ErrTermsNotAccepted
	}

	return nil
}

func validateDetails(method domain.PaymentMethod, d domain.PaymentDetails, now time.Time) error {
	switch method {
	case domain.PaymentCard:
		return validateCard(d, now)
	case domain.PaymentUPI:
		if !strings.Contains(d.UPIID, "@") {
			return fmt.Errorf("%w: invalid UPI ID", ErrInvalidPaymentDetails)
		}
	case domain.PaymentNetBanking:
		if _, ok := domain.SupportedBanks[d.BankCode]; !ok {
			return fmt.Errorf("%w: unsupported bank %q", ErrInvalidPaymentDetails, d.BankCode)
		}
	case domain.PaymentWallet:
		if _, ok := domain.SupportedWallets[d.WalletProvider]; !ok {
			return fmt.Errorf("%w: unsupported wallet %q", ErrInvalidPaymentDetails, d.WalletProvider)
		}
	}
	return nil
}

func validateCard(d domain.PaymentDetails, now time.Time) error {
	number := strings.ReplaceAll(d.CardNumber, " ", "")
	if len(number) != cardNumberDigits || !digitsOnly(number) {
		return fmt.Errorf("%w: card number must have %d digits", ErrInvalidPaymentDetails, cardNumberDigits)
	}

	if d.ExpiryMonth < 1 || d.ExpiryMonth > 12 {
		return fmt.Errorf("%w: invalid expiry month", ErrInvalidPaymentDetails)
	}

	// Карта действует до конца месяца истечения
	year, month, _ := now.UTC().Date()
	if d.ExpiryYear < year || (d.ExpiryYear == year && time.Month(d.ExpiryMonth) < month) {
		return fmt.Errorf("%w: card is expired", ErrInvalidPaymentDetails)
	}

	if len(d.CVV) < minCVVDigits || len(d.CVV) > maxCVVDigits || !digitsOnly(d.CVV) {
		return fmt.Errorf("%w: invalid CVV", ErrInvalidPaymentDetails)
	}

	if strings.TrimSpace(d.CardholderName) == "" {
		return fmt.Errorf("%w: cardholder name is required", ErrInvalidPaymentDetails)
	}

	return nil
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
