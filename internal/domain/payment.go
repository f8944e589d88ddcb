package domain

import (
	"errors"
	"fmt"
)

var ErrUnknownPaymentStatus = errors.New("unknown payment status")

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	PaymentCard       PaymentMethod = "card"
	PaymentUPI        PaymentMethod = "upi"
	PaymentNetBanking PaymentMethod = "netbanking"
	PaymentWallet     PaymentMethod = "wallet"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentUPI, PaymentNetBanking, PaymentWallet:
		return true
	}
	return false
}

// PaymentStatus результат обработки платежа
type PaymentStatus string

const (
	PaymentSuccess              PaymentStatus = "success"
	PaymentFailed               PaymentStatus = "failed"
	PaymentVerificationRequired PaymentStatus = "verification_required"
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch st := PaymentStatus(s); st {
	case PaymentSuccess, PaymentFailed, PaymentVerificationRequired:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPaymentStatus, s)
}

// PaymentDetails данные формы оплаты; заполняются поля выбранного способа
type PaymentDetails struct {
	CardNumber     string
	ExpiryMonth    int
	ExpiryYear     int
	CVV            string
	CardholderName string
	UPIID          string
	BankCode       string
	WalletProvider string
	AcceptTerms    bool
}

// PaymentOutcome ответ платежного шлюза
type PaymentOutcome struct {
	Status          PaymentStatus
	TransactionID   string
	ErrorCode       string
	ErrorMessage    string
	VerificationURL string
}

// RecoveryActions действия, доступные пользователю после неуспешного платежа
func (o PaymentOutcome) RecoveryActions() []string {
	switch o.Status {
	case PaymentFailed:
		return []string{"retry", "change_method"}
	case PaymentVerificationRequired:
		return []string{"verify", "change_method"}
	default:
		return nil
	}
}

// SupportedBanks банки для netbanking
var SupportedBanks = map[string]string{
	"sbi":   "State Bank of India",
	"hdfc":  "HDFC Bank",
	"icici": "ICICI Bank",
	"axis":  "Axis Bank",
	"kotak": "Kotak Mahindra Bank",
	"pnb":   "Punjab National Bank",
}

// SupportedWallets кошельки
var SupportedWallets = map[string]string{
	"paytm":     "Paytm",
	"phonepe":   "PhonePe",
	"googlepay": "Google Pay",
	"amazonpay": "Amazon Pay",
}
