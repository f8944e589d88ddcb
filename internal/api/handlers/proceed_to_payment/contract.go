package proceed_to_payment

import "github.com/m04kA/SMC-ExamBookingService/internal/wizard"

type SessionService interface {
	Get(id string) (*wizard.Wizard, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
