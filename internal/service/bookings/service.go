package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ExamBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ExamBookingService/internal/integrations/mailer"
	"github.com/m04kA/SMC-ExamBookingService/internal/service/bookings/models"
)

// Service сервис подтвержденных бронирований
type Service struct {
	bookingRepo BookingRepository
	calendar    CalendarGenerator
	mailer      Mailer
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	calendar CalendarGenerator,
	mailer Mailer,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		calendar:    calendar,
		mailer:      mailer,
		logger:      logger,
	}
}

// GetByReference получает бронирование по номеру
func (s *Service) GetByReference(ctx context.Context, reference string) (*models.BookingResponse, error) {
	booking, err := s.get(ctx, "GetByReference", reference)
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking), nil
}

// Calendar экспорт бронирования: ICS и ссылки Google / Outlook
func (s *Service) Calendar(ctx context.Context, reference string) (*models.CalendarResponse, error) {
	booking, err := s.get(ctx, "Calendar", reference)
	if err != nil {
		return nil, err
	}

	export, err := s.calendar.Export(booking)
	if err != nil {
		s.logger.Error("Calendar: failed to export booking %s: %v", reference, err)
		return nil, fmt.Errorf("%w: Calendar - export: %v", ErrInternal, err)
	}

	return &models.CalendarResponse{
		FileName:   export.FileName,
		ICS:        export.ICS,
		GoogleURL:  export.GoogleURL,
		OutlookURL: export.OutlookURL,
	}, nil
}

// EmailStatus статус письма-подтверждения
func (s *Service) EmailStatus(ctx context.Context, reference string) (*models.EmailStatusResponse, error) {
	if _, err := s.get(ctx, "EmailStatus", reference); err != nil {
		return nil, err
	}

	status, err := s.mailer.Status(reference)
	if err != nil {
		if errors.Is(err, mailer.ErrNotFound) {
			return nil, ErrEmailNotFound
		}
		s.logger.Error("EmailStatus: mailer error for %s: %v", reference, err)
		return nil, fmt.Errorf("%w: EmailStatus - mailer: %v", ErrInternal, err)
	}

	return models.FromMailerStatus(status), nil
}

// ResendEmail повторная отправка письма
// Если письмо не отправлялось (например, после перезапуска), отправляется заново
func (s *Service) ResendEmail(ctx context.Context, reference string) (*models.EmailStatusResponse, error) {
	booking, err := s.get(ctx, "ResendEmail", reference)
	if err != nil {
		return nil, err
	}

	status, err := s.mailer.Resend(reference)
	if errors.Is(err, mailer.ErrNotFound) {
		s.logger.Info("ResendEmail: no previous email for %s, sending", reference)
		status, err = s.mailer.Send(reference, booking.CandidateEmail)
	}

	switch {
	case err == nil:
	case errors.Is(err, mailer.ErrDeliveryInProgress):
		return nil, ErrEmailInProgress
	case errors.Is(err, mailer.ErrResendLimit):
		s.logger.Warn("ResendEmail: resend limit reached for %s", reference)
		return nil, ErrResendLimit
	default:
		s.logger.Error("ResendEmail: mailer error for %s: %v", reference, err)
		return nil, fmt.Errorf("%w: ResendEmail - mailer: %v", ErrInternal, err)
	}

	s.logger.Info("ResendEmail: %s resent to %s, %d left", reference, status.Email, status.ResendsLeft)
	return models.FromMailerStatus(status), nil
}

func (s *Service) get(ctx context.Context, op, reference string) (*domain.Booking, error) {
	reference = strings.TrimSpace(reference)
	if !strings.HasPrefix(reference, domain.BookingReferencePrefix) {
		s.logger.Warn("%s: invalid reference %q", op, reference)
		return nil, fmt.Errorf("%w: invalid booking reference", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking %s not found", op, reference)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking %s: %v", op, reference, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}
