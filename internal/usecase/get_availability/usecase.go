package get_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
)

// UseCase доступность дня для уровня и формата экзамена
type UseCase struct {
	slotRepo     ExamSlotRepository
	blackoutRepo BlackoutRepository
	clock        clock.Clock
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo ExamSlotRepository,
	blackoutRepo BlackoutRepository,
	clk clock.Clock,
	logger Logger,
) *UseCase {
	if clk == nil {
		clk = clock.New()
	}
	return &UseCase{
		slotRepo:     slotRepo,
		blackoutRepo: blackoutRepo,
		clock:        clk,
		logger:       logger,
	}
}

// Execute выполняет use case получения доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: date=%s, level=%s, option=%s",
		req.Date.Format(domain.DateFormat), req.Level, req.ExamOption)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	now := uc.clock.Now().UTC()
	day := domain.TruncateToDate(req.Date)
	today := domain.TruncateToDate(now)

	resp := &Response{
		Availability: domain.DayAvailability{
			Date:  day,
			Slots: []domain.TimeSlot{},
		},
	}

	// 2. Прошедшие даты недоступны
	if day.Before(today) {
		resp.Availability.Reason = ReasonPast
		return resp, nil
	}

	// 3. Периоды закрытия центра
	periods, err := uc.blackoutRepo.ListCovering(ctx, day)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get blackouts for %s: %v", day.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get blackouts: %v", ErrInternal, err)
	}
	if len(periods) > 0 {
		uc.logger.Info("GetAvailability: %s is closed (%s)", day.Format(domain.DateFormat), periods[0].Title)
		resp.Availability.Reason = ReasonBlackout
		resp.Blackout = periods[0]
		return resp, nil
	}

	// 4. Сессии экзамена на дату
	examSlots, err := uc.slotRepo.ListForDay(ctx, day, req.Level, req.ExamOption)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get exam slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get exam slots: %v", ErrInternal, err)
	}

	for _, s := range examSlots {
		if day.Equal(today) && startsBefore(s, now) {
			continue
		}
		resp.Availability.Slots = append(resp.Availability.Slots, s.ToTimeSlot())
	}

	if len(resp.Availability.Slots) == 0 {
		resp.Availability.Reason = ReasonNoSlots
		return resp, nil
	}

	resp.Availability.Available = true
	uc.logger.Info("GetAvailability: %s has %d slots, %d free seats",
		day.Format(domain.DateFormat), len(resp.Availability.Slots), resp.Availability.FreeSeats())

	return resp, nil
}

// GetAvailability реализует wizard.AvailabilityLookup
func (uc *UseCase) GetAvailability(ctx context.Context, date time.Time, level domain.Level, option domain.ExamOption) (domain.DayAvailability, error) {
	resp, err := uc.Execute(ctx, &Request{Date: date, Level: level, ExamOption: option})
	if err != nil {
		return domain.DayAvailability{}, err
	}
	return resp.Availability, nil
}

// startsBefore сессия сегодня уже началась
func startsBefore(s *domain.ExamSlot, now time.Time) bool {
	start, err := s.StartTime.On(now)
	if err != nil {
		return true
	}
	return !start.After(now)
}
