package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
	blackoutRepo "github.com/m04kA/SMC-ExamBookingService/internal/infra/storage/blackout"
	examSlotRepo "github.com/m04kA/SMC-ExamBookingService/internal/infra/storage/examslot"
	"github.com/m04kA/SMC-ExamBookingService/internal/service/scheduling/models"
	"github.com/m04kA/SMC-ExamBookingService/pkg/ptr"
)

// Service консоль администратора: сессии экзамена и периоды закрытия
type Service struct {
	slotRepo     ExamSlotRepository
	blackoutRepo BlackoutRepository
	clock        clock.Clock
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	slotRepo ExamSlotRepository,
	blackoutRepo BlackoutRepository,
	clk clock.Clock,
	logger Logger,
) *Service {
	if clk == nil {
		clk = clock.New()
	}
	return &Service{
		slotRepo:     slotRepo,
		blackoutRepo: blackoutRepo,
		clock:        clk,
		logger:       logger,
	}
}

// CreateExamSlot создает сессию экзамена
// Дата не должна быть в прошлом и не должна попадать в период закрытия
func (s *Service) CreateExamSlot(ctx context.Context, req *models.CreateExamSlotRequest) (*models.ExamSlotResponse, error) {
	s.logger.Info("CreateExamSlot: date=%s, %s-%s, level=%s, option=%s, capacity=%d",
		req.ExamDate, req.StartTime, req.EndTime, req.Level, req.ExamOption, req.Capacity)

	// 1. Разбор и валидация
	slot, err := s.slotFromRequest(req)
	if err != nil {
		s.logger.Warn("CreateExamSlot: validation failed: %v", err)
		return nil, err
	}
	if err := validateExamSlot(slot, s.today()); err != nil {
		s.logger.Warn("CreateExamSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Периоды закрытия
	if err := s.checkNotBlackedOut(ctx, "CreateExamSlot", slot.ExamDate); err != nil {
		return nil, err
	}

	// 3. Создаем слот
	created, err := s.slotRepo.Create(ctx, slot)
	if err != nil {
		if errors.Is(err, examSlotRepo.ErrSlotOverlap) {
			s.logger.Warn("CreateExamSlot: slot already exists on %s at %s", req.ExamDate, req.StartTime)
			return nil, ErrSlotConflict
		}
		s.logger.Error("CreateExamSlot: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateExamSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateExamSlot: successfully created slot id=%d", created.ID)
	return models.FromDomainExamSlot(created), nil
}

// GetExamSlot получает слот по ID
func (s *Service) GetExamSlot(ctx context.Context, id int64) (*models.ExamSlotResponse, error) {
	slot, err := s.getSlot(ctx, "GetExamSlot", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainExamSlot(slot), nil
}

// ListExamSlots слоты с фильтрами по периоду, уровню и формату
func (s *Service) ListExamSlots(ctx context.Context, req *models.ListExamSlotsRequest) (*models.ExamSlotListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListExamSlots: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	slots, err := s.slotRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListExamSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListExamSlots - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListExamSlots: fetched %d slots", len(slots))
	return models.FromDomainExamSlotList(slots), nil
}

// UpdateExamSlot частичное обновление слота
// Перенос слота с бронированиями запрещен, вместимость не может быть меньше занятых мест
func (s *Service) UpdateExamSlot(ctx context.Context, id int64, req *models.UpdateExamSlotRequest) (*models.ExamSlotResponse, error) {
	s.logger.Info("UpdateExamSlot: updating slot id=%d", id)

	// 1. Получаем существующий слот
	slot, err := s.getSlot(ctx, "UpdateExamSlot", id)
	if err != nil {
		return nil, err
	}
	originalDate := slot.ExamDate
	originalStart := slot.StartTime

	// 2. Применяем изменения
	if req.ExamDate != nil {
		if slot.ExamDate, err = parseDate("examDate", *req.ExamDate); err != nil {
			return nil, err
		}
	}
	if req.StartTime != nil {
		if slot.StartTime, err = parseTime("startTime", *req.StartTime); err != nil {
			return nil, err
		}
	}
	if req.EndTime != nil {
		if slot.EndTime, err = parseTime("endTime", *req.EndTime); err != nil {
			return nil, err
		}
	}
	slot.Capacity = ptr.Deref(req.Capacity, slot.Capacity)
	slot.Location = strings.TrimSpace(ptr.Deref(req.Location, slot.Location))

	rescheduled := !slot.ExamDate.Equal(originalDate) || slot.StartTime != originalStart

	// 3. Валидация
	if rescheduled && slot.Booked > 0 {
		s.logger.Warn("UpdateExamSlot: slot id=%d has %d bookings, cannot reschedule", id, slot.Booked)
		return nil, ErrSlotHasBookings
	}
	if slot.Capacity < slot.Booked {
		s.logger.Warn("UpdateExamSlot: capacity %d < booked %d for slot id=%d", slot.Capacity, slot.Booked, id)
		return nil, ErrCapacityBelowBooked
	}
	if err := validateExamSlot(slot, s.today()); err != nil {
		s.logger.Warn("UpdateExamSlot: validation failed: %v", err)
		return nil, err
	}
	if !slot.ExamDate.Equal(originalDate) {
		if err := s.checkNotBlackedOut(ctx, "UpdateExamSlot", slot.ExamDate); err != nil {
			return nil, err
		}
	}

	// 4. Сохраняем
	updated, err := s.slotRepo.Update(ctx, slot)
	if err != nil {
		switch {
		case errors.Is(err, examSlotRepo.ErrSlotNotFound):
			return nil, ErrSlotNotFound
		case errors.Is(err, examSlotRepo.ErrSlotOverlap):
			return nil, ErrSlotConflict
		}
		s.logger.Error("UpdateExamSlot: repository error for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateExamSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateExamSlot: successfully updated slot id=%d", id)
	return models.FromDomainExamSlot(updated), nil
}

// DeleteExamSlot удаляет слот без бронирований
func (s *Service) DeleteExamSlot(ctx context.Context, id int64) error {
	s.logger.Info("DeleteExamSlot: deleting slot id=%d", id)

	slot, err := s.getSlot(ctx, "DeleteExamSlot", id)
	if err != nil {
		return err
	}
	if slot.Booked > 0 {
		s.logger.Warn("DeleteExamSlot: slot id=%d has %d bookings", id, slot.Booked)
		return ErrSlotHasBookings
	}

	if err := s.slotRepo.Delete(ctx, id); err != nil {
		// Слот существовал: кто-то успел забронировать место
		if errors.Is(err, examSlotRepo.ErrSlotNotFound) {
			return ErrSlotHasBookings
		}
		s.logger.Error("DeleteExamSlot: repository error for slot id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteExamSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteExamSlot: successfully deleted slot id=%d", id)
	return nil
}

// CreateBlackout создает период закрытия
func (s *Service) CreateBlackout(ctx context.Context, req *models.CreateBlackoutRequest) (*models.BlackoutResponse, error) {
	s.logger.Info("CreateBlackout: %q (%s) %s..%s, recurring=%t",
		req.Title, req.Type, req.StartDate, req.EndDate, req.Recurring)

	start, err := parseDate("startDate", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("endDate", req.EndDate)
	if err != nil {
		return nil, err
	}

	period := &domain.BlackoutPeriod{
		Title:       strings.TrimSpace(req.Title),
		Type:        domain.BlackoutType(strings.ToLower(strings.TrimSpace(req.Type))),
		StartDate:   start,
		EndDate:     end,
		Description: strings.TrimSpace(req.Description),
		Recurring:   req.Recurring,
	}
	if err := validateBlackout(period); err != nil {
		s.logger.Warn("CreateBlackout: validation failed: %v", err)
		return nil, err
	}

	created, err := s.blackoutRepo.Create(ctx, period)
	if err != nil {
		s.logger.Error("CreateBlackout: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateBlackout - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlackout: successfully created blackout id=%d", created.ID)
	return models.FromDomainBlackout(created), nil
}

// ListBlackouts все периоды закрытия
func (s *Service) ListBlackouts(ctx context.Context) (*models.BlackoutListResponse, error) {
	periods, err := s.blackoutRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListBlackouts: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBlackouts - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainBlackoutList(periods), nil
}

// DeleteBlackout удаляет период закрытия
func (s *Service) DeleteBlackout(ctx context.Context, id int64) error {
	s.logger.Info("DeleteBlackout: deleting blackout id=%d", id)

	if err := s.blackoutRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, blackoutRepo.ErrBlackoutNotFound) {
			s.logger.Warn("DeleteBlackout: blackout id=%d not found", id)
			return ErrBlackoutNotFound
		}
		s.logger.Error("DeleteBlackout: repository error for blackout id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteBlackout - repository error: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) slotFromRequest(req *models.CreateExamSlotRequest) (*domain.ExamSlot, error) {
	date, err := parseDate("examDate", req.ExamDate)
	if err != nil {
		return nil, err
	}
	start, err := parseTime("startTime", req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseTime("endTime", req.EndTime)
	if err != nil {
		return nil, err
	}
	level, err := domain.ParseLevel(req.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	option, err := domain.ParseExamOption(req.ExamOption)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return &domain.ExamSlot{
		ExamDate:   date,
		StartTime:  start,
		EndTime:    end,
		Level:      level,
		ExamOption: option,
		Capacity:   req.Capacity,
		Location:   strings.TrimSpace(req.Location),
	}, nil
}

func (s *Service) getSlot(ctx context.Context, op string, id int64) (*domain.ExamSlot, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: slot id must be positive", ErrInvalidInput)
	}

	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, examSlotRepo.ErrSlotNotFound) {
			s.logger.Warn("%s: slot id=%d not found", op, id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("%s: repository error for slot id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return slot, nil
}

func (s *Service) checkNotBlackedOut(ctx context.Context, op string, date time.Time) error {
	periods, err := s.blackoutRepo.ListCovering(ctx, date)
	if err != nil {
		s.logger.Error("%s: failed to check blackouts: %v", op, err)
		return fmt.Errorf("%w: %s - blackout check: %v", ErrInternal, op, err)
	}
	if len(periods) > 0 {
		s.logger.Warn("%s: %s is within blackout %q", op, date.Format(domain.DateFormat), periods[0].Title)
		return fmt.Errorf("%w: %s", ErrBlackoutDate, periods[0].Title)
	}
	return nil
}

func (s *Service) today() time.Time {
	return domain.TruncateToDate(s.clock.Now())
}
