package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
)

// Request модели

// CreateExamSlotRequest запрос на создание слота экзамена
type CreateExamSlotRequest struct {
	ExamDate   string `json:"examDate"`  // "2025-03-15"
	StartTime  string `json:"startTime"` // "09:00"
	EndTime    string `json:"endTime"`   // "12:00"
	Level      string `json:"level"`
	ExamOption string `json:"examOption"`
	Capacity   int    `json:"capacity"`
	Location   string `json:"location"`
}

// UpdateExamSlotRequest запрос на обновление слота
// Все поля опциональны - обновляются только переданные значения
type UpdateExamSlotRequest struct {
	ExamDate  *string `json:"examDate,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Capacity  *int    `json:"capacity,omitempty"`
	Location  *string `json:"location,omitempty"`
}

// ListExamSlotsRequest фильтры списка слотов (пустая строка - без фильтра)
type ListExamSlotsRequest struct {
	StartDate  string
	EndDate    string
	Level      string
	ExamOption string
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListExamSlotsRequest) ToDomainFilter() (domain.ExamSlotFilter, error) {
	var filter domain.ExamSlotFilter

	if r.StartDate != "" {
		d, err := time.Parse(domain.DateFormat, r.StartDate)
		if err != nil {
			return filter, fmt.Errorf("invalid startDate %q", r.StartDate)
		}
		filter.StartDate = &d
	}
	if r.EndDate != "" {
		d, err := time.Parse(domain.DateFormat, r.EndDate)
		if err != nil {
			return filter, fmt.Errorf("invalid endDate %q", r.EndDate)
		}
		filter.EndDate = &d
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return filter, fmt.Errorf("endDate is before startDate")
	}
	if r.Level != "" {
		l, err := domain.ParseLevel(r.Level)
		if err != nil {
			return filter, err
		}
		filter.Level = &l
	}
	if r.ExamOption != "" {
		o, err := domain.ParseExamOption(r.ExamOption)
		if err != nil {
			return filter, err
		}
		filter.ExamOption = &o
	}

	return filter, nil
}

// CreateBlackoutRequest запрос на создание периода закрытия
type CreateBlackoutRequest struct {
	Title       string `json:"title"`
	Type        string `json:"type"`      // holiday, maintenance, training
	StartDate   string `json:"startDate"` // "2025-12-31"
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
	Recurring   bool   `json:"recurring"`
}

// Response модели

// ExamSlotResponse ответ с данными слота
type ExamSlotResponse struct {
	ID              int64     `json:"id"`
	ExamDate        string    `json:"examDate"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Level           string    `json:"level"`
	ExamOption      string    `json:"examOption"`
	Capacity        int       `json:"capacity"`
	Booked          int       `json:"booked"`
	Available       int       `json:"available"`
	Status          string    `json:"status"` // available, nearly-full, full
	Location        string    `json:"location"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ExamSlotListResponse ответ со списком слотов
type ExamSlotListResponse struct {
	Slots []ExamSlotResponse `json:"slots"`
	Total int                `json:"total"`
}

// BlackoutResponse ответ с данными периода закрытия
type BlackoutResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	Description string    `json:"description,omitempty"`
	Recurring   bool      `json:"recurring"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BlackoutListResponse ответ со списком периодов закрытия
type BlackoutListResponse struct {
	Blackouts []BlackoutResponse `json:"blackouts"`
}

// Методы конвертации

// FromDomainExamSlot конвертирует domain модель в DTO
func FromDomainExamSlot(s *domain.ExamSlot) *ExamSlotResponse {
	if s == nil {
		return nil
	}

	available := s.Capacity - s.Booked
	if available < 0 {
		available = 0
	}

	return &ExamSlotResponse{
		ID:              s.ID,
		ExamDate:        s.ExamDate.Format(domain.DateFormat),
		StartTime:       s.StartTime.String(),
		EndTime:         s.EndTime.String(),
		DurationMinutes: s.DurationMinutes(),
		Level:           string(s.Level),
		ExamOption:      string(s.ExamOption),
		Capacity:        s.Capacity,
		Booked:          s.Booked,
		Available:       available,
		Status:          string(s.Status()),
		Location:        s.Location,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainExamSlotList конвертирует список слотов
func FromDomainExamSlotList(slots []*domain.ExamSlot) *ExamSlotListResponse {
	resp := &ExamSlotListResponse{Slots: make([]ExamSlotResponse, 0, len(slots))}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, *FromDomainExamSlot(s))
	}
	resp.Total = len(resp.Slots)
	return resp
}

// FromDomainBlackout конвертирует период закрытия
func FromDomainBlackout(b *domain.BlackoutPeriod) *BlackoutResponse {
	if b == nil {
		return nil
	}
	return &BlackoutResponse{
		ID:          b.ID,
		Title:       b.Title,
		Type:        string(b.Type),
		StartDate:   b.StartDate.Format(domain.DateFormat),
		EndDate:     b.EndDate.Format(domain.DateFormat),
		Description: b.Description,
		Recurring:   b.Recurring,
		CreatedAt:   b.CreatedAt,
	}
}

// FromDomainBlackoutList конвертирует список периодов
func FromDomainBlackoutList(periods []*domain.BlackoutPeriod) *BlackoutListResponse {
	resp := &BlackoutListResponse{Blackouts: make([]BlackoutResponse, 0, len(periods))}
	for _, p := range periods {
		resp.Blackouts = append(resp.Blackouts, *FromDomainBlackout(p))
	}
	return resp
}
