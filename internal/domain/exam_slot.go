package domain

import (
	"time"

	"github.com/m04kA/SMC-ExamBookingService/pkg/types"
)

// ExamSlotStatus статус слота в консоли администратора
type ExamSlotStatus string

const (
	ExamSlotAvailable  ExamSlotStatus = "available"
	ExamSlotNearlyFull ExamSlotStatus = "nearly-full"
	ExamSlotFull       ExamSlotStatus = "full"
)

// ExamSlot сессия экзамена, заведенная администратором
type ExamSlot struct {
	ID         int64
	ExamDate   time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
	Level      Level
	ExamOption ExamOption
	Capacity   int
	Booked     int
	Location   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Status вычисляется по заполненности
func (s *ExamSlot) Status() ExamSlotStatus {
	if s.Booked >= s.Capacity {
		return ExamSlotFull
	}
	if float64(s.Booked) >= float64(s.Capacity)*NearlyFullRatio {
		return ExamSlotNearlyFull
	}
	return ExamSlotAvailable
}

// HasSeat есть ли свободное место
func (s *ExamSlot) HasSeat() bool {
	return s.Booked < s.Capacity
}

// DurationMinutes длительность сессии
func (s *ExamSlot) DurationMinutes() int {
	start, errStart := s.StartTime.Minutes()
	end, errEnd := s.EndTime.Minutes()
	if errStart != nil || errEnd != nil || end <= start {
		return 0
	}
	return end - start
}

// ToTimeSlot представление для мастера бронирования
func (s *ExamSlot) ToTimeSlot() TimeSlot {
	return TimeSlot{
		SlotID:   s.ID,
		Time:     s.StartTime,
		Capacity: s.Capacity,
		Booked:   s.Booked,
		Duration: time.Duration(s.DurationMinutes()) * time.Minute,
		Location: s.Location,
	}
}

// ExamSlotFilter фильтр списка слотов
type ExamSlotFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Level      *Level
	ExamOption *ExamOption
}
