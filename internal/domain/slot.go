package domain

import (
	"time"

	"github.com/m04kA/SMC-ExamBookingService/pkg/types"
)

// TimeSlot время начала экзамена с вместимостью
type TimeSlot struct {
	SlotID   int64 // ID строки exam_slots; 0 для вычисленных слотов
	Time     types.TimeString
	Capacity int
	Booked   int
	Duration time.Duration
	Location string
}

// Remaining количество свободных мест
func (s TimeSlot) Remaining() int {
	if s.Booked >= s.Capacity {
		return 0
	}
	return s.Capacity - s.Booked
}

// IsFull returns true if the slot has no available seats
func (s TimeSlot) IsFull() bool {
	return s.Booked >= s.Capacity
}

// IsLimited мест осталось мало, но слот еще доступен
func (s TimeSlot) IsLimited() bool {
	r := s.Remaining()
	return r > 0 && r <= LimitedSeatsThreshold
}

// Period morning до полудня, afternoon после
func (s TimeSlot) Period() string {
	if s.Time.IsBefore("12:00") {
		return "morning"
	}
	return "afternoon"
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s TimeSlot) OccupancyRate() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Booked) / float64(s.Capacity) * 100
}

// DayAvailability ответ AvailabilityLookup на дату
type DayAvailability struct {
	Date      time.Time
	Available bool
	Reason    string // почему день недоступен (blackout, past, no_slots)
	Slots     []TimeSlot
}

// IsSelectable дату можно выбрать: день доступен и есть хотя бы один свободный слот
func (d DayAvailability) IsSelectable() bool {
	if !d.Available {
		return false
	}
	for _, slot := range d.Slots {
		if !slot.IsFull() {
			return true
		}
	}
	return false
}

// Slot ищет слот по времени начала
// Если в одно время идут несколько сессий (разные залы), предпочитается сессия со свободными местами.
func (d DayAvailability) Slot(t types.TimeString) (TimeSlot, bool) {
	var (
		first TimeSlot
		found bool
	)
	for _, slot := range d.Slots {
		if slot.Time != t {
			continue
		}
		if !slot.IsFull() {
			return slot, true
		}
		if !found {
			first, found = slot, true
		}
	}
	return first, found
}

// FreeSeats суммарно свободных мест за день
func (d DayAvailability) FreeSeats() int {
	total := 0
	for _, slot := range d.Slots {
		total += slot.Remaining()
	}
	return total
}
