package get_availability

import (
	"time"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
	getAvailability "github.com/m04kA/SMC-ExamBookingService/internal/usecase/get_availability"
)

// TimeSlotResponse время сессии экзамена с занятостью
type TimeSlotResponse struct {
	SlotID          int64   `json:"slotId"`
	Time            string  `json:"time"` // "09:00"
	Period          string  `json:"period"`
	Capacity        int     `json:"capacity"`
	Booked          int     `json:"booked"`
	Remaining       int     `json:"remaining"`
	IsFull          bool    `json:"isFull"`
	IsLimited       bool    `json:"isLimited"`
	OccupancyRate   float64 `json:"occupancyRate"`
	DurationMinutes int     `json:"durationMinutes"`
	Location        string  `json:"location,omitempty"`
}

// AvailabilityResponse доступность дня
type AvailabilityResponse struct {
	Date          string             `json:"date"`
	Level         string             `json:"level"`
	ExamOption    string             `json:"examOption"`
	Available     bool               `json:"available"`
	Selectable    bool               `json:"selectable"`
	Reason        string             `json:"reason,omitempty"`
	BlackoutTitle string             `json:"blackoutTitle,omitempty"`
	FreeSeats     int                `json:"freeSeats"`
	Slots         []TimeSlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(req *getAvailability.Request, resp *getAvailability.Response) *AvailabilityResponse {
	day := resp.Availability
	out := &AvailabilityResponse{
		Date:       day.Date.Format(domain.DateFormat),
		Level:      string(req.Level),
		ExamOption: string(req.ExamOption),
		Available:  day.Available,
		Selectable: day.IsSelectable(),
		Reason:     day.Reason,
		FreeSeats:  day.FreeSeats(),
		Slots:      make([]TimeSlotResponse, 0, len(day.Slots)),
	}
	if resp.Blackout != nil {
		out.BlackoutTitle = resp.Blackout.Title
	}

	for _, s := range day.Slots {
		out.Slots = append(out.Slots, TimeSlotResponse{
			SlotID:          s.SlotID,
			Time:            s.Time.String(),
			Period:          s.Period(),
			Capacity:        s.Capacity,
			Booked:          s.Booked,
			Remaining:       s.Remaining(),
			IsFull:          s.IsFull(),
			IsLimited:       s.IsLimited(),
			OccupancyRate:   s.OccupancyRate(),
			DurationMinutes: int(s.Duration / time.Minute),
			Location:        s.Location,
		})
	}

	return out
}
