package domain

import "time"

// BlackoutType причина закрытия центра
type BlackoutType string

const (
	BlackoutHoliday     BlackoutType = "holiday"
	BlackoutMaintenance BlackoutType = "maintenance"
	BlackoutTraining    BlackoutType = "training"
)

func (t BlackoutType) Valid() bool {
	switch t {
	case BlackoutHoliday, BlackoutMaintenance, BlackoutTraining:
		return true
	}
	return false
}

// BlackoutPeriod период, когда экзамены не проводятся
// Recurring - период повторяется каждый год (год в датах игнорируется)
type BlackoutPeriod struct {
	ID          int64
	Title       string
	Type        BlackoutType
	StartDate   time.Time
	EndDate     time.Time
	Description string
	Recurring   bool
	CreatedAt   time.Time
}

// Covers попадает ли дата в период (включительно)
func (b *BlackoutPeriod) Covers(date time.Time) bool {
	day := TruncateToDate(date)
	start := TruncateToDate(b.StartDate)
	end := TruncateToDate(b.EndDate)

	if !b.Recurring {
		return !day.Before(start) && !day.After(end)
	}

	// Для ежегодных периодов сравниваем месяц и день
	d := monthDay(day)
	s := monthDay(start)
	e := monthDay(end)
	if s <= e {
		return d >= s && d <= e
	}
	// Период переходит через Новый год (например 12-30 .. 01-02)
	return d >= s || d <= e
}

func monthDay(t time.Time) int {
	return int(t.Month())*100 + t.Day()
}
