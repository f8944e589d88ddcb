package scheduling

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
	"github.com/m04kA/SMC-ExamBookingService/pkg/types"
)

func parseDate(field, value string) (time.Time, error) {
	d, err := time.Parse(domain.DateFormat, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", ErrInvalidInput, field)
	}
	return d, nil
}

func parseTime(field, value string) (types.TimeString, error) {
	t, err := types.NewTimeStringFromString(strings.TrimSpace(value))
	if err != nil {
		return "", fmt.Errorf("%w: %s must be HH:MM", ErrInvalidInput, field)
	}
	return t, nil
}

// validateExamSlot проверяет время, вместимость и место проведения
func validateExamSlot(slot *domain.ExamSlot, today time.Time) error {
	if slot.ExamDate.Before(today) {
		return fmt.Errorf("%w: examDate is in the past", ErrInvalidInput)
	}

	if !slot.StartTime.IsBefore(slot.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if !slot.Level.Valid() {
		return fmt.Errorf("%w: unknown level %q", ErrInvalidInput, slot.Level)
	}

	if !slot.ExamOption.Valid() {
		return fmt.Errorf("%w: unknown exam option %q", ErrInvalidInput, slot.ExamOption)
	}

	if slot.Capacity < domain.MinSlotCapacity || slot.Capacity > domain.MaxSlotCapacity {
		return fmt.Errorf("%w: capacity must be between %d and %d",
			ErrInvalidInput, domain.MinSlotCapacity, domain.MaxSlotCapacity)
	}

	if strings.TrimSpace(slot.Location) == "" || len(slot.Location) > domain.MaxLocationLength {
		return fmt.Errorf("%w: location is required (max %d characters)", ErrInvalidInput, domain.MaxLocationLength)
	}

	return nil
}

// validateBlackout проверяет название, тип и длительность периода
func validateBlackout(b *domain.BlackoutPeriod) error {
	if strings.TrimSpace(b.Title) == "" || len(b.Title) > domain.MaxBlackoutTitle {
		return fmt.Errorf("%w: title is required (max %d characters)", ErrInvalidInput, domain.MaxBlackoutTitle)
	}

	if !b.Type.Valid() {
		return fmt.Errorf("%w: unknown blackout type %q", ErrInvalidInput, b.Type)
	}

	if b.EndDate.Before(b.StartDate) {
		return fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	if days := int(b.EndDate.Sub(b.StartDate).Hours()/24) + 1; days > domain.MaxBlackoutDays {
		return fmt.Errorf("%w: blackout cannot exceed %d days", ErrInvalidInput, domain.MaxBlackoutDays)
	}

	return nil
}
