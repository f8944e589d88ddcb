package domain

// Бизнес-ограничения мастера и консоли администратора
const (
	LimitedSeatsThreshold  = 2   // слот помечается как limited
	NearlyFullRatio        = 0.8 // доля занятых мест для статуса nearly-full
	MaxSlotCapacity        = 200
	MinSlotCapacity        = 1
	MaxLocationLength      = 200
	MaxBlackoutTitle       = 120
	MaxBlackoutDays        = 366
	MaxUploadSizeBytes     = 5 * 1024 * 1024
	MaxResendCount         = 3
	BookingReferencePrefix = "BK-"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
