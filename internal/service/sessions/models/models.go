package models

import (
	"time"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
	"github.com/m04kA/SMC-ExamBookingService/internal/wizard"
)

// SelectionResponse выбор пользователя; пустые поля не выбраны
type SelectionResponse struct {
	Level                string `json:"level,omitempty"`
	ExamOption           string `json:"examOption,omitempty"`
	PrerequisiteUploaded bool   `json:"prerequisiteUploaded"`
	Date                 string `json:"date,omitempty"` // "2025-03-15"
	Time                 string `json:"time,omitempty"` // "09:00"
	Currency             string `json:"currency"`
}

// SlotResponse выбранный слот
type SlotResponse struct {
	SlotID          int64  `json:"slotId"`
	Time            string `json:"time"`
	Remaining       int    `json:"remaining"`
	DurationMinutes int    `json:"durationMinutes"`
	Location        string `json:"location,omitempty"`
}

// HoldResponse удержание слота на время оплаты
type HoldResponse struct {
	ID               string `json:"id"`
	State            string `json:"state"`
	CreatedAt        string `json:"createdAt"`
	ExpiresAt        string `json:"expiresAt"`
	DurationSeconds  int    `json:"durationSeconds"`
	RemainingSeconds int    `json:"remainingSeconds"`
}

// SessionResponse снимок сессии мастера
type SessionResponse struct {
	SessionID        string            `json:"sessionId"`
	Step             int               `json:"step"`
	StepName         string            `json:"stepName"`
	ProgressAllowed  bool              `json:"progressAllowed"`
	RequiredDocument string            `json:"requiredDocument,omitempty"`
	Selection        SelectionResponse `json:"selection"`
	Slot             *SlotResponse     `json:"slot,omitempty"`
	HoldState        string            `json:"holdState"`
	Hold             *HoldResponse     `json:"hold,omitempty"`
	Notice           string            `json:"notice,omitempty"`
	BookingReference string            `json:"bookingReference,omitempty"`
	LastActivity     string            `json:"lastActivity"`
}

// FromSnapshot конвертирует снимок мастера в ответ API
func FromSnapshot(s wizard.Snapshot) *SessionResponse {
	resp := &SessionResponse{
		SessionID:        s.SessionID,
		Step:             int(s.Step),
		StepName:         s.Step.String(),
		ProgressAllowed:  s.ProgressAllowed,
		RequiredDocument: s.RequiredDocument,
		Selection:        fromSelection(s.State),
		HoldState:        string(s.HoldState),
		Notice:           s.Notice,
		BookingReference: s.BookingReference,
		LastActivity:     s.LastActivity.UTC().Format(time.RFC3339),
	}

	if s.Slot != nil {
		resp.Slot = &SlotResponse{
			SlotID:          s.Slot.SlotID,
			Time:            s.Slot.Time.String(),
			Remaining:       s.Slot.Remaining(),
			DurationMinutes: int(s.Slot.Duration / time.Minute),
			Location:        s.Slot.Location,
		}
	}

	if s.Hold != nil {
		resp.Hold = FromHold(*s.Hold, s.HoldState, s.HoldRemaining)
	}

	return resp
}

// FromHold конвертирует удержание в ответ API
func FromHold(h domain.HoldReservation, state domain.HoldState, remaining time.Duration) *HoldResponse {
	return &HoldResponse{
		ID:               h.ID,
		State:            string(state),
		CreatedAt:        h.CreatedAt.UTC().Format(time.RFC3339),
		ExpiresAt:        h.ExpiresAt().UTC().Format(time.RFC3339),
		DurationSeconds:  h.DurationSeconds(),
		RemainingSeconds: int(remaining / time.Second),
	}
}

func fromSelection(s domain.SelectionState) SelectionResponse {
	sel := SelectionResponse{
		Level:                string(s.Level),
		ExamOption:           string(s.ExamOption),
		PrerequisiteUploaded: s.PrerequisiteUploaded,
		Currency:             string(s.Currency),
	}
	if s.HasDate() {
		sel.Date = s.Date.Format(domain.DateFormat)
	}
	if s.HasTime() {
		sel.Time = s.Time.String()
	}
	return sel
}
