package domain

import (
	"time"

	"github.com/m04kA/SMC-ExamBookingService/pkg/types"
)

// SelectionState выбор пользователя в мастере бронирования
// Изменяется только через сеттеры, которые выполняют каскадный сброс
// нижестоящих полей. Пустое значение поля означает "не выбрано".
type SelectionState struct {
	Level                Level
	ExamOption           ExamOption
	PrerequisiteUploaded bool
	Date                 time.Time // полночь UTC
	Time                 types.TimeString
	Currency             Currency // на шаги не влияет
}

func NewSelectionState() SelectionState {
	return SelectionState{Currency: BaseCurrency}
}

func (s SelectionState) HasLevel() bool      { return s.Level != "" }
func (s SelectionState) HasExamOption() bool { return s.ExamOption != "" }
func (s SelectionState) HasDate() bool       { return !s.Date.IsZero() }
func (s SelectionState) HasTime() bool       { return !s.Time.IsZero() }

// SetLevel сбрасывает формат, дату, время и загрузку документа
func (s *SelectionState) SetLevel(l Level) {
	s.Level = l
	s.ExamOption = ""
	s.PrerequisiteUploaded = false
	s.Date = time.Time{}
	s.Time = ""
}

// SetExamOption сбрасывает дату и время; для both документ не нужен
func (s *SelectionState) SetExamOption(o ExamOption) {
	s.ExamOption = o
	s.PrerequisiteUploaded = o == ExamBoth
	s.Date = time.Time{}
	s.Time = ""
}

// SetPrerequisiteUploaded без каскада: отзыв документа не сбрасывает дату и время,
// шаг откатится на 3 через ResolveStep
func (s *SelectionState) SetPrerequisiteUploaded(uploaded bool) {
	s.PrerequisiteUploaded = uploaded
}

// SetDate сбрасывает время
func (s *SelectionState) SetDate(date time.Time) {
	s.Date = TruncateToDate(date)
	s.Time = ""
}

func (s *SelectionState) SetTime(t types.TimeString) {
	s.Time = t
}

// ClearSchedule сбрасывает дату и время (истечение удержания)
func (s *SelectionState) ClearSchedule() {
	s.Date = time.Time{}
	s.Time = ""
}

func (s *SelectionState) SetCurrency(c Currency) {
	s.Currency = c
}

// IsPrefixConsistent проверяет, что ни одно поле не заполнено при пустом вышестоящем
func (s SelectionState) IsPrefixConsistent() bool {
	if s.HasExamOption() && !s.HasLevel() {
		return false
	}
	if s.PrerequisiteUploaded && !s.HasExamOption() {
		return false
	}
	if s.HasDate() && !s.HasExamOption() {
		return false
	}
	if s.HasTime() && !s.HasDate() {
		return false
	}
	return true
}

// TruncateToDate отбрасывает время суток, приводя к UTC
func TruncateToDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
