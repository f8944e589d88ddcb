package update_selection

// Поля выбора
const (
	FieldLevel      = "level"
	FieldExamOption = "examOption"
	FieldDate       = "date"
	FieldTime       = "time"
	FieldCurrency   = "currency"
)

// UpdateSelectionRequest одно значение выбора
type UpdateSelectionRequest struct {
	Field string `json:"field"`
	Value string `json:"value"` // date "2025-03-15", time "09:00"
}
