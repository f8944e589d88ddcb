package get_availability

import "fmt"

// validateRequest проверяет входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidDate)
	}
	if !req.Level.Valid() {
		return fmt.Errorf("%w: unknown level %q", ErrInvalidInput, req.Level)
	}
	if !req.ExamOption.Valid() {
		return fmt.Errorf("%w: unknown exam option %q", ErrInvalidInput, req.ExamOption)
	}
	return nil
}
