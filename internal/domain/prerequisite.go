package domain

// IsProgressAllowed разрешен ли переход дальше шага загрузки документа
func IsProgressAllowed(s SelectionState) bool {
	if s.ExamOption == ExamBoth {
		return true
	}
	return s.PrerequisiteUploaded
}

// RequiredDocument документ, который нужно загрузить для частичной сдачи
// Пустая строка - загрузка не требуется
func RequiredDocument(o ExamOption) string {
	info, ok := o.Info()
	if !ok {
		return ""
	}
	return info.RequiredDocument
}
