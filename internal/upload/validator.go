package upload

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
)

const (
	ReasonUnsupportedType = "Please upload a PDF, JPEG, or PNG file."
	ReasonTooLarge        = "File size must be less than 5MB."
	ReasonEmpty           = "The uploaded file is empty."
	ReasonContentMismatch = "File content does not match its declared type."
)

// DefaultAllowedTypes MIME-типы документов; image/jpg встречается у браузеров как алиас jpeg
var DefaultAllowedTypes = []string{"application/pdf", "image/jpeg", "image/jpg", "image/png"}

// File загружаемый документ
type File struct {
	Name        string
	ContentType string
	Size        int64
	Content     []byte // может быть пустым, если проверяются только метаданные
}

// Result результат проверки; отказ - это результат, а не ошибка
type Result struct {
	Accepted bool
	Reason   string
}

func accepted() Result              { return Result{Accepted: true} }
func rejected(reason string) Result { return Result{Reason: reason} }

// Validator проверяет тип и размер документа
type Validator struct {
	maxSize int64
	allowed map[string]struct{}
}

// NewValidator maxSize <= 0 - используется 5MB, пустой allowed - DefaultAllowedTypes
func NewValidator(maxSize int64, allowedTypes []string) *Validator {
	if maxSize <= 0 {
		maxSize = domain.MaxUploadSizeBytes
	}
	if len(allowedTypes) == 0 {
		allowedTypes = DefaultAllowedTypes
	}
	allowed := make(map[string]struct{}, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[normalize(t)] = struct{}{}
	}
	return &Validator{maxSize: maxSize, allowed: allowed}
}

// Validate проверяет заявленный тип, размер и (при наличии байтов) сигнатуру файла
func (v *Validator) Validate(f File) Result {
	declared := normalize(f.ContentType)
	if _, ok := v.allowed[declared]; !ok {
		return rejected(ReasonUnsupportedType)
	}

	size := f.Size
	if size == 0 {
		size = int64(len(f.Content))
	}
	if size > v.maxSize {
		return rejected(ReasonTooLarge)
	}
	if size == 0 {
		return rejected(ReasonEmpty)
	}

	if len(f.Content) > 0 {
		sniffed := normalize(http.DetectContentType(f.Content))
		if family(sniffed) != family(declared) {
			return rejected(ReasonContentMismatch)
		}
	}

	return accepted()
}

// MaxSize лимит размера в байтах
func (v *Validator) MaxSize() int64 {
	return v.maxSize
}

func (r Result) String() string {
	if r.Accepted {
		return "accepted"
	}
	return fmt.Sprintf("rejected: %s", r.Reason)
}

func normalize(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}

func family(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return "jpeg"
	case "image/png":
		return "png"
	case "application/pdf":
		return "pdf"
	default:
		return contentType
	}
}
