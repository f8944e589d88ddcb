package upload_prerequisite

import (
	"github.com/m04kA/SMC-ExamBookingService/internal/service/sessions/models"
)

// UploadResponse результат проверки документа и снимок сессии
type UploadResponse struct {
	Accepted bool                    `json:"accepted"`
	Reason   string                  `json:"reason,omitempty"`
	Session  *models.SessionResponse `json:"session"`
}
