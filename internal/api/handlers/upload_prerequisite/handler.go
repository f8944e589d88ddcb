package upload_prerequisite

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ExamBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ExamBookingService/internal/service/sessions"
	"github.com/m04kA/SMC-ExamBookingService/internal/service/sessions/models"
	"github.com/m04kA/SMC-ExamBookingService/internal/upload"
)

const (
	formField = "file"

	// multipartOverhead запас на границы и заголовки multipart сверх размера файла
	multipartOverhead = 64 << 10

	msgSessionNotFound = "booking session not found"
	msgMissingFile     = "multipart field \"file\" is required"
)

type Handler struct {
	service SessionService
	maxSize int64
	logger  Logger
}

// NewHandler maxSize должен совпадать с лимитом валидатора
func NewHandler(service SessionService, maxSize int64, logger Logger) *Handler {
	return &Handler{
		service: service,
		maxSize: maxSize,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{sessionId}/prerequisite
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	wz, err := h.service.Get(sessionID)
	if err != nil {
		if errors.Is(err, sessions.ErrSessionNotFound) {
			h.logger.Warn("POST /sessions/{id}/prerequisite - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)
			return
		}
		h.logger.Error("POST /sessions/{id}/prerequisite - Failed to get session: session_id=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+multipartOverhead)
	file, header, err := r.FormFile(formField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.Warn("POST /sessions/{id}/prerequisite - File too large: session_id=%s", sessionID)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, UploadResponse{
				Reason:  upload.ReasonTooLarge,
				Session: models.FromSnapshot(wz.Snapshot()),
			})
			return
		}
		h.logger.Warn("POST /sessions/{id}/prerequisite - Missing file: session_id=%s, error=%v", sessionID, err)
		handlers.RespondBadRequest(w, msgMissingFile)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, h.maxSize+1))
	if err != nil {
		h.logger.Error("POST /sessions/{id}/prerequisite - Failed to read file: session_id=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	result, snap, err := wz.UploadPrerequisite(r.Context(), upload.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     content,
	})
	if err != nil {
		status := handlers.RespondWizardError(w, err, snap)
		if status >= http.StatusInternalServerError {
			h.logger.Error("POST /sessions/{id}/prerequisite - Upload failed: session_id=%s, error=%v", sessionID, err)
		} else {
			h.logger.Warn("POST /sessions/{id}/prerequisite - Upload not allowed: session_id=%s, error=%v", sessionID, err)
		}
		return
	}

	resp := UploadResponse{
		Accepted: result.Accepted,
		Reason:   result.Reason,
		Session:  models.FromSnapshot(snap),
	}
	if !result.Accepted {
		h.logger.Warn("POST /sessions/{id}/prerequisite - File rejected: session_id=%s, file=%q, reason=%s",
			sessionID, header.Filename, result.Reason)
		handlers.RespondJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	h.logger.Info("POST /sessions/{id}/prerequisite - File accepted: session_id=%s, file=%q, size=%d",
		sessionID, header.Filename, header.Size)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
