package resend_email

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ExamBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-ExamBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ExamBookingService/pkg/logger"
)

type stubService struct {
	err error
}

func (s stubService) ResendEmail(_ context.Context, reference string) (*models.EmailStatusResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.EmailStatusResponse{Reference: reference, Status: "sending", Resends: 1, ResendsLeft: 2}, nil
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"resent", nil, http.StatusAccepted},
		{"invalid", bookings.ErrInvalidInput, http.StatusBadRequest},
		{"not found", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"in progress", bookings.ErrEmailInProgress, http.StatusConflict},
		{"limit", bookings.ErrResendLimit, http.StatusTooManyRequests},
		{"internal", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mux.NewRouter()
			r.HandleFunc("/bookings/{reference}/email/resend", NewHandler(stubService{err: tt.err}, logger.NewNop()).Handle)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bookings/BK-1A2B3C4D/email/resend", nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
