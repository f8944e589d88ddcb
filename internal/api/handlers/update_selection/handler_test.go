package update_selection

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ExamBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
	"github.com/m04kA/SMC-ExamBookingService/internal/pricing"
	"github.com/m04kA/SMC-ExamBookingService/internal/service/sessions"
	"github.com/m04kA/SMC-ExamBookingService/internal/service/sessions/models"
	"github.com/m04kA/SMC-ExamBookingService/internal/upload"
	"github.com/m04kA/SMC-ExamBookingService/internal/wizard"
	"github.com/m04kA/SMC-ExamBookingService/pkg/logger"
)

type stubAvailability struct{}

func (stubAvailability) GetAvailability(_ context.Context, date time.Time, _ domain.Level, _ domain.ExamOption) (domain.DayAvailability, error) {
	if date.Day() == 16 {
		return domain.DayAvailability{Date: date, Reason: "blackout"}, nil
	}
	return domain.DayAvailability{
		Date:      date,
		Available: true,
		Slots: []domain.TimeSlot{
			{SlotID: 1, Time: "09:00", Capacity: 20, Booked: 5, Duration: 3 * time.Hour, Location: "Hall A"},
			{SlotID: 2, Time: "14:00", Capacity: 10, Booked: 10, Duration: 3 * time.Hour, Location: "Hall B"},
		},
	}, nil
}

func setup(t *testing.T) (*mux.Router, *wizard.Wizard) {
	t.Helper()
	log := logger.NewNop()
	svc := sessions.NewService(sessions.Config{}, clock.NewMock(), wizard.Dependencies{
		Availability: stubAvailability{},
		Pricing:      pricing.NewLookup(pricing.DefaultConfig(), nil, log),
		Uploads:      upload.NewValidator(0, nil),
		Logger:       log,
	}, nil, log)

	wz, err := svc.StartSession()
	require.NoError(t, err)

	r := mux.NewRouter()
	r.HandleFunc("/sessions/{sessionId}/selection", NewHandler(svc, log).Handle).Methods(http.MethodPut)
	return r, wz
}

func put(r *mux.Router, sessionID, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/sessions/"+sessionID+"/selection", strings.NewReader(body))
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_SelectionFlow(t *testing.T) {
	r, wz := setup(t)

	steps := []struct {
		body string
		step int
	}{
		{`{"field":"level","value":"c1"}`, 2},
		{`{"field":"examOption","value":"both"}`, 4},
		{`{"field":"date","value":"2025-03-15"}`, 5},
		{`{"field":"time","value":"09:00"}`, 6},
		{`{"field":"currency","value":"eur"}`, 6},
	}

	var resp models.SessionResponse
	for _, s := range steps {
		rec := put(r, wz.ID(), s.body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, s.step, resp.Step, s.body)
	}

	assert.Equal(t, "C1", resp.Selection.Level)
	assert.True(t, resp.Selection.PrerequisiteUploaded)
	assert.Equal(t, "2025-03-15", resp.Selection.Date)
	assert.Equal(t, "EUR", resp.Selection.Currency)
	require.NotNil(t, resp.Slot)
	assert.Equal(t, int64(1), resp.Slot.SlotID)
	assert.Equal(t, 15, resp.Slot.Remaining)
}

func TestHandler_GateViolation(t *testing.T) {
	r, wz := setup(t)

	rec := put(r, wz.ID(), `{"field":"date","value":"2025-03-15"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	var body handlers.GateViolationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Step)
	assert.Equal(t, domain.StepLevel, wz.Snapshot().Step)
}

func TestHandler_UnavailableDateAndFullSlot(t *testing.T) {
	r, wz := setup(t)
	require.Equal(t, http.StatusOK, put(r, wz.ID(), `{"field":"level","value":"B2"}`).Code)
	require.Equal(t, http.StatusOK, put(r, wz.ID(), `{"field":"examOption","value":"both"}`).Code)

	assert.Equal(t, http.StatusConflict, put(r, wz.ID(), `{"field":"date","value":"2025-03-16"}`).Code)

	require.Equal(t, http.StatusOK, put(r, wz.ID(), `{"field":"date","value":"2025-03-15"}`).Code)
	assert.Equal(t, http.StatusConflict, put(r, wz.ID(), `{"field":"time","value":"14:00"}`).Code)
	assert.Equal(t, domain.StepTime, wz.Snapshot().Step)
}

func TestHandler_BadRequests(t *testing.T) {
	r, wz := setup(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed body", `{"field":`},
		{"unknown field", `{"field":"color","value":"red"}`},
		{"bad level", `{"field":"level","value":"Z9"}`},
		{"bad option", `{"field":"examOption","value":"essay"}`},
		{"bad date", `{"field":"date","value":"15.03.2025"}`},
		{"bad time", `{"field":"time","value":"9am"}`},
		{"bad currency", `{"field":"currency","value":"XYZ"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, put(r, wz.ID(), tt.body).Code)
		})
	}
}

func TestHandler_SessionNotFound(t *testing.T) {
	r, _ := setup(t)
	rec := put(r, "missing", `{"field":"level","value":"A1"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
