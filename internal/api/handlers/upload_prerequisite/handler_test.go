package upload_prerequisite

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ExamBookingService/internal/domain"
	"github.com/m04kA/SMC-ExamBookingService/internal/service/sessions"
	"github.com/m04kA/SMC-ExamBookingService/internal/upload"
	"github.com/m04kA/SMC-ExamBookingService/internal/wizard"
	"github.com/m04kA/SMC-ExamBookingService/pkg/logger"
)

const maxSize = 1 << 10

func setup(t *testing.T, option domain.ExamOption) (*mux.Router, *wizard.Wizard) {
	t.Helper()
	log := logger.NewNop()
	svc := sessions.NewService(sessions.Config{}, clock.NewMock(), wizard.Dependencies{
		Uploads: upload.NewValidator(maxSize, nil),
		Logger:  log,
	}, nil, log)

	wz, err := svc.StartSession()
	require.NoError(t, err)
	_, err = wz.SelectLevel(context.Background(), domain.LevelB2)
	require.NoError(t, err)
	_, err = wz.SelectExamOption(context.Background(), option)
	require.NoError(t, err)

	r := mux.NewRouter()
	r.HandleFunc("/sessions/{sessionId}/prerequisite", NewHandler(svc, maxSize, log).Handle).Methods(http.MethodPost)
	return r, wz
}

func multipartRequest(t *testing.T, sessionID, name, contentType string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/sessions/"+sessionID+"/prerequisite", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandler_Accepted(t *testing.T) {
	r, wz := setup(t, domain.ExamOral)
	require.Equal(t, domain.StepPrerequisite, wz.Snapshot().Step)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, multipartRequest(t, wz.ID(), "certificate.pdf", "application/pdf", []byte("%PDF-1.4 test document")))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Accepted)
	assert.True(t, resp.Session.Selection.PrerequisiteUploaded)
	assert.Equal(t, int(domain.StepDate), resp.Session.Step)
}

func TestHandler_Rejected(t *testing.T) {
	r, wz := setup(t, domain.ExamOral)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, multipartRequest(t, wz.ID(), "notes.txt", "text/plain", []byte("hello")))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Accepted)
	assert.Equal(t, upload.ReasonUnsupportedType, resp.Reason)
	assert.Equal(t, domain.StepPrerequisite, wz.Snapshot().Step)
}

func TestHandler_NotRequiredForFullExam(t *testing.T) {
	r, wz := setup(t, domain.ExamBoth)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, multipartRequest(t, wz.ID(), "certificate.pdf", "application/pdf", []byte("%PDF-1.4")))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandler_MissingFile(t *testing.T) {
	r, wz := setup(t, domain.ExamOral)

	req := httptest.NewRequest(http.MethodPost, "/sessions/"+wz.ID()+"/prerequisite", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
