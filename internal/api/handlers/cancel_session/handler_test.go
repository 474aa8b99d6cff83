package cancel_session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MentorshipService/internal/api/middleware"
	"github.com/m04kA/SMC-MentorshipService/internal/service/sessions"
	"github.com/m04kA/SMC-MentorshipService/internal/service/sessions/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	gotID  uuid.UUID
	gotReq *models.CancelSessionRequest
	err    error
}

func (f *fakeService) Cancel(_ context.Context, id uuid.UUID, req *models.CancelSessionRequest) error {
	f.gotID = id
	f.gotReq = req
	return f.err
}

var (
	sessionID = uuid.MustParse("5d6e7f80-1a2b-4c3d-8e9f-0a1b2c3d4e5f")
	userID    = uuid.MustParse("a3c1d9e0-2b44-4e6b-9d7a-5f8e0c1b2a33")
)

func serve(svc *fakeService, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/sessions/"+sessionID.String()+"/cancel", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"sessionId": sessionID.String()})
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandler_EmptyBodyAllowed(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sessionID, svc.gotID)
	assert.Equal(t, userID, svc.gotReq.UserID)
	assert.Empty(t, svc.gotReq.CancellationReason)
}

func TestHandler_WithReason(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, `{"cancellationReason": "травма"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "травма", svc.gotReq.CancellationReason)
}

func TestHandler_ReasonTooLong(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, `{"cancellationReason": "`+strings.Repeat("x", 501)+`"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.gotReq)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", sessions.ErrSessionNotFound, http.StatusNotFound},
		{"foreign session", sessions.ErrAccessDenied, http.StatusForbidden},
		{"terminal status", sessions.ErrCannotCancel, http.StatusBadRequest},
		{"internal", sessions.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, "")
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestHandler_InvalidSessionID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/sessions/bad/cancel", nil)
	req = mux.SetURLVars(req, map[string]string{"sessionId": "bad"})
	rec := httptest.NewRecorder()

	NewHandler(&fakeService{}, nopLogger{}).Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
